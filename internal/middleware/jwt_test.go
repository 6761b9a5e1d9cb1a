package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alixtron0/tour-backoffice/internal/domain"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret string, claims *domain.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func userClaims(userID, role string, ttl time.Duration) *domain.Claims {
	now := time.Now()
	return &domain.Claims{
		UserID: userID,
		Name:   "Test User",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func jwtTestRouter(cfg *JWTConfig, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTMiddleware(cfg))
	handlers := append(extra, func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	router.GET("/protected", handlers...)
	router.GET("/health", handlers...)
	return router
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	router := jwtTestRouter(&JWTConfig{Secret: testSecret})

	token := signToken(t, testSecret, userClaims("user-1", domain.RoleAdmin, time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	router := jwtTestRouter(&JWTConfig{Secret: testSecret})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	router := jwtTestRouter(&JWTConfig{Secret: testSecret})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	router := jwtTestRouter(&JWTConfig{Secret: testSecret})

	token := signToken(t, "some-other-secret", userClaims("user-1", domain.RoleAdmin, time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	router := jwtTestRouter(&JWTConfig{Secret: testSecret})

	token := signToken(t, testSecret, userClaims("user-1", domain.RoleAdmin, -time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	router := jwtTestRouter(&JWTConfig{Secret: testSecret, SkipPaths: []string{"/health"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		allowed        []string
		expectedStatus int
	}{
		{"admin allowed for admins", domain.RoleAdmin, []string{domain.RoleSuperAdmin, domain.RoleAdmin}, http.StatusOK},
		{"super admin allowed for admins", domain.RoleSuperAdmin, []string{domain.RoleSuperAdmin, domain.RoleAdmin}, http.StatusOK},
		{"colleague rejected for admins", domain.RoleColleague, []string{domain.RoleSuperAdmin, domain.RoleAdmin}, http.StatusForbidden},
		{"colleague allowed for staff", domain.RoleColleague, []string{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleColleague}, http.StatusOK},
		{"admin rejected for super admin only", domain.RoleAdmin, []string{domain.RoleSuperAdmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := jwtTestRouter(&JWTConfig{Secret: testSecret}, RequireRole(tt.allowed...))

			token := signToken(t, testSecret, userClaims("user-1", tt.role, time.Hour))
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequireRole_WithoutAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_RevokedToken(t *testing.T) {
	var checked string
	router := jwtTestRouter(&JWTConfig{
		Secret: testSecret,
		IsRevoked: func(ctx context.Context, token string) (bool, error) {
			checked = token
			return true, nil
		},
	})

	token := signToken(t, testSecret, userClaims("user-1", domain.RoleAdmin, time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, token, checked)
}

func TestJWTMiddleware_NotRevokedTokenPasses(t *testing.T) {
	router := jwtTestRouter(&JWTConfig{
		Secret: testSecret,
		IsRevoked: func(ctx context.Context, token string) (bool, error) {
			return false, nil
		},
	})

	token := signToken(t, testSecret, userClaims("user-1", domain.RoleAdmin, time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTMiddleware_RevocationCheckFailureDeniesAccess(t *testing.T) {
	router := jwtTestRouter(&JWTConfig{
		Secret: testSecret,
		IsRevoked: func(ctx context.Context, token string) (bool, error) {
			return false, assert.AnError
		},
	})

	token := signToken(t, testSecret, userClaims("user-1", domain.RoleAdmin, time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

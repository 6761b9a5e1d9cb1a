package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
)

// testJWTSecret is a constant secret used for testing only
const testJWTSecret = "test-jwt-secret-for-unit-tests"

func testAuthService(repo *MockUserRepository) AuthService {
	return testAuthServiceWithRevoker(repo, nil)
}

func testAuthServiceWithRevoker(repo *MockUserRepository, tokens TokenRevoker) AuthService {
	return NewAuthService(repo, tokens, &AuthServiceConfig{
		JWTSecret:         testJWTSecret,
		AccessTokenExpiry: time.Hour,
		Issuer:            "tour-backoffice-test",
		BcryptCost:        bcrypt.MinCost,
	})
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	user := &domain.User{
		ID:           "user-1",
		Email:        "admin@agency.ir",
		PasswordHash: hashedPassword(t, "s3cret-pass"),
		Name:         "Admin",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	mockRepo.On("GetByEmail", mock.Anything, "admin@agency.ir").Return(user, nil)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@agency.ir",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_TokenCarriesClaims(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	user := &domain.User{
		ID:           "user-1",
		Email:        "admin@agency.ir",
		PasswordHash: hashedPassword(t, "s3cret-pass"),
		Name:         "Admin",
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	}
	mockRepo.On("GetByEmail", mock.Anything, "admin@agency.ir").Return(user, nil)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@agency.ir",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	claims := &domain.Claims{}
	parsed, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
	assert.Equal(t, "tour-backoffice-test", claims.Issuer)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	mockRepo.On("GetByEmail", mock.Anything, "nobody@agency.ir").Return(nil, nil)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@agency.ir",
		Password: "whatever",
	})

	assert.Nil(t, resp)
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	user := &domain.User{
		ID:           "user-1",
		Email:        "admin@agency.ir",
		PasswordHash: hashedPassword(t, "right-pass"),
		IsActive:     true,
	}
	mockRepo.On("GetByEmail", mock.Anything, "admin@agency.ir").Return(user, nil)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "admin@agency.ir",
		Password: "wrong-pass",
	})

	assert.Nil(t, resp)
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	user := &domain.User{
		ID:           "user-1",
		Email:        "former@agency.ir",
		PasswordHash: hashedPassword(t, "s3cret-pass"),
		IsActive:     false,
	}
	mockRepo.On("GetByEmail", mock.Anything, "former@agency.ir").Return(user, nil)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email:    "former@agency.ir",
		Password: "s3cret-pass",
	})

	assert.Nil(t, resp)
	assert.Equal(t, ErrUserInactive, err)
}

func TestAuthService_CreateUser_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	mockRepo.On("GetByEmail", mock.Anything, "new@agency.ir").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@agency.ir" && u.Role == domain.RoleColleague && u.IsActive
	})).Return(nil)

	user, err := service.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:    "new@agency.ir",
		Password: "initial-pass",
		Name:     "New Colleague",
		Role:     domain.RoleColleague,
	})

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	// the stored hash must verify against the submitted password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("initial-pass")))

	mockRepo.AssertExpectations(t)
}

func TestAuthService_CreateUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	existing := &domain.User{ID: "user-1", Email: "taken@agency.ir"}
	mockRepo.On("GetByEmail", mock.Anything, "taken@agency.ir").Return(existing, nil)

	user, err := service.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:    "taken@agency.ir",
		Password: "initial-pass",
		Name:     "Someone",
		Role:     domain.RoleColleague,
	})

	assert.Nil(t, user)
	assert.Equal(t, ErrUserAlreadyExists, err)
}

func TestAuthService_CreateUser_UnknownRole(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	user, err := service.CreateUser(context.Background(), &dto.CreateUserRequest{
		Email:    "new@agency.ir",
		Password: "initial-pass",
		Name:     "Someone",
		Role:     "owner",
	})

	assert.Nil(t, user)
	assert.Equal(t, ErrInvalidRole, err)
}

func TestAuthService_SetUserActive(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	user := &domain.User{ID: "user-1", IsActive: true}
	mockRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "user-1" && !u.IsActive
	})).Return(nil)

	updated, err := service.SetUserActive(context.Background(), "user-1", false)

	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_SetUserActive_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := testAuthService(mockRepo)

	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	updated, err := service.SetUserActive(context.Background(), "missing", true)

	assert.Nil(t, updated)
	assert.Equal(t, ErrUserNotFound, err)
}

func signTestToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	claims := &domain.Claims{
		UserID: "user-1",
		Name:   "Admin",
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthService_Logout_RevokesForRemainingLifetime(t *testing.T) {
	mockRepo := new(MockUserRepository)
	revoker := new(MockTokenRevoker)
	service := testAuthServiceWithRevoker(mockRepo, revoker)

	token := signTestToken(t, testJWTSecret, time.Hour)
	revoker.On("Revoke", mock.Anything, token, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 55*time.Minute && ttl <= time.Hour
	})).Return(nil)

	err := service.Logout(context.Background(), token)

	require.NoError(t, err)
	revoker.AssertExpectations(t)
}

func TestAuthService_Logout_RejectsForeignToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	revoker := new(MockTokenRevoker)
	service := testAuthServiceWithRevoker(mockRepo, revoker)

	token := signTestToken(t, "some-other-secret", time.Hour)

	err := service.Logout(context.Background(), token)

	assert.Equal(t, ErrInvalidToken, err)
	revoker.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	mockRepo := new(MockUserRepository)
	revoker := new(MockTokenRevoker)
	service := testAuthServiceWithRevoker(mockRepo, revoker)

	token := signTestToken(t, testJWTSecret, -time.Minute)

	err := service.Logout(context.Background(), token)

	require.NoError(t, err)
	revoker.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Logout_WithoutRevoker(t *testing.T) {
	service := testAuthService(new(MockUserRepository))

	err := service.Logout(context.Background(), signTestToken(t, testJWTSecret, time.Hour))

	require.NoError(t, err)
}

func TestAuthService_Logout_RevokerFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	revoker := new(MockTokenRevoker)
	service := testAuthServiceWithRevoker(mockRepo, revoker)

	token := signTestToken(t, testJWTSecret, time.Hour)
	revoker.On("Revoke", mock.Anything, token, mock.Anything).Return(assert.AnError)

	err := service.Logout(context.Background(), token)

	assert.Equal(t, assert.AnError, err)
}

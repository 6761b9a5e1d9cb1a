package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/middleware"
	"github.com/alixtron0/tour-backoffice/internal/response"
	"github.com/alixtron0/tour-backoffice/internal/service"
)

// MockAuthService is a mock implementation of AuthService for testing
type MockAuthService struct {
	LoginFunc         func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LogoutFunc        func(ctx context.Context, token string) error
	CreateUserFunc    func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error)
	GetUserFunc       func(ctx context.Context, id string) (*domain.User, error)
	ListUsersFunc     func(ctx context.Context) ([]*domain.User, error)
	SetUserActiveFunc func(ctx context.Context, id string, active bool) (*domain.User, error)
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

func (m *MockAuthService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx)
	}
	return nil, nil
}

func (m *MockAuthService) SetUserActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	if m.SetUserActiveFunc != nil {
		return m.SetUserActiveFunc(ctx, id, active)
	}
	return nil, nil
}

func setupAuthRouter(handler *AuthHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if userID != "" {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserIDKey, userID)
			c.Next()
		})
	}
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/logout", handler.Logout)
	router.GET("/auth/me", handler.Me)
	router.POST("/users", handler.CreateUser)
	router.GET("/users", handler.ListUsers)
	router.PUT("/users/:id/active", handler.SetUserActive)
	return router
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) response.Response {
	t.Helper()
	var envelope response.Response
	if err := json.Unmarshal(body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return envelope
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		mockFunc       func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successful login",
			body: dto.LoginRequest{Email: "admin@agency.ir", Password: "s3cret-pass"},
			mockFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
				return &dto.LoginResponse{
					AccessToken: "token",
					ExpiresIn:   3600,
					User:        &dto.UserProfile{ID: "user-1", Role: domain.RoleAdmin},
				}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong credentials",
			body: dto.LoginRequest{Email: "admin@agency.ir", Password: "wrong-pass"},
			mockFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
				return nil, service.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   response.ErrCodeUnauthorized,
		},
		{
			name: "inactive account",
			body: dto.LoginRequest{Email: "former@agency.ir", Password: "s3cret-pass"},
			mockFunc: func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
				return nil, service.ErrUserInactive
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   response.ErrCodeForbidden,
		},
		{
			name:           "malformed body",
			body:           gin.H{"email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   response.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&MockAuthService{LoginFunc: tt.mockFunc})
			router := setupAuthRouter(handler, "")

			payload, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedCode != "" {
				envelope := decodeEnvelope(t, w.Body)
				if envelope.Error == nil || envelope.Error.Code != tt.expectedCode {
					t.Errorf("expected error code %s, got %+v", tt.expectedCode, envelope.Error)
				}
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{
		GetUserFunc: func(ctx context.Context, id string) (*domain.User, error) {
			if id != "user-1" {
				t.Errorf("expected lookup of user-1, got %s", id)
			}
			return &domain.User{ID: "user-1", Name: "Admin", Role: domain.RoleAdmin}, nil
		},
	})
	router := setupAuthRouter(handler, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w.Body)
	if !envelope.Success {
		t.Error("expected success envelope")
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{})
	router := setupAuthRouter(handler, "")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAuthHandler_CreateUser(t *testing.T) {
	tests := []struct {
		name           string
		body           dto.CreateUserRequest
		mockFunc       func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error)
		expectedStatus int
	}{
		{
			name: "created",
			body: dto.CreateUserRequest{Email: "new@agency.ir", Password: "longenough", Name: "New", Role: domain.RoleColleague},
			mockFunc: func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
				return &domain.User{ID: "user-2", Email: req.Email}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "duplicate email",
			body: dto.CreateUserRequest{Email: "taken@agency.ir", Password: "longenough", Name: "New", Role: domain.RoleColleague},
			mockFunc: func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
				return nil, service.ErrUserAlreadyExists
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "unknown role",
			body: dto.CreateUserRequest{Email: "new@agency.ir", Password: "longenough", Name: "New", Role: "owner"},
			mockFunc: func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
				return nil, service.ErrInvalidRole
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&MockAuthService{CreateUserFunc: tt.mockFunc})
			router := setupAuthRouter(handler, "user-1")

			payload, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBuffer(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthHandler_SetUserActive(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{
		SetUserActiveFunc: func(ctx context.Context, id string, active bool) (*domain.User, error) {
			if id != "user-2" || active {
				t.Errorf("expected deactivation of user-2, got id=%s active=%v", id, active)
			}
			return &domain.User{ID: "user-2", IsActive: false}, nil
		},
	})
	router := setupAuthRouter(handler, "user-1")

	payload := []byte(`{"is_active": false}`)
	req := httptest.NewRequest(http.MethodPut, "/users/user-2/active", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthHandler_SetUserActive_MissingField(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{})
	router := setupAuthRouter(handler, "user-1")

	req := httptest.NewRequest(http.MethodPut, "/users/user-2/active", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var gotToken string
	handler := NewAuthHandler(&MockAuthService{
		LogoutFunc: func(ctx context.Context, token string) error {
			gotToken = token
			return nil
		},
	})
	router := setupAuthRouter(handler, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some.jwt.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if gotToken != "some.jwt.token" {
		t.Errorf("expected the bearer token to reach the service, got %q", gotToken)
	}
	envelope := decodeEnvelope(t, w.Body)
	if !envelope.Success {
		t.Errorf("expected success envelope, got %+v", envelope)
	}
}

func TestAuthHandler_Logout_MissingBearer(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{
		LogoutFunc: func(ctx context.Context, token string) error {
			t.Fatal("service must not be called without a bearer token")
			return nil
		},
	})
	router := setupAuthRouter(handler, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_InvalidToken(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{
		LogoutFunc: func(ctx context.Context, token string) error {
			return service.ErrInvalidToken
		},
	})
	router := setupAuthRouter(handler, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer forged.jwt.token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
	envelope := decodeEnvelope(t, w.Body)
	if envelope.Error == nil || envelope.Error.Code != response.ErrCodeUnauthorized {
		t.Errorf("expected %s error code, got %+v", response.ErrCodeUnauthorized, envelope.Error)
	}
}

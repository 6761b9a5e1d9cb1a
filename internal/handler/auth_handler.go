package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/middleware"
	"github.com/alixtron0/tour-backoffice/internal/response"
	"github.com/alixtron0/tour-backoffice/internal/service"
)

// AuthHandler handles authentication and user management HTTP requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, service.ErrUserInactive):
			response.Forbidden(c, "User account is inactive")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Success(c, result)
}

// Logout handles POST /auth/logout. The bearer token of the request
// itself is revoked; the middleware has already vouched for it.
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		response.Unauthorized(c, "Authorization header must be a bearer token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), parts[1]); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			response.Unauthorized(c, "Invalid or expired token")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, "User no longer exists")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, user)
}

// CreateUser handles POST /users
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if valid, msg := req.Validate(); !valid {
		response.BadRequest(c, msg)
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			response.Conflict(c, "A user with this email already exists")
		case errors.Is(err, service.ErrInvalidRole):
			response.BadRequest(c, "Unknown role")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, user)
}

// ListUsers handles GET /users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, users)
}

// SetUserActive handles PUT /users/:id/active
func (h *AuthHandler) SetUserActive(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.SetUserActive(c.Request.Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, user)
}

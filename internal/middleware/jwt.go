package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/response"
)

const (
	// Context keys populated by the JWT middleware
	ContextUserIDKey   = "user_id"
	ContextUserRoleKey = "user_role"
	ContextUserNameKey = "user_name"
)

// JWTConfig holds JWT middleware configuration. IsRevoked, when set,
// rejects tokens that were logged out before their expiry.
type JWTConfig struct {
	Secret    string
	SkipPaths []string
	IsRevoked func(ctx context.Context, token string) (bool, error)
}

// JWTMiddleware validates the bearer token and stores the claims in context
func JWTMiddleware(cfg *JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range cfg.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Authorization header must be a bearer token")
			c.Abort()
			return
		}

		claims := &domain.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if cfg.IsRevoked != nil {
			revoked, err := cfg.IsRevoked(c.Request.Context(), parts[1])
			if err != nil || revoked {
				response.Unauthorized(c, "Invalid or expired token")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserRoleKey, claims.Role)
		c.Set(ContextUserNameKey, claims.Name)

		c.Next()
	}
}

// RequireRole allows the request only if the authenticated user's role is
// one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

// GetUserID returns the authenticated user's ID from context
func GetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GetUserRole returns the authenticated user's role from context
func GetUserRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok && role != ""
}

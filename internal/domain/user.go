package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Back-office roles. Role gates which navigation entries and mutations a
// user may reach.
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleColleague  = "colleague"
)

// IsValidRole checks whether the given role is known
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleColleague:
		return true
	}
	return false
}

// User represents a back-office user account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims are the JWT claims carried by an access token
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

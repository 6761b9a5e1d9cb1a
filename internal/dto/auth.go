package dto

// LoginRequest is the credentials payload of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse carries the issued token and the profile the dashboard
// persists client-side
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"` // seconds
	User        *UserProfile `json:"user"`
}

// UserProfile is the public view of a back-office user
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CreateUserRequest registers a new back-office user (super-admin only)
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Role     string `json:"role" binding:"required"`
}

// Validate validates the CreateUserRequest
func (r *CreateUserRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Name is required"
	}
	if len(r.Password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	return true, ""
}

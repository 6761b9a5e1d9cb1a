package dto

// CreateAirlineRequest is the payload for POST /airlines
type CreateAirlineRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=150"`
	EnglishName  string  `json:"english_name" binding:"max=150"`
	Code         string  `json:"code" binding:"required,min=2,max=3"`
	Country      string  `json:"country" binding:"max=100"`
	LogoImageID  *string `json:"logo_image_id"`
	ContactPhone string  `json:"contact_phone" binding:"max=30"`
	ContactEmail string  `json:"contact_email" binding:"omitempty,email"`
	Description  string  `json:"description" binding:"max=1000"`
}

// Validate validates the CreateAirlineRequest
func (r *CreateAirlineRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Name is required"
	}
	if len(r.Code) < 2 || len(r.Code) > 3 {
		return false, "Airline code must be 2 or 3 characters"
	}
	return true, ""
}

// UpdateAirlineRequest is the payload for PUT /airlines/:id. Nil fields
// are left untouched.
type UpdateAirlineRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=150"`
	EnglishName  *string `json:"english_name" binding:"omitempty,max=150"`
	Code         *string `json:"code" binding:"omitempty,min=2,max=3"`
	Country      *string `json:"country" binding:"omitempty,max=100"`
	LogoImageID  *string `json:"logo_image_id"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=30"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	Description  *string `json:"description" binding:"omitempty,max=1000"`
	IsActive     *bool   `json:"is_active"`
}

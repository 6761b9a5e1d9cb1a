package domain

import "time"

// Airline represents an airline entity
type Airline struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	EnglishName  string    `json:"english_name"`
	Code         string    `json:"code"` // IATA two-letter code
	Country      string    `json:"country"`
	LogoImageID  *string   `json:"logo_image_id,omitempty"`
	ContactPhone string    `json:"contact_phone"`
	ContactEmail string    `json:"contact_email"`
	Description  string    `json:"description"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

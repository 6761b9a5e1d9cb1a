package domain

import "time"

// Route represents an origin/destination city pair sold as a travel route
type Route struct {
	ID                string    `json:"id"`
	OriginCityID      string    `json:"origin_city_id"`
	DestinationCityID string    `json:"destination_city_id"`
	Origin            string    `json:"origin,omitempty"`      // resolved on read
	Destination       string    `json:"destination,omitempty"` // resolved on read
	Description       string    `json:"description"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

package domain

import "time"

// City represents a city available as a route endpoint
type City struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	EnglishName string    `json:"english_name"`
	Country     string    `json:"country"`
	Code        string    `json:"code"` // IATA city code
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

package domain

import "time"

// Transport modes for a package leg
const (
	TransportGround = "ground"
	TransportAir    = "air"
)

// TransportLeg describes one leg of the package's transportation
type TransportLeg struct {
	Mode         string  `json:"mode"` // ground, air
	AirlineID    *string `json:"airline_id,omitempty"`
	FlightNumber string  `json:"flight_number,omitempty"`
}

// IsValid checks the leg's mode and air-leg requirements
func (l *TransportLeg) IsValid() bool {
	switch l.Mode {
	case TransportGround:
		return true
	case TransportAir:
		return l.AirlineID != nil && *l.AirlineID != ""
	}
	return false
}

// RoomPricing holds per-room-type prices for a package
type RoomPricing struct {
	Double       float64 `json:"double"`
	Triple       float64 `json:"triple"`
	Quad         float64 `json:"quad"`
	ChildWithBed float64 `json:"child_with_bed"`
	ChildNoBed   float64 `json:"child_no_bed"`
	Infant       float64 `json:"infant"`
}

// PackageHotel describes a hotel stay attached to a package
type PackageHotel struct {
	Name      string `json:"name"`
	Stars     int    `json:"stars"`
	Nights    int    `json:"nights"`
	Breakfast bool   `json:"breakfast"`
	Lunch     bool   `json:"lunch"`
	Dinner    bool   `json:"dinner"`
}

// PackageService describes an optional service attached to a package
type PackageService struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Included bool    `json:"included"`
}

// Package represents a bundled travel product
type Package struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	RouteID       string           `json:"route_id"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       time.Time        `json:"end_date"`
	TransportLegs []TransportLeg   `json:"transport_legs"`
	Rooms         RoomPricing      `json:"rooms"`
	Hotels        []PackageHotel   `json:"hotels"`
	Services      []PackageService `json:"services"`
	BasePrice     float64          `json:"base_price"`
	IsVisible     bool             `json:"is_visible"`
	IsActive      bool             `json:"is_active"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TotalPrice returns the base price plus every included service price
func (p *Package) TotalPrice() float64 {
	total := p.BasePrice
	for _, s := range p.Services {
		if s.Included {
			total += s.Price
		}
	}
	return total
}

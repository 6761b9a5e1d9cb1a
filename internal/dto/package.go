package dto

import (
	"time"

	"github.com/alixtron0/tour-backoffice/internal/domain"
)

// TransportLegInput describes one leg of the outbound or return journey
type TransportLegInput struct {
	Mode         string  `json:"mode" binding:"required"`
	AirlineID    *string `json:"airline_id" binding:"omitempty,uuid"`
	FlightNumber string  `json:"flight_number" binding:"max=10"`
}

func (l *TransportLegInput) toDomain() domain.TransportLeg {
	return domain.TransportLeg{
		Mode:         l.Mode,
		AirlineID:    l.AirlineID,
		FlightNumber: l.FlightNumber,
	}
}

// RoomPricingInput is the per-occupancy price grid of a package
type RoomPricingInput struct {
	Double       float64 `json:"double" binding:"min=0"`
	Triple       float64 `json:"triple" binding:"min=0"`
	Quad         float64 `json:"quad" binding:"min=0"`
	ChildWithBed float64 `json:"child_with_bed" binding:"min=0"`
	ChildNoBed   float64 `json:"child_no_bed" binding:"min=0"`
	Infant       float64 `json:"infant" binding:"min=0"`
}

// PackageHotelInput describes an included hotel stay
type PackageHotelInput struct {
	Name      string `json:"name" binding:"required,max=150"`
	Stars     int    `json:"stars" binding:"min=0,max=5"`
	Nights    int    `json:"nights" binding:"min=1"`
	Breakfast bool   `json:"breakfast"`
	Lunch     bool   `json:"lunch"`
	Dinner    bool   `json:"dinner"`
}

// PackageServiceInput describes an optional or included extra service
type PackageServiceInput struct {
	Name     string  `json:"name" binding:"required,max=150"`
	Price    float64 `json:"price" binding:"min=0"`
	Included bool    `json:"included"`
}

// CreatePackageRequest is the payload for POST /packages
type CreatePackageRequest struct {
	Name          string                `json:"name" binding:"required,min=2,max=200"`
	RouteID       string                `json:"route_id" binding:"required,uuid"`
	StartDate     time.Time             `json:"start_date" binding:"required"`
	EndDate       time.Time             `json:"end_date" binding:"required"`
	TransportLegs []TransportLegInput   `json:"transport_legs" binding:"required,min=1,dive"`
	Rooms         RoomPricingInput      `json:"rooms"`
	Hotels        []PackageHotelInput   `json:"hotels" binding:"dive"`
	Services      []PackageServiceInput `json:"services" binding:"dive"`
	BasePrice     float64               `json:"base_price" binding:"min=0"`
	IsVisible     bool                  `json:"is_visible"`
}

// Validate validates the CreatePackageRequest
func (r *CreatePackageRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Name is required"
	}
	if !r.EndDate.After(r.StartDate) {
		return false, "End date must be after start date"
	}
	if len(r.TransportLegs) == 0 {
		return false, "At least one transport leg is required"
	}
	for _, leg := range r.TransportLegs {
		d := leg.toDomain()
		if !d.IsValid() {
			return false, "Air legs require an airline, ground legs must not carry one"
		}
	}
	return true, ""
}

// DomainLegs converts the leg inputs into domain values. Call only
// after Validate.
func (r *CreatePackageRequest) DomainLegs() []domain.TransportLeg {
	legs := make([]domain.TransportLeg, 0, len(r.TransportLegs))
	for _, l := range r.TransportLegs {
		legs = append(legs, l.toDomain())
	}
	return legs
}

// UpdatePackageRequest is the payload for PUT /packages/:id
type UpdatePackageRequest struct {
	Name          *string               `json:"name" binding:"omitempty,min=2,max=200"`
	RouteID       *string               `json:"route_id" binding:"omitempty,uuid"`
	StartDate     *time.Time            `json:"start_date"`
	EndDate       *time.Time            `json:"end_date"`
	TransportLegs []TransportLegInput   `json:"transport_legs" binding:"omitempty,min=1,dive"`
	Rooms         *RoomPricingInput     `json:"rooms"`
	Hotels        []PackageHotelInput   `json:"hotels" binding:"dive"`
	Services      []PackageServiceInput `json:"services" binding:"dive"`
	BasePrice     *float64              `json:"base_price" binding:"omitempty,min=0"`
	IsVisible     *bool                 `json:"is_visible"`
	IsActive      *bool                 `json:"is_active"`
}

// DomainLegs converts the leg inputs, returning nil when no legs were sent
func (r *UpdatePackageRequest) DomainLegs() []domain.TransportLeg {
	if len(r.TransportLegs) == 0 {
		return nil
	}
	legs := make([]domain.TransportLeg, 0, len(r.TransportLegs))
	for _, l := range r.TransportLegs {
		legs = append(legs, l.toDomain())
	}
	return legs
}

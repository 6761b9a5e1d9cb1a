package dto

import (
	"time"

	"github.com/alixtron0/tour-backoffice/internal/domain"
)

// FlightLegInput is the flight block of a floating ticket
type FlightLegInput struct {
	Origin       string    `json:"origin" binding:"required,max=100"`
	Destination  string    `json:"destination" binding:"required,max=100"`
	Date         time.Time `json:"date" binding:"required"`
	Time         string    `json:"time" binding:"max=5"`
	FlightNumber string    `json:"flight_number" binding:"required,max=10"`
}

// AirlineSnapshotInput captures the airline details printed on a ticket.
// It is a snapshot, not a reference, so later airline edits never change
// issued tickets.
type AirlineSnapshotInput struct {
	Name     string `json:"name" binding:"required,max=150"`
	Code     string `json:"code" binding:"max=3"`
	Aircraft string `json:"aircraft" binding:"max=100"`
}

// TicketPassengerInput is one traveller on a floating ticket
type TicketPassengerInput struct {
	FullName       string `json:"full_name" binding:"required,max=200"`
	LatinName      string `json:"latin_name" binding:"max=200"`
	DocumentNumber string `json:"document_number" binding:"required,max=20"`
	Seat           string `json:"seat" binding:"max=5"`
}

// CreateTicketRequest is the payload for POST /tickets
type CreateTicketRequest struct {
	Flight     FlightLegInput         `json:"flight" binding:"required"`
	Airline    *AirlineSnapshotInput  `json:"airline"`
	Passengers []TicketPassengerInput `json:"passengers" binding:"required,min=1,dive"`
}

// Validate validates the CreateTicketRequest
func (r *CreateTicketRequest) Validate() (bool, string) {
	if r.Flight.Origin == "" || r.Flight.Destination == "" {
		return false, "Flight origin and destination are required"
	}
	if r.Flight.Date.IsZero() {
		return false, "Flight date is required"
	}
	if r.Flight.FlightNumber == "" {
		return false, "Flight number is required"
	}
	if len(r.Passengers) == 0 {
		return false, "At least one passenger is required"
	}
	for _, p := range r.Passengers {
		if p.FullName == "" || p.DocumentNumber == "" {
			return false, "Each passenger needs a full name and document number"
		}
	}
	return true, ""
}

// DomainFlight converts the flight input
func (r *CreateTicketRequest) DomainFlight() domain.FlightLeg {
	return domain.FlightLeg{
		Origin:       r.Flight.Origin,
		Destination:  r.Flight.Destination,
		Date:         r.Flight.Date,
		Time:         r.Flight.Time,
		FlightNumber: r.Flight.FlightNumber,
	}
}

// DomainAirline converts the optional airline snapshot
func (r *CreateTicketRequest) DomainAirline() *domain.AirlineSnapshot {
	if r.Airline == nil {
		return nil
	}
	return &domain.AirlineSnapshot{
		Name:     r.Airline.Name,
		Code:     r.Airline.Code,
		Aircraft: r.Airline.Aircraft,
	}
}

// DomainPassengers converts the passenger inputs
func (r *CreateTicketRequest) DomainPassengers() []domain.TicketPassenger {
	out := make([]domain.TicketPassenger, 0, len(r.Passengers))
	for _, p := range r.Passengers {
		out = append(out, domain.TicketPassenger{
			FullName:       p.FullName,
			LatinName:      p.LatinName,
			DocumentNumber: p.DocumentNumber,
			Seat:           p.Seat,
		})
	}
	return out
}

// PreviewTicketRequest renders a PDF without persisting anything. The
// same shape as CreateTicketRequest plus a booking code override so the
// preview matches what the final export will print.
type PreviewTicketRequest struct {
	CreateTicketRequest
	BookingCode string `json:"booking_code" binding:"max=20"`
}

// TicketListFilter drives the server-side ticket query
type TicketListFilter struct {
	Search      string `form:"search"`
	BookingCode string `form:"booking_code"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// SetDefaults clamps pagination to sane bounds
func (f *TicketListFilter) SetDefaults() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

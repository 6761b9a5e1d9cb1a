package domain

import "time"

// FlightLeg is the flight snapshot embedded in a floating ticket
type FlightLeg struct {
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Date         time.Time `json:"date"`
	Time         string    `json:"time"` // HH:MM departure time
	FlightNumber string    `json:"flight_number"`
}

// AirlineSnapshot is the optional airline/aircraft snapshot embedded in a
// floating ticket; the ticket keeps its own copy so later airline edits do
// not rewrite history
type AirlineSnapshot struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Aircraft string `json:"aircraft,omitempty"`
}

// TicketPassenger is one passenger snapshot on a floating ticket
type TicketPassenger struct {
	FullName       string `json:"full_name"`
	LatinName      string `json:"latin_name"`
	DocumentNumber string `json:"document_number"`
	Seat           string `json:"seat,omitempty"`
}

// Ticket represents a floating ticket: a boarding-pass-style document built
// from manually entered flight/passenger data, persisted for history and
// regeneration
type Ticket struct {
	ID           string            `json:"id"`
	TicketNumber string            `json:"ticket_number"`
	BookingCode  string            `json:"booking_code"`
	Flight       FlightLeg         `json:"flight"`
	Airline      *AirlineSnapshot  `json:"airline,omitempty"`
	Passengers   []TicketPassenger `json:"passengers"`
	CreatedBy    string            `json:"created_by"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

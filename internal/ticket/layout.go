// Package ticket implements the floating-ticket document pipeline: one
// boarding-pass-style A4 page per passenger record, assembled into a single
// multi-page PDF by a strictly sequential, fail-fast batch exporter.
package ticket

import (
	"github.com/alixtron0/tour-backoffice/internal/calendar"
	"github.com/alixtron0/tour-backoffice/internal/domain"
)

// Placeholder rendered for missing optional fields
const Placeholder = "—"

// Record is the fully-denormalized input of one document page: one
// passenger snapshot plus the flight leg and optional airline snapshot it
// travels under.
type Record struct {
	TicketNumber string
	BookingCode  string
	Flight       domain.FlightLeg
	Airline      *domain.AirlineSnapshot
	Passenger    domain.TicketPassenger
}

// RecordsFromTicket expands a stored ticket into one record per passenger,
// preserving passenger order.
func RecordsFromTicket(t *domain.Ticket) []Record {
	records := make([]Record, len(t.Passengers))
	for i, p := range t.Passengers {
		records[i] = Record{
			TicketNumber: t.TicketNumber,
			BookingCode:  t.BookingCode,
			Flight:       t.Flight,
			Airline:      t.Airline,
			Passenger:    p,
		}
	}
	return records
}

// PageData is the resolved field set of one rendered page. Every source
// field maps to exactly one slot; optional fields fall back to Placeholder.
type PageData struct {
	AirlineName   string
	AirlineCode   string
	AircraftModel string

	OriginCity       string
	OriginCityLocal  string
	DestinationCity  string
	DestinationLocal string

	FlightNumber  string
	DateGregorian string
	DateJalali    string
	DepartureTime string

	PassengerName  string
	LatinName      string
	DocumentNumber string
	Seat           string

	BookingCode  string
	TicketNumber string
	BarcodeText  string
}

// BuildPageData resolves one record into its page layout. It is a pure
// template substitution: no layout is computed here.
func BuildPageData(r Record) *PageData {
	d := &PageData{
		AirlineName:      Placeholder,
		AirlineCode:      Placeholder,
		AircraftModel:    Placeholder,
		OriginCity:       r.Flight.Origin,
		OriginCityLocal:  calendar.CityDisplayName(r.Flight.Origin),
		DestinationCity:  r.Flight.Destination,
		DestinationLocal: calendar.CityDisplayName(r.Flight.Destination),
		FlightNumber:     r.Flight.FlightNumber,
		DateGregorian:    calendar.Gregorian(r.Flight.Date),
		DateJalali:       calendar.Jalali(r.Flight.Date),
		DepartureTime:    r.Flight.Time,
		PassengerName:    r.Passenger.FullName,
		LatinName:        r.Passenger.LatinName,
		DocumentNumber:   r.Passenger.DocumentNumber,
		Seat:             r.Passenger.Seat,
		BookingCode:      r.BookingCode,
		TicketNumber:     r.TicketNumber,
		BarcodeText:      r.TicketNumber + r.Passenger.DocumentNumber,
	}

	if r.Airline != nil {
		if r.Airline.Name != "" {
			d.AirlineName = r.Airline.Name
		}
		if r.Airline.Code != "" {
			d.AirlineCode = r.Airline.Code
		}
		if r.Airline.Aircraft != "" {
			d.AircraftModel = r.Airline.Aircraft
		}
	}
	if d.Seat == "" {
		d.Seat = Placeholder
	}
	if d.DepartureTime == "" {
		d.DepartureTime = Placeholder
	}
	if d.LatinName == "" {
		d.LatinName = d.PassengerName
	}
	if d.PassengerName == "" {
		d.PassengerName = Placeholder
	}
	if d.LatinName == "" {
		d.LatinName = Placeholder
	}

	return d
}

// validate reports the first missing required field of a record
func (r *Record) validate() string {
	switch {
	case r.Passenger.FullName == "" && r.Passenger.LatinName == "":
		return "passenger name"
	case r.Passenger.DocumentNumber == "":
		return "document number"
	case r.Flight.Origin == "":
		return "origin"
	case r.Flight.Destination == "":
		return "destination"
	case r.Flight.Date.IsZero():
		return "flight date"
	case r.Flight.FlightNumber == "":
		return "flight number"
	case r.BookingCode == "":
		return "booking code"
	}
	return ""
}

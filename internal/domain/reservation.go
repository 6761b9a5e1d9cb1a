package domain

import "time"

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCanceled  ReservationStatus = "canceled"
)

// IsValid checks if the status is a valid ReservationStatus
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of ReservationStatus
func (s ReservationStatus) String() string {
	return string(s)
}

// Reservation represents a booking of passengers against a package
type Reservation struct {
	ID             string            `json:"id"`
	PackageID      string            `json:"package_id"`
	PackageName    string            `json:"package_name,omitempty"` // resolved on read
	Status         ReservationStatus `json:"status"`
	BookingCode    string            `json:"booking_code"`
	PassengerCount int               `json:"passenger_count"`
	ContactName    string            `json:"contact_name"`
	ContactPhone   string            `json:"contact_phone"`
	CreatedBy      string            `json:"created_by"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

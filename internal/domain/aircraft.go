package domain

import "time"

// Aircraft represents an aircraft entity owned by an airline
type Aircraft struct {
	ID            string    `json:"id"`
	Model         string    `json:"model"`
	Manufacturer  string    `json:"manufacturer"`
	AirlineID     string    `json:"airline_id"`
	AirlineName   string    `json:"airline_name,omitempty"` // resolved on read
	EconomySeats  int       `json:"economy_seats"`
	BusinessSeats int       `json:"business_seats"`
	FirstSeats    int       `json:"first_seats"`
	CruiseSpeed   int       `json:"cruise_speed_kph"`
	RangeKM       int       `json:"range_km"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Capacity returns the total seat count across all cabins
func (a *Aircraft) Capacity() int {
	return a.EconomySeats + a.BusinessSeats + a.FirstSeats
}

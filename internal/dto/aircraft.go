package dto

// CreateAircraftRequest is the payload for POST /aircraft
type CreateAircraftRequest struct {
	Model        string `json:"model" binding:"required,min=2,max=100"`
	Manufacturer string `json:"manufacturer" binding:"max=100"`
	AirlineID    string `json:"airline_id" binding:"required,uuid"`
	EconomySeats int    `json:"economy_seats" binding:"min=0"`
	BusinessSeats int   `json:"business_seats" binding:"min=0"`
	FirstSeats   int    `json:"first_seats" binding:"min=0"`
	CruiseSpeed  int    `json:"cruise_speed" binding:"min=0"`
	RangeKM      int    `json:"range_km" binding:"min=0"`
}

// Validate validates the CreateAircraftRequest
func (r *CreateAircraftRequest) Validate() (bool, string) {
	if r.Model == "" {
		return false, "Model is required"
	}
	if r.AirlineID == "" {
		return false, "Airline is required"
	}
	if r.EconomySeats+r.BusinessSeats+r.FirstSeats <= 0 {
		return false, "Aircraft must have at least one seat"
	}
	return true, ""
}

// UpdateAircraftRequest is the payload for PUT /aircraft/:id
type UpdateAircraftRequest struct {
	Model         *string `json:"model" binding:"omitempty,min=2,max=100"`
	Manufacturer  *string `json:"manufacturer" binding:"omitempty,max=100"`
	AirlineID     *string `json:"airline_id" binding:"omitempty,uuid"`
	EconomySeats  *int    `json:"economy_seats" binding:"omitempty,min=0"`
	BusinessSeats *int    `json:"business_seats" binding:"omitempty,min=0"`
	FirstSeats    *int    `json:"first_seats" binding:"omitempty,min=0"`
	CruiseSpeed   *int    `json:"cruise_speed" binding:"omitempty,min=0"`
	RangeKM       *int    `json:"range_km" binding:"omitempty,min=0"`
	IsActive      *bool   `json:"is_active"`
}

package dto

// CreateReservationRequest opens a reservation against a package
type CreateReservationRequest struct {
	PackageID      string `json:"package_id" binding:"required,uuid"`
	ContactName    string `json:"contact_name" binding:"required,min=2,max=150"`
	ContactPhone   string `json:"contact_phone" binding:"required,max=30"`
	PassengerCount int    `json:"passenger_count" binding:"min=1"`
}

// Validate validates the CreateReservationRequest
func (r *CreateReservationRequest) Validate() (bool, string) {
	if r.PackageID == "" {
		return false, "Package is required"
	}
	if r.ContactName == "" {
		return false, "Contact name is required"
	}
	if r.PassengerCount < 1 {
		return false, "Passenger count must be at least 1"
	}
	return true, ""
}

// UpdateReservationRequest is the payload for PUT /reservations/:id
type UpdateReservationRequest struct {
	ContactName    *string `json:"contact_name" binding:"omitempty,min=2,max=150"`
	ContactPhone   *string `json:"contact_phone" binding:"omitempty,max=30"`
	PassengerCount *int    `json:"passenger_count" binding:"omitempty,min=1"`
}

// ChangeReservationStatusRequest moves a reservation through its lifecycle
type ChangeReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

package dto

// CreateCityRequest is the payload for POST /cities
type CreateCityRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	EnglishName string `json:"english_name" binding:"max=100"`
	Country     string `json:"country" binding:"required,min=2,max=100"`
	Code        string `json:"code" binding:"max=5"`
}

// Validate validates the CreateCityRequest
func (r *CreateCityRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Name is required"
	}
	if r.Country == "" {
		return false, "Country is required"
	}
	return true, ""
}

// UpdateCityRequest is the payload for PUT /cities/:id
type UpdateCityRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	EnglishName *string `json:"english_name" binding:"omitempty,max=100"`
	Country     *string `json:"country" binding:"omitempty,min=2,max=100"`
	Code        *string `json:"code" binding:"omitempty,max=5"`
	IsActive    *bool   `json:"is_active"`
}

// CreateRouteRequest is the payload for POST /routes
type CreateRouteRequest struct {
	OriginCityID      string `json:"origin_city_id" binding:"required,uuid"`
	DestinationCityID string `json:"destination_city_id" binding:"required,uuid"`
	Description       string `json:"description" binding:"max=500"`
}

// Validate validates the CreateRouteRequest
func (r *CreateRouteRequest) Validate() (bool, string) {
	if r.OriginCityID == "" || r.DestinationCityID == "" {
		return false, "Origin and destination cities are required"
	}
	if r.OriginCityID == r.DestinationCityID {
		return false, "Origin and destination must be different cities"
	}
	return true, ""
}

// UpdateRouteRequest is the payload for PUT /routes/:id
type UpdateRouteRequest struct {
	OriginCityID      *string `json:"origin_city_id" binding:"omitempty,uuid"`
	DestinationCityID *string `json:"destination_city_id" binding:"omitempty,uuid"`
	Description       *string `json:"description" binding:"omitempty,max=500"`
	IsActive          *bool   `json:"is_active"`
}

package dto

import (
	"time"

	"github.com/alixtron0/tour-backoffice/internal/domain"
)

// CreatePassengerRequest adds a passenger to a reservation
type CreatePassengerRequest struct {
	ReservationID  string     `json:"reservation_id" binding:"required,uuid"`
	FirstName      string     `json:"first_name" binding:"required,min=2,max=100"`
	LastName       string     `json:"last_name" binding:"required,min=2,max=100"`
	LatinFirstName string     `json:"latin_first_name" binding:"max=100"`
	LatinLastName  string     `json:"latin_last_name" binding:"max=100"`
	DocumentType   string     `json:"document_type" binding:"required"`
	DocumentNumber string     `json:"document_number" binding:"required,max=20"`
	BirthDate      *time.Time `json:"birth_date"`
	Gender         string     `json:"gender"`
	AgeCategory    string     `json:"age_category"`
	Notes          string     `json:"notes" binding:"max=500"`
}

// Validate validates the CreatePassengerRequest
func (r *CreatePassengerRequest) Validate() (bool, string) {
	if r.FirstName == "" || r.LastName == "" {
		return false, "First and last name are required"
	}
	if !domain.IsValidDocumentType(r.DocumentType) {
		return false, "Document type must be national-id or passport"
	}
	if r.DocumentNumber == "" {
		return false, "Document number is required"
	}
	if r.Gender != "" && !domain.IsValidGender(r.Gender) {
		return false, "Gender must be male or female"
	}
	if r.AgeCategory != "" && !domain.IsValidAgeCategory(r.AgeCategory) {
		return false, "Age category must be adult, child or infant"
	}
	if r.DocumentType == domain.DocumentPassport && (r.LatinFirstName == "" || r.LatinLastName == "") {
		return false, "Latin name is required for passport holders"
	}
	return true, ""
}

// UpdatePassengerRequest is the payload for PUT /passengers/:id
type UpdatePassengerRequest struct {
	FirstName      *string    `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName       *string    `json:"last_name" binding:"omitempty,min=2,max=100"`
	LatinFirstName *string    `json:"latin_first_name" binding:"omitempty,max=100"`
	LatinLastName  *string    `json:"latin_last_name" binding:"omitempty,max=100"`
	DocumentType   *string    `json:"document_type"`
	DocumentNumber *string    `json:"document_number" binding:"omitempty,max=20"`
	BirthDate      *time.Time `json:"birth_date"`
	Gender         *string    `json:"gender"`
	AgeCategory    *string    `json:"age_category"`
	Notes          *string    `json:"notes" binding:"omitempty,max=500"`
}

// Validate validates the UpdatePassengerRequest
func (r *UpdatePassengerRequest) Validate() (bool, string) {
	if r.DocumentType != nil && !domain.IsValidDocumentType(*r.DocumentType) {
		return false, "Document type must be national-id or passport"
	}
	if r.Gender != nil && !domain.IsValidGender(*r.Gender) {
		return false, "Gender must be male or female"
	}
	if r.AgeCategory != nil && !domain.IsValidAgeCategory(*r.AgeCategory) {
		return false, "Age category must be adult, child or infant"
	}
	return true, ""
}

// PassengerListFilter drives the server-side passenger query
type PassengerListFilter struct {
	Search        string `form:"search"`
	ReservationID string `form:"reservation_id"`
	DocumentType  string `form:"document_type"`
	AgeCategory   string `form:"age_category"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
}

// SetDefaults clamps pagination to sane bounds
func (f *PassengerListFilter) SetDefaults() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 100 {
		f.PageSize = 20
	}
}

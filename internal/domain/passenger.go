package domain

import "time"

// Passenger document types
const (
	DocumentNationalID = "national-id"
	DocumentPassport   = "passport"
)

// Passenger age categories
const (
	AgeAdult  = "adult"
	AgeChild  = "child"
	AgeInfant = "infant"
)

// Passenger genders
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// IsValidDocumentType checks whether the document type is known
func IsValidDocumentType(t string) bool {
	return t == DocumentNationalID || t == DocumentPassport
}

// IsValidAgeCategory checks whether the age category is known
func IsValidAgeCategory(c string) bool {
	return c == AgeAdult || c == AgeChild || c == AgeInfant
}

// IsValidGender checks whether the gender value is known
func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// Passenger represents a passenger attached to a reservation
type Passenger struct {
	ID             string    `json:"id"`
	ReservationID  string    `json:"reservation_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	LatinFirstName string    `json:"latin_first_name"`
	LatinLastName  string    `json:"latin_last_name"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	BirthDate      time.Time `json:"birth_date"`
	Gender         string    `json:"gender"`
	AgeCategory    string    `json:"age_category"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName returns the native-script display name
func (p *Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

// LatinFullName returns the Latin-script display name
func (p *Passenger) LatinFullName() string {
	return p.LatinFirstName + " " + p.LatinLastName
}

package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/repository"
	"github.com/alixtron0/tour-backoffice/internal/spreadsheet"
)

var ErrPassengerNotFound = errors.New("passenger not found")

// PassengerService defines passenger management operations, including
// the spreadsheet export/import flows
type PassengerService interface {
	Create(ctx context.Context, req *dto.CreatePassengerRequest) (*domain.Passenger, error)
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)
	List(ctx context.Context, filter dto.PassengerListFilter) ([]*domain.Passenger, int64, error)
	ListByReservation(ctx context.Context, reservationID string) ([]*domain.Passenger, error)
	Update(ctx context.Context, id string, req *dto.UpdatePassengerRequest) (*domain.Passenger, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, reservationID string) ([]byte, error)
	Import(ctx context.Context, reservationID string, r io.Reader) ([]*domain.Passenger, error)
}

type passengerService struct {
	passengerRepo   repository.PassengerRepository
	reservationRepo repository.ReservationRepository
}

// NewPassengerService creates a new PassengerService
func NewPassengerService(
	passengerRepo repository.PassengerRepository,
	reservationRepo repository.ReservationRepository,
) PassengerService {
	return &passengerService{
		passengerRepo:   passengerRepo,
		reservationRepo: reservationRepo,
	}
}

// Create attaches a new passenger to an existing reservation
func (s *passengerService) Create(ctx context.Context, req *dto.CreatePassengerRequest) (*domain.Passenger, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}

	ageCategory := req.AgeCategory
	if ageCategory == "" {
		ageCategory = domain.AgeAdult
	}

	now := time.Now()
	passenger := &domain.Passenger{
		ID:             uuid.New().String(),
		ReservationID:  req.ReservationID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		LatinFirstName: req.LatinFirstName,
		LatinLastName:  req.LatinLastName,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Gender:         req.Gender,
		AgeCategory:    ageCategory,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.BirthDate != nil {
		passenger.BirthDate = *req.BirthDate
	}
	if err := s.passengerRepo.Create(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

// GetByID retrieves a passenger
func (s *passengerService) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	passenger, err := s.passengerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if passenger == nil {
		return nil, ErrPassengerNotFound
	}
	return passenger, nil
}

// List retrieves one page of passengers plus the total match count
func (s *passengerService) List(ctx context.Context, filter dto.PassengerListFilter) ([]*domain.Passenger, int64, error) {
	filter.SetDefaults()
	return s.passengerRepo.List(ctx, filter)
}

// ListByReservation retrieves all passengers on a reservation
func (s *passengerService) ListByReservation(ctx context.Context, reservationID string) ([]*domain.Passenger, error) {
	return s.passengerRepo.ListByReservation(ctx, reservationID)
}

// Update applies the non-nil fields of the request
func (s *passengerService) Update(ctx context.Context, id string, req *dto.UpdatePassengerRequest) (*domain.Passenger, error) {
	passenger, err := s.passengerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if passenger == nil {
		return nil, ErrPassengerNotFound
	}

	if req.FirstName != nil {
		passenger.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		passenger.LastName = *req.LastName
	}
	if req.LatinFirstName != nil {
		passenger.LatinFirstName = *req.LatinFirstName
	}
	if req.LatinLastName != nil {
		passenger.LatinLastName = *req.LatinLastName
	}
	if req.DocumentType != nil {
		passenger.DocumentType = *req.DocumentType
	}
	if req.DocumentNumber != nil {
		passenger.DocumentNumber = *req.DocumentNumber
	}
	if req.BirthDate != nil {
		passenger.BirthDate = *req.BirthDate
	}
	if req.Gender != nil {
		passenger.Gender = *req.Gender
	}
	if req.AgeCategory != nil {
		passenger.AgeCategory = *req.AgeCategory
	}
	if req.Notes != nil {
		passenger.Notes = *req.Notes
	}
	passenger.UpdatedAt = time.Now()

	if err := s.passengerRepo.Update(ctx, passenger); err != nil {
		return nil, err
	}
	return passenger, nil
}

// Delete removes a passenger
func (s *passengerService) Delete(ctx context.Context, id string) error {
	passenger, err := s.passengerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if passenger == nil {
		return ErrPassengerNotFound
	}
	return s.passengerRepo.Delete(ctx, id)
}

// Export builds an xlsx workbook of the reservation's passengers, or of
// all passengers when reservationID is empty
func (s *passengerService) Export(ctx context.Context, reservationID string) ([]byte, error) {
	var passengers []*domain.Passenger
	var err error
	if reservationID != "" {
		passengers, err = s.passengerRepo.ListByReservation(ctx, reservationID)
	} else {
		passengers, _, err = s.passengerRepo.List(ctx, dto.PassengerListFilter{Page: 1, PageSize: 10000})
	}
	if err != nil {
		return nil, err
	}
	return spreadsheet.ExportPassengers(passengers)
}

// Import parses an xlsx workbook and attaches every row to the target
// reservation. Rows are validated before anything is written, so a bad
// row rejects the whole file.
func (s *passengerService) Import(ctx context.Context, reservationID string, r io.Reader) ([]*domain.Passenger, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}

	passengers, err := spreadsheet.ImportPassengers(r)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, passenger := range passengers {
		passenger.ID = uuid.New().String()
		passenger.ReservationID = reservationID
		passenger.CreatedAt = now
		passenger.UpdatedAt = now
		if err := s.passengerRepo.Create(ctx, passenger); err != nil {
			return nil, err
		}
	}
	return passengers, nil
}

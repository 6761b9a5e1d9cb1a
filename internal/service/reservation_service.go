package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/repository"
)

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInvalidStatus        = errors.New("invalid reservation status")
	ErrReservationHasPax    = errors.New("reservation has passengers attached")
	ErrPackageNotVisible    = errors.New("package is not open for reservations")
	errBookingCodeExhausted = errors.New("could not generate a unique booking code")
)

// Booking codes are short, human-readable and unambiguous. 0/O and 1/I
// are excluded.
const bookingCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
const bookingCodeLength = 8

// ReservationService defines reservation lifecycle operations
type ReservationService interface {
	Create(ctx context.Context, req *dto.CreateReservationRequest, createdBy string) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
	Update(ctx context.Context, id string, req *dto.UpdateReservationRequest) (*domain.Reservation, error)
	ChangeStatus(ctx context.Context, id string, status string) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	packageRepo     repository.PackageRepository
	passengerRepo   repository.PassengerRepository
}

// NewReservationService creates a new ReservationService
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	packageRepo repository.PackageRepository,
	passengerRepo repository.PassengerRepository,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		packageRepo:     packageRepo,
		passengerRepo:   passengerRepo,
	}
}

// Create opens a reservation against a visible, active package and
// assigns it a unique booking code
func (s *reservationService) Create(ctx context.Context, req *dto.CreateReservationRequest, createdBy string) (*domain.Reservation, error) {
	pkg, err := s.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	if !pkg.IsActive || !pkg.IsVisible {
		return nil, ErrPackageNotVisible
	}

	code, err := s.uniqueBookingCode(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reservation := &domain.Reservation{
		ID:             uuid.New().String(),
		PackageID:      pkg.ID,
		PackageName:    pkg.Name,
		Status:         domain.ReservationStatusPending,
		BookingCode:    code,
		PassengerCount: req.PassengerCount,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// GetByID retrieves a reservation
func (s *reservationService) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

// List retrieves all reservations
func (s *reservationService) List(ctx context.Context) ([]*domain.Reservation, error) {
	return s.reservationRepo.List(ctx)
}

// Update applies the non-nil fields of the request
func (s *reservationService) Update(ctx context.Context, id string, req *dto.UpdateReservationRequest) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}

	if req.ContactName != nil {
		reservation.ContactName = *req.ContactName
	}
	if req.ContactPhone != nil {
		reservation.ContactPhone = *req.ContactPhone
	}
	if req.PassengerCount != nil {
		reservation.PassengerCount = *req.PassengerCount
	}
	reservation.UpdatedAt = time.Now()

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// ChangeStatus moves a reservation to a new lifecycle status
func (s *reservationService) ChangeStatus(ctx context.Context, id string, status string) (*domain.Reservation, error) {
	next := domain.ReservationStatus(status)
	if !next.IsValid() {
		return nil, ErrInvalidStatus
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}

	reservation.Status = next
	reservation.UpdatedAt = time.Now()
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// Delete removes a reservation after its passengers are gone
func (s *reservationService) Delete(ctx context.Context, id string) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation == nil {
		return ErrReservationNotFound
	}

	passengers, err := s.passengerRepo.ListByReservation(ctx, id)
	if err != nil {
		return err
	}
	if len(passengers) > 0 {
		return ErrReservationHasPax
	}
	return s.reservationRepo.Delete(ctx, id)
}

func (s *reservationService) uniqueBookingCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := randomBookingCode()
		if err != nil {
			return "", err
		}
		existing, err := s.reservationRepo.GetByBookingCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", errBookingCodeExhausted
}

func randomBookingCode() (string, error) {
	code := make([]byte, bookingCodeLength)
	max := big.NewInt(int64(len(bookingCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate booking code: %w", err)
		}
		code[i] = bookingCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

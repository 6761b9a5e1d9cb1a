package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/repository"
)

var ErrAircraftNotFound = errors.New("aircraft not found")

// AircraftService defines aircraft management operations
type AircraftService interface {
	Create(ctx context.Context, req *dto.CreateAircraftRequest) (*domain.Aircraft, error)
	GetByID(ctx context.Context, id string) (*domain.Aircraft, error)
	List(ctx context.Context) ([]*domain.Aircraft, error)
	Update(ctx context.Context, id string, req *dto.UpdateAircraftRequest) (*domain.Aircraft, error)
	Delete(ctx context.Context, id string) error
}

type aircraftService struct {
	aircraftRepo repository.AircraftRepository
	airlineRepo  repository.AirlineRepository
}

// NewAircraftService creates a new AircraftService
func NewAircraftService(aircraftRepo repository.AircraftRepository, airlineRepo repository.AirlineRepository) AircraftService {
	return &aircraftService{
		aircraftRepo: aircraftRepo,
		airlineRepo:  airlineRepo,
	}
}

// Create registers a new aircraft under an existing airline
func (s *aircraftService) Create(ctx context.Context, req *dto.CreateAircraftRequest) (*domain.Aircraft, error) {
	airline, err := s.airlineRepo.GetByID(ctx, req.AirlineID)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, ErrAirlineNotFound
	}

	now := time.Now()
	aircraft := &domain.Aircraft{
		ID:            uuid.New().String(),
		Model:         req.Model,
		Manufacturer:  req.Manufacturer,
		AirlineID:     req.AirlineID,
		AirlineName:   airline.Name,
		EconomySeats:  req.EconomySeats,
		BusinessSeats: req.BusinessSeats,
		FirstSeats:    req.FirstSeats,
		CruiseSpeed:   req.CruiseSpeed,
		RangeKM:       req.RangeKM,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.aircraftRepo.Create(ctx, aircraft); err != nil {
		return nil, err
	}
	return aircraft, nil
}

// GetByID retrieves an aircraft
func (s *aircraftService) GetByID(ctx context.Context, id string) (*domain.Aircraft, error) {
	aircraft, err := s.aircraftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, ErrAircraftNotFound
	}
	return aircraft, nil
}

// List retrieves all aircraft
func (s *aircraftService) List(ctx context.Context) ([]*domain.Aircraft, error) {
	return s.aircraftRepo.List(ctx)
}

// Update applies the non-nil fields of the request
func (s *aircraftService) Update(ctx context.Context, id string, req *dto.UpdateAircraftRequest) (*domain.Aircraft, error) {
	aircraft, err := s.aircraftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if aircraft == nil {
		return nil, ErrAircraftNotFound
	}

	if req.AirlineID != nil && *req.AirlineID != aircraft.AirlineID {
		airline, err := s.airlineRepo.GetByID(ctx, *req.AirlineID)
		if err != nil {
			return nil, err
		}
		if airline == nil {
			return nil, ErrAirlineNotFound
		}
		aircraft.AirlineID = airline.ID
		aircraft.AirlineName = airline.Name
	}
	if req.Model != nil {
		aircraft.Model = *req.Model
	}
	if req.Manufacturer != nil {
		aircraft.Manufacturer = *req.Manufacturer
	}
	if req.EconomySeats != nil {
		aircraft.EconomySeats = *req.EconomySeats
	}
	if req.BusinessSeats != nil {
		aircraft.BusinessSeats = *req.BusinessSeats
	}
	if req.FirstSeats != nil {
		aircraft.FirstSeats = *req.FirstSeats
	}
	if req.CruiseSpeed != nil {
		aircraft.CruiseSpeed = *req.CruiseSpeed
	}
	if req.RangeKM != nil {
		aircraft.RangeKM = *req.RangeKM
	}
	if req.IsActive != nil {
		aircraft.IsActive = *req.IsActive
	}
	aircraft.UpdatedAt = time.Now()

	if err := s.aircraftRepo.Update(ctx, aircraft); err != nil {
		return nil, err
	}
	return aircraft, nil
}

// Delete removes an aircraft
func (s *aircraftService) Delete(ctx context.Context, id string) error {
	aircraft, err := s.aircraftRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if aircraft == nil {
		return ErrAircraftNotFound
	}
	return s.aircraftRepo.Delete(ctx, id)
}

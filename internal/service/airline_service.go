package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
	"github.com/alixtron0/tour-backoffice/internal/repository"
	"github.com/alixtron0/tour-backoffice/internal/spreadsheet"
)

var (
	ErrAirlineNotFound   = errors.New("airline not found")
	ErrAirlineCodeExists = errors.New("airline code already exists")
	ErrAirlineInUse      = errors.New("airline has aircraft attached")
)

// AirlineService defines airline management operations
type AirlineService interface {
	Create(ctx context.Context, req *dto.CreateAirlineRequest) (*domain.Airline, error)
	GetByID(ctx context.Context, id string) (*domain.Airline, error)
	List(ctx context.Context) ([]*domain.Airline, error)
	Update(ctx context.Context, id string, req *dto.UpdateAirlineRequest) (*domain.Airline, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) ([]byte, error)
}

type airlineService struct {
	airlineRepo  repository.AirlineRepository
	aircraftRepo repository.AircraftRepository
}

// NewAirlineService creates a new AirlineService
func NewAirlineService(airlineRepo repository.AirlineRepository, aircraftRepo repository.AircraftRepository) AirlineService {
	return &airlineService{
		airlineRepo:  airlineRepo,
		aircraftRepo: aircraftRepo,
	}
}

// Create registers a new airline. Codes are normalized to upper case and
// must be unique.
func (s *airlineService) Create(ctx context.Context, req *dto.CreateAirlineRequest) (*domain.Airline, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.airlineRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAirlineCodeExists
	}

	now := time.Now()
	airline := &domain.Airline{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		EnglishName:  strings.TrimSpace(req.EnglishName),
		Code:         code,
		Country:      req.Country,
		LogoImageID:  req.LogoImageID,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Description:  req.Description,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.airlineRepo.Create(ctx, airline); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAirlineCodeExists
		}
		return nil, err
	}
	return airline, nil
}

// GetByID retrieves an airline
func (s *airlineService) GetByID(ctx context.Context, id string) (*domain.Airline, error) {
	airline, err := s.airlineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, ErrAirlineNotFound
	}
	return airline, nil
}

// List retrieves all airlines
func (s *airlineService) List(ctx context.Context) ([]*domain.Airline, error) {
	return s.airlineRepo.List(ctx)
}

// Update applies the non-nil fields of the request
func (s *airlineService) Update(ctx context.Context, id string, req *dto.UpdateAirlineRequest) (*domain.Airline, error) {
	airline, err := s.airlineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, ErrAirlineNotFound
	}

	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code != airline.Code {
			existing, err := s.airlineRepo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, ErrAirlineCodeExists
			}
			airline.Code = code
		}
	}
	if req.Name != nil {
		airline.Name = strings.TrimSpace(*req.Name)
	}
	if req.EnglishName != nil {
		airline.EnglishName = strings.TrimSpace(*req.EnglishName)
	}
	if req.Country != nil {
		airline.Country = *req.Country
	}
	if req.LogoImageID != nil {
		airline.LogoImageID = req.LogoImageID
	}
	if req.ContactPhone != nil {
		airline.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		airline.ContactEmail = *req.ContactEmail
	}
	if req.Description != nil {
		airline.Description = *req.Description
	}
	if req.IsActive != nil {
		airline.IsActive = *req.IsActive
	}
	airline.UpdatedAt = time.Now()

	if err := s.airlineRepo.Update(ctx, airline); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAirlineCodeExists
		}
		return nil, err
	}
	return airline, nil
}

// Export builds an xlsx workbook of all airlines
func (s *airlineService) Export(ctx context.Context) ([]byte, error) {
	airlines, err := s.airlineRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return spreadsheet.ExportAirlines(airlines)
}

// Delete removes an airline unless aircraft still reference it
func (s *airlineService) Delete(ctx context.Context, id string) error {
	airline, err := s.airlineRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if airline == nil {
		return ErrAirlineNotFound
	}

	aircraft, err := s.aircraftRepo.ListByAirline(ctx, id)
	if err != nil {
		return err
	}
	if len(aircraft) > 0 {
		return ErrAirlineInUse
	}
	return s.airlineRepo.Delete(ctx, id)
}

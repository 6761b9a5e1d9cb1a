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
)

var (
	ErrCityNotFound = errors.New("city not found")
	ErrCityInUse    = errors.New("city is used by a route")
)

// CityService defines city management operations
type CityService interface {
	Create(ctx context.Context, req *dto.CreateCityRequest) (*domain.City, error)
	GetByID(ctx context.Context, id string) (*domain.City, error)
	List(ctx context.Context) ([]*domain.City, error)
	Update(ctx context.Context, id string, req *dto.UpdateCityRequest) (*domain.City, error)
	Delete(ctx context.Context, id string) error
}

type cityService struct {
	cityRepo  repository.CityRepository
	routeRepo repository.RouteRepository
}

// NewCityService creates a new CityService
func NewCityService(cityRepo repository.CityRepository, routeRepo repository.RouteRepository) CityService {
	return &cityService{
		cityRepo:  cityRepo,
		routeRepo: routeRepo,
	}
}

// Create registers a new city
func (s *cityService) Create(ctx context.Context, req *dto.CreateCityRequest) (*domain.City, error) {
	now := time.Now()
	city := &domain.City{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		EnglishName: strings.TrimSpace(req.EnglishName),
		Country:     strings.TrimSpace(req.Country),
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.cityRepo.Create(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

// GetByID retrieves a city
func (s *cityService) GetByID(ctx context.Context, id string) (*domain.City, error) {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}
	return city, nil
}

// List retrieves all cities
func (s *cityService) List(ctx context.Context) ([]*domain.City, error) {
	return s.cityRepo.List(ctx)
}

// Update applies the non-nil fields of the request
func (s *cityService) Update(ctx context.Context, id string, req *dto.UpdateCityRequest) (*domain.City, error) {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}

	if req.Name != nil {
		city.Name = strings.TrimSpace(*req.Name)
	}
	if req.EnglishName != nil {
		city.EnglishName = strings.TrimSpace(*req.EnglishName)
	}
	if req.Country != nil {
		city.Country = strings.TrimSpace(*req.Country)
	}
	if req.Code != nil {
		city.Code = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.IsActive != nil {
		city.IsActive = *req.IsActive
	}
	city.UpdatedAt = time.Now()

	if err := s.cityRepo.Update(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

// Delete removes a city unless a route still references it
func (s *cityService) Delete(ctx context.Context, id string) error {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if city == nil {
		return ErrCityNotFound
	}

	routes, err := s.routeRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, route := range routes {
		if route.OriginCityID == id || route.DestinationCityID == id {
			return ErrCityInUse
		}
	}
	return s.cityRepo.Delete(ctx, id)
}

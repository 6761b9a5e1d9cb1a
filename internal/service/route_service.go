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

var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrSameCities      = errors.New("origin and destination must differ")
	ErrRouteInUse      = errors.New("route is used by a package")
)

// RouteService defines route management operations
type RouteService interface {
	Create(ctx context.Context, req *dto.CreateRouteRequest) (*domain.Route, error)
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	List(ctx context.Context) ([]*domain.Route, error)
	Update(ctx context.Context, id string, req *dto.UpdateRouteRequest) (*domain.Route, error)
	Delete(ctx context.Context, id string) error
}

type routeService struct {
	routeRepo   repository.RouteRepository
	cityRepo    repository.CityRepository
	packageRepo repository.PackageRepository
}

// NewRouteService creates a new RouteService
func NewRouteService(
	routeRepo repository.RouteRepository,
	cityRepo repository.CityRepository,
	packageRepo repository.PackageRepository,
) RouteService {
	return &routeService{
		routeRepo:   routeRepo,
		cityRepo:    cityRepo,
		packageRepo: packageRepo,
	}
}

// Create registers a new route between two existing cities
func (s *routeService) Create(ctx context.Context, req *dto.CreateRouteRequest) (*domain.Route, error) {
	if req.OriginCityID == req.DestinationCityID {
		return nil, ErrSameCities
	}

	origin, err := s.city(ctx, req.OriginCityID)
	if err != nil {
		return nil, err
	}
	destination, err := s.city(ctx, req.DestinationCityID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	route := &domain.Route{
		ID:                uuid.New().String(),
		OriginCityID:      origin.ID,
		DestinationCityID: destination.ID,
		Origin:            origin.Name,
		Destination:       destination.Name,
		Description:       req.Description,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// GetByID retrieves a route
func (s *routeService) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}
	return route, nil
}

// List retrieves all routes
func (s *routeService) List(ctx context.Context) ([]*domain.Route, error) {
	return s.routeRepo.List(ctx)
}

// Update applies the non-nil fields of the request
func (s *routeService) Update(ctx context.Context, id string, req *dto.UpdateRouteRequest) (*domain.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}

	originID := route.OriginCityID
	destinationID := route.DestinationCityID
	if req.OriginCityID != nil {
		originID = *req.OriginCityID
	}
	if req.DestinationCityID != nil {
		destinationID = *req.DestinationCityID
	}
	if originID == destinationID {
		return nil, ErrSameCities
	}

	if req.OriginCityID != nil {
		origin, err := s.city(ctx, originID)
		if err != nil {
			return nil, err
		}
		route.OriginCityID = origin.ID
		route.Origin = origin.Name
	}
	if req.DestinationCityID != nil {
		destination, err := s.city(ctx, destinationID)
		if err != nil {
			return nil, err
		}
		route.DestinationCityID = destination.ID
		route.Destination = destination.Name
	}
	if req.Description != nil {
		route.Description = *req.Description
	}
	if req.IsActive != nil {
		route.IsActive = *req.IsActive
	}
	route.UpdatedAt = time.Now()

	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// Delete removes a route unless a package still references it
func (s *routeService) Delete(ctx context.Context, id string) error {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if route == nil {
		return ErrRouteNotFound
	}

	packages, err := s.packageRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, pkg := range packages {
		if pkg.RouteID == id {
			return ErrRouteInUse
		}
	}
	return s.routeRepo.Delete(ctx, id)
}

func (s *routeService) city(ctx context.Context, id string) (*domain.City, error) {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrCityNotFound
	}
	return city, nil
}

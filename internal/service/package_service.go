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
	ErrPackageNotFound = errors.New("package not found")
	ErrInvalidDates    = errors.New("end date must be after start date")
	ErrInvalidLeg      = errors.New("invalid transport leg")
	ErrPackageInUse    = errors.New("package has reservations attached")
)

// PackageService defines travel package management operations
type PackageService interface {
	Create(ctx context.Context, req *dto.CreatePackageRequest, createdBy string) (*domain.Package, error)
	GetByID(ctx context.Context, id string) (*domain.Package, error)
	List(ctx context.Context) ([]*domain.Package, error)
	Update(ctx context.Context, id string, req *dto.UpdatePackageRequest) (*domain.Package, error)
	Delete(ctx context.Context, id string) error
}

type packageService struct {
	packageRepo     repository.PackageRepository
	routeRepo       repository.RouteRepository
	airlineRepo     repository.AirlineRepository
	reservationRepo repository.ReservationRepository
}

// NewPackageService creates a new PackageService
func NewPackageService(
	packageRepo repository.PackageRepository,
	routeRepo repository.RouteRepository,
	airlineRepo repository.AirlineRepository,
	reservationRepo repository.ReservationRepository,
) PackageService {
	return &packageService{
		packageRepo:     packageRepo,
		routeRepo:       routeRepo,
		airlineRepo:     airlineRepo,
		reservationRepo: reservationRepo,
	}
}

// Create registers a new package against an existing route. Every air
// leg must reference an existing airline.
func (s *packageService) Create(ctx context.Context, req *dto.CreatePackageRequest, createdBy string) (*domain.Package, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDates
	}

	route, err := s.routeRepo.GetByID(ctx, req.RouteID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, ErrRouteNotFound
	}

	legs := req.DomainLegs()
	if err := s.checkLegs(ctx, legs); err != nil {
		return nil, err
	}

	now := time.Now()
	pkg := &domain.Package{
		ID:            uuid.New().String(),
		Name:          req.Name,
		RouteID:       req.RouteID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		TransportLegs: legs,
		Rooms:         domain.RoomPricing(req.Rooms),
		Hotels:        toHotels(req.Hotels),
		Services:      toServices(req.Services),
		BasePrice:     req.BasePrice,
		IsVisible:     req.IsVisible,
		IsActive:      true,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// GetByID retrieves a package
func (s *packageService) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

// List retrieves all packages
func (s *packageService) List(ctx context.Context) ([]*domain.Package, error) {
	return s.packageRepo.List(ctx)
}

// Update applies the non-nil fields of the request
func (s *packageService) Update(ctx context.Context, id string, req *dto.UpdatePackageRequest) (*domain.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	if req.RouteID != nil && *req.RouteID != pkg.RouteID {
		route, err := s.routeRepo.GetByID(ctx, *req.RouteID)
		if err != nil {
			return nil, err
		}
		if route == nil {
			return nil, ErrRouteNotFound
		}
		pkg.RouteID = route.ID
	}
	if req.StartDate != nil {
		pkg.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		pkg.EndDate = *req.EndDate
	}
	if !pkg.EndDate.After(pkg.StartDate) {
		return nil, ErrInvalidDates
	}
	if legs := req.DomainLegs(); legs != nil {
		if err := s.checkLegs(ctx, legs); err != nil {
			return nil, err
		}
		pkg.TransportLegs = legs
	}
	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Rooms != nil {
		pkg.Rooms = domain.RoomPricing(*req.Rooms)
	}
	if req.Hotels != nil {
		pkg.Hotels = toHotels(req.Hotels)
	}
	if req.Services != nil {
		pkg.Services = toServices(req.Services)
	}
	if req.BasePrice != nil {
		pkg.BasePrice = *req.BasePrice
	}
	if req.IsVisible != nil {
		pkg.IsVisible = *req.IsVisible
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}
	pkg.UpdatedAt = time.Now()

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Delete removes a package unless a reservation still references it
func (s *packageService) Delete(ctx context.Context, id string) error {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pkg == nil {
		return ErrPackageNotFound
	}

	reservations, err := s.reservationRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, reservation := range reservations {
		if reservation.PackageID == id {
			return ErrPackageInUse
		}
	}
	return s.packageRepo.Delete(ctx, id)
}

func (s *packageService) checkLegs(ctx context.Context, legs []domain.TransportLeg) error {
	for _, leg := range legs {
		if !leg.IsValid() {
			return ErrInvalidLeg
		}
		if leg.Mode == domain.TransportAir {
			airline, err := s.airlineRepo.GetByID(ctx, *leg.AirlineID)
			if err != nil {
				return err
			}
			if airline == nil {
				return ErrAirlineNotFound
			}
		}
	}
	return nil
}

func toHotels(in []dto.PackageHotelInput) []domain.PackageHotel {
	hotels := make([]domain.PackageHotel, 0, len(in))
	for _, h := range in {
		hotels = append(hotels, domain.PackageHotel(h))
	}
	return hotels
}

func toServices(in []dto.PackageServiceInput) []domain.PackageService {
	services := make([]domain.PackageService, 0, len(in))
	for _, svc := range in {
		services = append(services, domain.PackageService(svc))
	}
	return services
}

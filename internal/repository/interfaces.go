package repository

import (
	"context"

	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
)

// UserRepository defines data access for back-office users
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// AirlineRepository defines data access for airlines
type AirlineRepository interface {
	Create(ctx context.Context, airline *domain.Airline) error
	GetByID(ctx context.Context, id string) (*domain.Airline, error)
	GetByCode(ctx context.Context, code string) (*domain.Airline, error)
	List(ctx context.Context) ([]*domain.Airline, error)
	Update(ctx context.Context, airline *domain.Airline) error
	Delete(ctx context.Context, id string) error
}

// AircraftRepository defines data access for aircraft
type AircraftRepository interface {
	Create(ctx context.Context, aircraft *domain.Aircraft) error
	GetByID(ctx context.Context, id string) (*domain.Aircraft, error)
	List(ctx context.Context) ([]*domain.Aircraft, error)
	ListByAirline(ctx context.Context, airlineID string) ([]*domain.Aircraft, error)
	Update(ctx context.Context, aircraft *domain.Aircraft) error
	Delete(ctx context.Context, id string) error
}

// CityRepository defines data access for cities
type CityRepository interface {
	Create(ctx context.Context, city *domain.City) error
	GetByID(ctx context.Context, id string) (*domain.City, error)
	List(ctx context.Context) ([]*domain.City, error)
	Update(ctx context.Context, city *domain.City) error
	Delete(ctx context.Context, id string) error
}

// RouteRepository defines data access for routes
type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	List(ctx context.Context) ([]*domain.Route, error)
	Update(ctx context.Context, route *domain.Route) error
	Delete(ctx context.Context, id string) error
}

// PackageRepository defines data access for travel packages
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) error
	GetByID(ctx context.Context, id string) (*domain.Package, error)
	List(ctx context.Context) ([]*domain.Package, error)
	Update(ctx context.Context, pkg *domain.Package) error
	Delete(ctx context.Context, id string) error
}

// PassengerRepository defines data access for passengers. Passengers are
// the one entity large enough to page server-side.
type PassengerRepository interface {
	Create(ctx context.Context, passenger *domain.Passenger) error
	GetByID(ctx context.Context, id string) (*domain.Passenger, error)
	List(ctx context.Context, filter dto.PassengerListFilter) ([]*domain.Passenger, int64, error)
	ListByReservation(ctx context.Context, reservationID string) ([]*domain.Passenger, error)
	Update(ctx context.Context, passenger *domain.Passenger) error
	Delete(ctx context.Context, id string) error
}

// ReservationRepository defines data access for reservations
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetByBookingCode(ctx context.Context, code string) (*domain.Reservation, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
	Delete(ctx context.Context, id string) error
}

// TicketRepository defines data access for floating tickets
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter dto.TicketListFilter) ([]*domain.Ticket, int64, error)
	Delete(ctx context.Context, id string) error
}

// ImageRepository defines data access for image library metadata
type ImageRepository interface {
	Create(ctx context.Context, image *domain.ImageAsset) error
	GetByID(ctx context.Context, id string) (*domain.ImageAsset, error)
	List(ctx context.Context, filter dto.ImageListFilter) ([]*domain.ImageAsset, error)
	Update(ctx context.Context, image *domain.ImageAsset) error
	Delete(ctx context.Context, id string) error
}

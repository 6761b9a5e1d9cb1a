package di

import (
	"github.com/alixtron0/tour-backoffice/internal/cache"
	"github.com/alixtron0/tour-backoffice/internal/config"
	"github.com/alixtron0/tour-backoffice/internal/database"
	"github.com/alixtron0/tour-backoffice/internal/handler"
	"github.com/alixtron0/tour-backoffice/internal/repository"
	"github.com/alixtron0/tour-backoffice/internal/service"
)

// Container holds all dependencies of the back-office API
type Container struct {
	// Infrastructure
	DB         *database.PostgresDB
	Redis      *cache.Client
	TokenStore *cache.TokenStore

	// Repositories
	UserRepo        repository.UserRepository
	AirlineRepo     repository.AirlineRepository
	AircraftRepo    repository.AircraftRepository
	CityRepo        repository.CityRepository
	RouteRepo       repository.RouteRepository
	PackageRepo     repository.PackageRepository
	PassengerRepo   repository.PassengerRepository
	ReservationRepo repository.ReservationRepository
	TicketRepo      repository.TicketRepository
	ImageRepo       repository.ImageRepository

	// Services
	AuthService        service.AuthService
	AirlineService     service.AirlineService
	AircraftService    service.AircraftService
	CityService        service.CityService
	RouteService       service.RouteService
	PackageService     service.PackageService
	PassengerService   service.PassengerService
	ReservationService service.ReservationService
	TicketService      service.TicketService
	ImageService       service.ImageService

	// Handlers
	HealthHandler      *handler.HealthHandler
	AuthHandler        *handler.AuthHandler
	AirlineHandler     *handler.AirlineHandler
	AircraftHandler    *handler.AircraftHandler
	CityHandler        *handler.CityHandler
	RouteHandler       *handler.RouteHandler
	PackageHandler     *handler.PackageHandler
	PassengerHandler   *handler.PassengerHandler
	ReservationHandler *handler.ReservationHandler
	TicketHandler      *handler.TicketHandler
	ImageHandler       *handler.ImageHandler
}

// NewContainer wires repositories, services and handlers. Redis is
// optional; when nil the airline repository runs uncached.
func NewContainer(cfg *config.Config, db *database.PostgresDB, redisClient *cache.Client) *Container {
	c := &Container{
		DB:    db,
		Redis: redisClient,
	}

	// Repositories
	c.UserRepo = repository.NewPostgresUserRepository(db)
	c.AircraftRepo = repository.NewPostgresAircraftRepository(db)
	c.CityRepo = repository.NewPostgresCityRepository(db)
	c.RouteRepo = repository.NewPostgresRouteRepository(db)
	c.PackageRepo = repository.NewPostgresPackageRepository(db)
	c.PassengerRepo = repository.NewPostgresPassengerRepository(db)
	c.ReservationRepo = repository.NewPostgresReservationRepository(db)
	c.TicketRepo = repository.NewPostgresTicketRepository(db)
	c.ImageRepo = repository.NewPostgresImageRepository(db)

	airlineRepo := repository.AirlineRepository(repository.NewPostgresAirlineRepository(db))
	if redisClient != nil {
		airlineRepo = repository.NewCachedAirlineRepository(airlineRepo, redisClient)
		c.TokenStore = cache.NewTokenStore(redisClient)
	}
	c.AirlineRepo = airlineRepo

	// Services
	var revoker service.TokenRevoker
	if c.TokenStore != nil {
		revoker = c.TokenStore
	}
	c.AuthService = service.NewAuthService(c.UserRepo, revoker, &service.AuthServiceConfig{
		JWTSecret:         cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.AccessTokenTTL,
		Issuer:            cfg.JWT.Issuer,
	})
	c.AirlineService = service.NewAirlineService(c.AirlineRepo, c.AircraftRepo)
	c.AircraftService = service.NewAircraftService(c.AircraftRepo, c.AirlineRepo)
	c.CityService = service.NewCityService(c.CityRepo, c.RouteRepo)
	c.RouteService = service.NewRouteService(c.RouteRepo, c.CityRepo, c.PackageRepo)
	c.PackageService = service.NewPackageService(c.PackageRepo, c.RouteRepo, c.AirlineRepo, c.ReservationRepo)
	c.PassengerService = service.NewPassengerService(c.PassengerRepo, c.ReservationRepo)
	c.ReservationService = service.NewReservationService(c.ReservationRepo, c.PackageRepo, c.PassengerRepo)
	c.TicketService = service.NewTicketService(c.TicketRepo)
	c.ImageService = service.NewImageService(c.ImageRepo, &service.ImageServiceConfig{
		Dir:         cfg.Upload.Dir,
		MaxSizeMB:   cfg.Upload.MaxSizeMB,
		AllowedMIME: cfg.Upload.AllowedMIME,
	})

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(db, redisClient, cfg.App.Name, cfg.App.Version)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.AirlineHandler = handler.NewAirlineHandler(c.AirlineService)
	c.AircraftHandler = handler.NewAircraftHandler(c.AircraftService)
	c.CityHandler = handler.NewCityHandler(c.CityService)
	c.RouteHandler = handler.NewRouteHandler(c.RouteService)
	c.PackageHandler = handler.NewPackageHandler(c.PackageService)
	c.PassengerHandler = handler.NewPassengerHandler(c.PassengerService)
	c.ReservationHandler = handler.NewReservationHandler(c.ReservationService, c.PassengerService)
	c.TicketHandler = handler.NewTicketHandler(c.TicketService)
	c.ImageHandler = handler.NewImageHandler(c.ImageService)

	return c
}

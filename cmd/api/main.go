package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/cache"
	"github.com/alixtron0/tour-backoffice/internal/config"
	"github.com/alixtron0/tour-backoffice/internal/database"
	"github.com/alixtron0/tour-backoffice/internal/di"
	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/logger"
	"github.com/alixtron0/tour-backoffice/internal/middleware"
	"github.com/alixtron0/tour-backoffice/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.App.Environment,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting tour back-office API...")

	ctx := context.Background()

	// Initialize OpenTelemetry
	telemetryCfg := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
	if _, err := telemetry.Init(ctx, telemetryCfg); err != nil {
		appLog.Warn(fmt.Sprintf("Failed to initialize telemetry: %v", err))
	} else if telemetryCfg.Enabled {
		appLog.Info(fmt.Sprintf("Telemetry initialized (collector: %s)", telemetryCfg.CollectorAddr))
	}
	defer telemetry.Shutdown(ctx)

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	// Initialize Redis (optional, caching is disabled if the connection fails)
	var redisClient *cache.Client
	redisCfg := &cache.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	}
	redisClient, err = cache.NewClient(ctx, redisCfg)
	if err != nil {
		appLog.Warn(fmt.Sprintf("Redis connection failed (caching disabled): %v", err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info(fmt.Sprintf("Redis connected (%s)", redisCfg.Addr()))
	}

	// Build dependency injection container
	container := di.NewContainer(cfg, db, redisClient)

	// Setup Gin
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLog))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	router.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.App.Name))
	}

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	jwtConfig := &middleware.JWTConfig{
		Secret: cfg.JWT.Secret,
		SkipPaths: []string{
			"/health",
			"/ready",
			"/api/v1/auth/login",
		},
	}
	if container.TokenStore != nil {
		jwtConfig.IsRevoked = container.TokenStore.IsRevoked
	}
	auth := middleware.JWTMiddleware(jwtConfig)
	staff := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleColleague)
	admins := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin)
	superAdmin := middleware.RequireRole(domain.RoleSuperAdmin)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", container.AuthHandler.Login)
			authGroup.POST("/logout", auth, container.AuthHandler.Logout)
			authGroup.GET("/me", auth, container.AuthHandler.Me)
		}

		users := v1.Group("/users", auth, superAdmin)
		{
			users.GET("", container.AuthHandler.ListUsers)
			users.POST("", container.AuthHandler.CreateUser)
			users.PUT("/:id/active", container.AuthHandler.SetUserActive)
		}

		airlines := v1.Group("/airlines", auth, staff)
		{
			airlines.GET("", container.AirlineHandler.List)
			airlines.GET("/export", container.AirlineHandler.Export)
			airlines.GET("/:id", container.AirlineHandler.Get)

			airlines.POST("", admins, container.AirlineHandler.Create)
			airlines.PUT("/:id", admins, container.AirlineHandler.Update)
			airlines.DELETE("/:id", admins, container.AirlineHandler.Delete)
		}

		aircraft := v1.Group("/aircraft", auth, staff)
		{
			aircraft.GET("", container.AircraftHandler.List)
			aircraft.GET("/:id", container.AircraftHandler.Get)

			aircraft.POST("", admins, container.AircraftHandler.Create)
			aircraft.PUT("/:id", admins, container.AircraftHandler.Update)
			aircraft.DELETE("/:id", admins, container.AircraftHandler.Delete)
		}

		cities := v1.Group("/cities", auth, staff)
		{
			cities.GET("", container.CityHandler.List)
			cities.GET("/:id", container.CityHandler.Get)

			cities.POST("", admins, container.CityHandler.Create)
			cities.PUT("/:id", admins, container.CityHandler.Update)
			cities.DELETE("/:id", admins, container.CityHandler.Delete)
		}

		routes := v1.Group("/routes", auth, staff)
		{
			routes.GET("", container.RouteHandler.List)
			routes.GET("/:id", container.RouteHandler.Get)

			routes.POST("", admins, container.RouteHandler.Create)
			routes.PUT("/:id", admins, container.RouteHandler.Update)
			routes.DELETE("/:id", admins, container.RouteHandler.Delete)
		}

		packages := v1.Group("/packages", auth, staff)
		{
			packages.GET("", container.PackageHandler.List)
			packages.GET("/:id", container.PackageHandler.Get)

			packages.POST("", admins, container.PackageHandler.Create)
			packages.PUT("/:id", admins, container.PackageHandler.Update)
			packages.DELETE("/:id", admins, container.PackageHandler.Delete)
		}

		reservations := v1.Group("/reservations", auth, staff)
		{
			reservations.GET("", container.ReservationHandler.List)
			reservations.GET("/:id", container.ReservationHandler.Get)
			reservations.GET("/:id/passengers", container.ReservationHandler.Passengers)
			reservations.POST("", container.ReservationHandler.Create)
			reservations.PUT("/:id", container.ReservationHandler.Update)
			reservations.PUT("/:id/status", container.ReservationHandler.ChangeStatus)

			reservations.DELETE("/:id", admins, container.ReservationHandler.Delete)
		}

		passengers := v1.Group("/passengers", auth, staff)
		{
			passengers.GET("", container.PassengerHandler.List)
			passengers.GET("/export", container.PassengerHandler.Export)
			passengers.GET("/:id", container.PassengerHandler.Get)
			passengers.POST("", container.PassengerHandler.Create)
			passengers.POST("/import", container.PassengerHandler.Import)
			passengers.PUT("/:id", container.PassengerHandler.Update)
			passengers.DELETE("/:id", container.PassengerHandler.Delete)
		}

		tickets := v1.Group("/tickets", auth, staff)
		{
			tickets.GET("", container.TicketHandler.List)
			tickets.POST("/preview", container.TicketHandler.Preview)
			tickets.GET("/:id", container.TicketHandler.Get)
			tickets.GET("/:id/pdf", container.TicketHandler.PDF)
			tickets.POST("", container.TicketHandler.Create)

			tickets.DELETE("/:id", admins, container.TicketHandler.Delete)
		}

		images := v1.Group("/images", auth, staff)
		{
			images.GET("", container.ImageHandler.List)
			images.GET("/:id", container.ImageHandler.Get)
			images.GET("/:id/file", container.ImageHandler.File)
			images.POST("", container.ImageHandler.Upload)
			images.PUT("/:id", container.ImageHandler.Update)

			images.DELETE("/:id", admins, container.ImageHandler.Delete)
		}
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Back-office API listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}

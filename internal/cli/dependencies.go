package cli

import (
	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/config"
	"flight-ops/dispatch/internal/db/repositories"
	"flight-ops/dispatch/internal/metrics"
	"flight-ops/dispatch/internal/services"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Services struct {
	Availability *services.AvailabilityService
	Scheduler    *services.FlightScheduler
	Reviser      *services.FlightReviser
	Flights      *services.FlightQueryService
	Airports     *services.AirportService
	Aircraft     *services.AircraftService
	Pilots       *services.PilotService
	Analytics    *services.AnalyticsService
	Export       *services.ExportService
}

type Dependencies struct {
	Config   *config.Config
	Repo     *repositories.Repository
	Metrics  *metrics.MetricsRegistry
	Logger   *zap.SugaredLogger
	Services *Services
}

// InitDependencies wires every service over one store handle
func InitDependencies(cfg *config.Config, gormDB *gorm.DB, sqlxDB *sqlx.DB, m *metrics.MetricsRegistry, logger *zap.SugaredLogger) *Dependencies {
	repo := repositories.NewRepository(gormDB)

	airportCache := services.NewAirportCache(
		common.NewLookupCache("airport", cfg.Cache.AirportTTLSeconds, cfg.Cache.CleanupSeconds, m),
	)
	availability := services.NewAvailabilityService(repo)
	flights := services.NewFlightQueryService(repo, sqlxDB)
	analytics := services.NewAnalyticsService(sqlxDB)

	svc := &Services{
		Availability: availability,
		Scheduler:    services.NewFlightScheduler(repo, availability, airportCache, m, logger),
		Reviser:      services.NewFlightReviser(repo, availability, airportCache, m, logger),
		Flights:      flights,
		Airports:     services.NewAirportService(repo, airportCache, logger),
		Aircraft:     services.NewAircraftService(repo, logger),
		Pilots:       services.NewPilotService(repo, logger),
		Analytics:    analytics,
		Export:       services.NewExportService(flights, analytics, m, logger),
	}

	return &Dependencies{
		Config:   cfg,
		Repo:     repo,
		Metrics:  m,
		Logger:   logger,
		Services: svc,
	}
}

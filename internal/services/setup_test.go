package services

import (
	"context"
	"testing"

	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/db/dbtest"
	"flight-ops/dispatch/internal/db/repositories"
	"flight-ops/dispatch/internal/metrics"
	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/models/gorm"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormlib "gorm.io/gorm"
)

type testEnv struct {
	db           *gormlib.DB
	repo         *repositories.Repository
	metrics      *metrics.MetricsRegistry
	airports     *AirportCache
	availability *AvailabilityService
	scheduler    *FlightScheduler
	reviser      *FlightReviser
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := dbtest.NewSQLite(t)
	repo := repositories.NewRepository(db)
	m := metrics.NewMetricsRegistry()
	logger := zap.NewNop().Sugar()
	airports := NewAirportCache(common.NewLookupCache("airport", 300, 600, m))
	availability := NewAvailabilityService(repo)

	return &testEnv{
		db:           db,
		repo:         repo,
		metrics:      m,
		airports:     airports,
		availability: availability,
		scheduler:    NewFlightScheduler(repo, availability, airports, m, logger),
		reviser:      NewFlightReviser(repo, availability, airports, m, logger),
	}
}

// seed adds airports LHR, JFK, CDG, aircraft A1, A2 and pilots P1, P2, P3
func (e *testEnv) seed(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	for _, a := range []gorm.Airport{
		{IATACode: "LHR", Name: "Heathrow", City: "London", Country: "United Kingdom"},
		{IATACode: "JFK", Name: "John F. Kennedy", City: "New York", Country: "United States"},
		{IATACode: "CDG", Name: "Charles de Gaulle", City: "Paris", Country: "France"},
	} {
		a := a
		require.NoError(t, e.repo.Airports.Create(ctx, &a))
	}
	for _, a := range []gorm.Aircraft{
		{AircraftID: "A1", Model: "A320", Capacity: 180, Manufacturer: "Airbus", RegistrationNumber: "G-EUPT"},
		{AircraftID: "A2", Model: "777", Capacity: 350, Manufacturer: "Boeing", RegistrationNumber: "G-VIIA"},
	} {
		a := a
		require.NoError(t, e.repo.Aircraft.Create(ctx, &a))
	}
	for _, p := range []gorm.Pilot{
		{PilotID: "P1", FirstName: "Amelia", LastName: "Hart"},
		{PilotID: "P2", FirstName: "Chuck", LastName: "Yeager"},
		{PilotID: "P3", FirstName: "Bessie", LastName: "Coleman"},
	} {
		p := p
		require.NoError(t, e.repo.Pilots.Create(ctx, &p))
	}
	return e
}

func (e *testEnv) create(t *testing.T, origin, destination, date, aircraftID, pilotID string) *gorm.Flight {
	t.Helper()
	flight, err := e.scheduler.CreateFlight(context.Background(), &dtos.CreateFlightRequest{
		Origin: origin, Destination: destination, Date: date, Time: "14:30",
		Status: "Scheduled", AircraftID: aircraftID, PilotID: pilotID,
	})
	require.NoError(t, err)
	return flight
}

func (e *testEnv) countRows(t *testing.T, table string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Table(table).Count(&count).Error)
	return count
}

func strPtr(s string) *string { return &s }

package repositories

import (
	"context"
	"errors"
	"testing"

	"flight-ops/dispatch/internal/constants"
	"flight-ops/dispatch/internal/db/dbtest"
	"flight-ops/dispatch/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlib "gorm.io/gorm"
)

func seedRepository(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(dbtest.NewSQLite(t))
	ctx := context.Background()

	for _, a := range []gorm.Airport{
		{IATACode: "LHR", Name: "Heathrow", City: "London", Country: "United Kingdom"},
		{IATACode: "JFK", Name: "John F. Kennedy", City: "New York", Country: "United States"},
		{IATACode: "CDG", Name: "Charles de Gaulle", City: "Paris", Country: "France"},
	} {
		a := a
		require.NoError(t, repo.Airports.Create(ctx, &a))
	}
	for _, a := range []gorm.Aircraft{
		{AircraftID: "A1", Model: "A320", Capacity: 180, Manufacturer: "Airbus", RegistrationNumber: "G-EUPT"},
		{AircraftID: "A2", Model: "777", Capacity: 350, Manufacturer: "Boeing", RegistrationNumber: "G-VIIA"},
	} {
		a := a
		require.NoError(t, repo.Aircraft.Create(ctx, &a))
	}
	for _, p := range []gorm.Pilot{
		{PilotID: "P1", FirstName: "Amelia", LastName: "Hart"},
		{PilotID: "P2", FirstName: "Chuck", LastName: "Yeager"},
	} {
		p := p
		require.NoError(t, repo.Pilots.Create(ctx, &p))
	}
	return repo
}

func insertFlight(t *testing.T, repo *Repository, aircraftID, pilotID, date string) *gorm.Flight {
	t.Helper()
	ctx := context.Background()
	flight := &gorm.Flight{
		OriginID: "LHR", DestinationID: "JFK", AircraftID: aircraftID,
		FlightDate: date, FlightTime: "14:30", Status: constants.FlightScheduled,
	}
	require.NoError(t, repo.Flights.InsertFlight(ctx, flight))
	require.NoError(t, repo.Flights.InsertAssignment(ctx, flight.FlightID, pilotID))
	return flight
}

func TestAirportRepository_GetByCode_CaseInsensitive(t *testing.T) {
	repo := seedRepository(t)

	airport, err := repo.Airports.GetByCode(context.Background(), "lhr")
	require.NoError(t, err)
	require.NotNil(t, airport)
	assert.Equal(t, "Heathrow", airport.Name)

	missing, err := repo.Airports.GetByCode(context.Background(), "ZZZ")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAirportRepository_ListOrderedByCountry(t *testing.T) {
	repo := seedRepository(t)

	airports, err := repo.Airports.List(context.Background())
	require.NoError(t, err)
	require.Len(t, airports, 3)
	assert.Equal(t, "CDG", airports[0].IATACode)
	assert.Equal(t, "JFK", airports[2].IATACode)
}

func TestAirportRepository_DuplicateCodeTranslated(t *testing.T) {
	repo := seedRepository(t)

	err := repo.Airports.Create(context.Background(), &gorm.Airport{IATACode: "LHR", Name: "Again", City: "London", Country: "UK"})
	assert.True(t, errors.Is(err, gormlib.ErrDuplicatedKey), "got %v", err)
}

func TestAirportRepository_BatchUpsert(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()

	err := repo.Airports.BatchUpsert(ctx, []gorm.Airport{
		{IATACode: "LHR", Name: "London Heathrow", City: "London", Country: "United Kingdom"},
		{IATACode: "AMS", Name: "Schiphol", City: "Amsterdam", Country: "Netherlands"},
	})
	require.NoError(t, err)

	count, err := repo.Airports.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	lhr, err := repo.Airports.GetByCode(ctx, "LHR")
	require.NoError(t, err)
	assert.Equal(t, "London Heathrow", lhr.Name)
}

func TestAircraftRepository_AvailableOn_WithExclusion(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()
	flight := insertFlight(t, repo, "A1", "P1", "2025-06-01")

	free, err := repo.Aircraft.AvailableOn(ctx, "2025-06-01", 0)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "A2", free[0].AircraftID)

	withOwn, err := repo.Aircraft.AvailableOn(ctx, "2025-06-01", flight.FlightID)
	require.NoError(t, err)
	assert.Len(t, withOwn, 2)

	otherDay, err := repo.Aircraft.AvailableOn(ctx, "2025-06-02", 0)
	require.NoError(t, err)
	assert.Len(t, otherDay, 2)
}

func TestPilotRepository_AvailableOnAndSchedule(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()
	insertFlight(t, repo, "A1", "P1", "2025-06-02")
	insertFlight(t, repo, "A2", "P1", "2025-06-01")

	free, err := repo.Pilots.AvailableOn(ctx, "2025-06-01", 0)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "P2", free[0].PilotID)

	schedule, err := repo.Pilots.Schedule(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, "2025-06-01", schedule[0].FlightDate)

	count, err := repo.Pilots.CountAssignments(ctx, "P1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestFlightRepository_BookedChecks(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()
	flight := insertFlight(t, repo, "A1", "P1", "2025-06-01")

	booked, err := repo.Flights.AircraftBooked(ctx, "A1", "2025-06-01", 0)
	require.NoError(t, err)
	assert.True(t, booked)

	booked, err = repo.Flights.AircraftBooked(ctx, "A1", "2025-06-01", flight.FlightID)
	require.NoError(t, err)
	assert.False(t, booked)

	booked, err = repo.Flights.PilotBooked(ctx, "P1", "2025-06-01", 0)
	require.NoError(t, err)
	assert.True(t, booked)

	booked, err = repo.Flights.PilotBooked(ctx, "P2", "2025-06-01", 0)
	require.NoError(t, err)
	assert.False(t, booked)
}

func TestFlightRepository_StoreRejectsSecondAircraftBooking(t *testing.T) {
	repo := seedRepository(t)
	insertFlight(t, repo, "A1", "P1", "2025-06-01")

	err := repo.Flights.InsertFlight(context.Background(), &gorm.Flight{
		OriginID: "CDG", DestinationID: "JFK", AircraftID: "A1",
		FlightDate: "2025-06-01", FlightTime: "09:00", Status: constants.FlightDelayed,
	})
	assert.Error(t, err)
}

func TestFlightRepository_ReplaceAssignment(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()
	flight := insertFlight(t, repo, "A1", "P1", "2025-06-01")

	require.NoError(t, repo.Transaction(ctx, func(tx *Repository) error {
		return tx.Flights.ReplaceAssignment(ctx, flight.FlightID, "P2")
	}))

	pilotID, err := repo.Flights.AssignmentFor(ctx, flight.FlightID)
	require.NoError(t, err)
	assert.Equal(t, "P2", pilotID)

	loaded, err := repo.Flights.GetByID(ctx, flight.FlightID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Assignment)
	require.NotNil(t, loaded.Assignment.Pilot)
	assert.Equal(t, "Yeager", loaded.Assignment.Pilot.LastName)
}

func TestFlightRepository_DeleteFlightRemovesAssignment(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()
	flight := insertFlight(t, repo, "A1", "P1", "2025-06-01")

	require.NoError(t, repo.Flights.DeleteFlight(ctx, flight.FlightID))

	pilotID, err := repo.Flights.AssignmentFor(ctx, flight.FlightID)
	require.NoError(t, err)
	assert.Empty(t, pilotID)

	gone, err := repo.Flights.GetByID(ctx, flight.FlightID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRepository_TransactionRollsBack(t *testing.T) {
	repo := seedRepository(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx *Repository) error {
		flight := &gorm.Flight{
			OriginID: "LHR", DestinationID: "CDG", AircraftID: "A2",
			FlightDate: "2025-07-01", FlightTime: "08:00", Status: constants.FlightScheduled,
		}
		if err := tx.Flights.InsertFlight(ctx, flight); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	flights, err := repo.Flights.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestAirportRepository_CountFlightReferences(t *testing.T) {
	repo := seedRepository(t)
	insertFlight(t, repo, "A1", "P1", "2025-06-01")

	n, err := repo.Airports.CountFlightReferences(context.Background(), "JFK")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.Airports.CountFlightReferences(context.Background(), "CDG")
	require.NoError(t, err)
	assert.Zero(t, n)
}

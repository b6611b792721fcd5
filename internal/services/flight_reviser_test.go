package services

import (
	"context"
	"errors"
	"testing"

	"flight-ops/dispatch/internal/constants"
	"flight-ops/dispatch/internal/models/dtos"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlib "gorm.io/gorm"
)

func TestUpdateFlight_MoveDateKeepsAircraft(t *testing.T) {
	env := newTestEnv(t).seed(t)
	flight := env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")

	updated, err := env.reviser.UpdateFlight(context.Background(), flight.FlightID, &dtos.UpdateFlightRequest{
		Date: strPtr("02/06/2025"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", updated.FlightDate)
	assert.Equal(t, "A1", updated.AircraftID)
	assert.Equal(t, "P1", updated.PilotID())
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.FlightsUpdatedTotal))
}

func TestUpdateFlight_MoveDateOntoBusyAircraft(t *testing.T) {
	env := newTestEnv(t).seed(t)
	flight := env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")
	env.create(t, "JFK", "LHR", "02/06/2025", "A1", "P2")

	_, err := env.reviser.UpdateFlight(context.Background(), flight.FlightID, &dtos.UpdateFlightRequest{
		Date: strPtr("02/06/2025"),
	})
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict), "got %v", err)
	assert.Equal(t, "aircraft", conflict.Resource)
	assert.Equal(t, []string{"A2"}, conflict.Candidates)

	current, err := env.repo.Flights.GetByID(context.Background(), flight.FlightID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", current.FlightDate)
}

func TestUpdateFlight_PilotAlreadyFlyingElsewhere(t *testing.T) {
	env := newTestEnv(t).seed(t)
	flight := env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")
	env.create(t, "JFK", "LHR", "01/06/2025", "A2", "P2")

	_, err := env.reviser.UpdateFlight(context.Background(), flight.FlightID, &dtos.UpdateFlightRequest{
		PilotID: strPtr("P2"),
	})
	require.True(t, errors.Is(err, ErrConflict))

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "pilot", conflict.Resource)
	assert.Equal(t, "P2", conflict.ID)
	// P1 flies the flight being revised and stays a valid choice.
	assert.Equal(t, []string{"P1", "P3"}, conflict.Candidates)

	pilotID, err := env.repo.Flights.AssignmentFor(context.Background(), flight.FlightID)
	require.NoError(t, err)
	assert.Equal(t, "P1", pilotID)

	// Resubmitting with a listed candidate goes through.
	updated, err := env.reviser.UpdateFlight(context.Background(), flight.FlightID, &dtos.UpdateFlightRequest{
		PilotID: strPtr(conflict.Candidates[1]),
	})
	require.NoError(t, err)
	assert.Equal(t, "P3", updated.PilotID())
	assert.EqualValues(t, 2, env.countRows(t, "flight_pilot"))
}

func TestUpdateFlight_DateChangeRechecksPilot(t *testing.T) {
	env := newTestEnv(t).seed(t)
	flight := env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")
	env.create(t, "JFK", "CDG", "02/06/2025", "A2", "P1")

	_, err := env.reviser.UpdateFlight(context.Background(), flight.FlightID, &dtos.UpdateFlightRequest{
		Date: strPtr("02/06/2025"),
	})
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict), "got %v", err)
	assert.Equal(t, "pilot", conflict.Resource)
	assert.Equal(t, []string{"P2", "P3"}, conflict.Candidates)
}

func TestUpdateFlight_ReReadReturnsSubmittedFields(t *testing.T) {
	env := newTestEnv(t).seed(t)
	flight := env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")

	_, err := env.reviser.UpdateFlight(context.Background(), flight.FlightID, &dtos.UpdateFlightRequest{
		Destination: strPtr("cdg"),
		AircraftID:  strPtr("A2"),
		Time:        strPtr("07:15"),
		Status:      strPtr("cancelled"),
		PilotID:     strPtr("P2"),
	})
	require.NoError(t, err)

	reread, err := env.repo.Flights.GetByID(context.Background(), flight.FlightID)
	require.NoError(t, err)
	assert.Equal(t, "LHR", reread.OriginID)
	assert.Equal(t, "CDG", reread.DestinationID)
	assert.Equal(t, "A2", reread.AircraftID)
	assert.Equal(t, "2025-06-01", reread.FlightDate)
	assert.Equal(t, "07:15", reread.FlightTime)
	assert.Equal(t, constants.FlightCancelled, reread.Status)
	assert.Equal(t, "P2", reread.PilotID())
	require.NotNil(t, reread.Assignment.Pilot)
	assert.Equal(t, "Yeager", reread.Assignment.Pilot.LastName)
}

func TestUpdateFlight_EmptyRequestKeepsEverything(t *testing.T) {
	env := newTestEnv(t).seed(t)
	flight := env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")

	updated, err := env.reviser.UpdateFlight(context.Background(), flight.FlightID, &dtos.UpdateFlightRequest{})
	require.NoError(t, err)
	assert.Equal(t, flight.OriginID, updated.OriginID)
	assert.Equal(t, flight.AircraftID, updated.AircraftID)
	assert.Equal(t, "P1", updated.PilotID())
}

func TestUpdateFlight_Rejections(t *testing.T) {
	tests := []struct {
		name string
		req  *dtos.UpdateFlightRequest
		kind error
	}{
		{"impossible date", &dtos.UpdateFlightRequest{Date: strPtr("31/02/2025")}, ErrValidation},
		{"bad status", &dtos.UpdateFlightRequest{Status: strPtr("Landed")}, ErrValidation},
		{"destination equals origin", &dtos.UpdateFlightRequest{Destination: strPtr("LHR")}, ErrValidation},
		{"unknown origin", &dtos.UpdateFlightRequest{Origin: strPtr("ZZZ")}, ErrNotFound},
		{"unknown aircraft", &dtos.UpdateFlightRequest{AircraftID: strPtr("A9")}, ErrNotFound},
		{"unknown pilot", &dtos.UpdateFlightRequest{PilotID: strPtr("P9")}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t).seed(t)
			flight := env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")

			_, err := env.reviser.UpdateFlight(context.Background(), flight.FlightID, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			current, err := env.repo.Flights.GetByID(context.Background(), flight.FlightID)
			require.NoError(t, err)
			assert.Equal(t, "JFK", current.DestinationID)
			assert.Equal(t, "A1", current.AircraftID)
			assert.Equal(t, "P1", current.PilotID())
		})
	}
}

func TestUpdateFlight_AssignmentFailureRollsBackFlight(t *testing.T) {
	env := newTestEnv(t).seed(t)
	flight := env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")

	err := env.db.Callback().Create().Before("gorm:create").Register("test:fail_assignment", func(tx *gormlib.DB) {
		if tx.Statement.Table == "flight_pilot" {
			_ = tx.AddError(errors.New("disk I/O error"))
		}
	})
	require.NoError(t, err)

	_, err = env.reviser.UpdateFlight(context.Background(), flight.FlightID, &dtos.UpdateFlightRequest{
		Date:    strPtr("02/06/2025"),
		PilotID: strPtr("P2"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))

	current, err := env.repo.Flights.GetByID(context.Background(), flight.FlightID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "2025-06-01", current.FlightDate)
	assert.Equal(t, "P1", current.PilotID())
	assert.EqualValues(t, 1, env.countRows(t, "flight_pilot"))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RejectionsTotal.WithLabelValues("update_flight", "persistence")))
}

func TestUpdateFlight_MissingFlight(t *testing.T) {
	env := newTestEnv(t).seed(t)

	_, err := env.reviser.UpdateFlight(context.Background(), 42, &dtos.UpdateFlightRequest{})
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "42", notFound.ID)
}

func TestDeleteFlight(t *testing.T) {
	env := newTestEnv(t).seed(t)
	flight := env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")

	require.NoError(t, env.reviser.DeleteFlight(context.Background(), flight.FlightID))
	assert.EqualValues(t, 0, env.countRows(t, "flight"))
	assert.EqualValues(t, 0, env.countRows(t, "flight_pilot"))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.FlightsDeletedTotal))

	err := env.reviser.DeleteFlight(context.Background(), flight.FlightID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flight-ops/dispatch/internal/models/dtos"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAirportService_AddAndDuplicate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAirportService(env.repo, env.airports, zap.NewNop().Sugar())
	ctx := context.Background()

	airport, err := svc.AddAirport(ctx, &dtos.CreateAirportRequest{IATACode: "ams", Name: "Schiphol", City: "Amsterdam", Country: "Netherlands"})
	require.NoError(t, err)
	assert.Equal(t, "AMS", airport.IATACode)

	_, err = svc.AddAirport(ctx, &dtos.CreateAirportRequest{IATACode: "AMS", Name: "Other", City: "Amsterdam", Country: "Netherlands"})
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)

	_, err = svc.AddAirport(ctx, &dtos.CreateAirportRequest{IATACode: "AM5", Name: "Bad", City: "X", Country: "Y"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.AddAirport(ctx, &dtos.CreateAirportRequest{IATACode: "BRU", Name: "Brussels"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestAirportService_UpdateRefreshesCache(t *testing.T) {
	env := newTestEnv(t).seed(t)
	svc := NewAirportService(env.repo, env.airports, zap.NewNop().Sugar())
	ctx := context.Background()

	cached, err := svc.GetAirport(ctx, "lhr")
	require.NoError(t, err)
	assert.Equal(t, "Heathrow", cached.Name)

	_, err = svc.UpdateAirport(ctx, "LHR", &dtos.UpdateAirportRequest{Name: "London Heathrow"})
	require.NoError(t, err)

	refreshed, err := svc.GetAirport(ctx, "LHR")
	require.NoError(t, err)
	assert.Equal(t, "London Heathrow", refreshed.Name)
	assert.Equal(t, "London", refreshed.City)

	_, err = svc.UpdateAirport(ctx, "ZZZ", &dtos.UpdateAirportRequest{Name: "Nowhere"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAirportService_DeleteGuard(t *testing.T) {
	env := newTestEnv(t).seed(t)
	svc := NewAirportService(env.repo, env.airports, zap.NewNop().Sugar())
	ctx := context.Background()
	env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")

	err := svc.DeleteAirport(ctx, "JFK")
	var inUse *InUseError
	require.True(t, errors.As(err, &inUse), "got %v", err)
	assert.EqualValues(t, 1, inUse.References)

	require.NoError(t, svc.DeleteAirport(ctx, "cdg"))
	_, err = svc.GetAirport(ctx, "CDG")
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.True(t, errors.Is(svc.DeleteAirport(ctx, "CDG"), ErrNotFound))
}

func TestAirportService_DeleteInvalidatesCachedLookup(t *testing.T) {
	env := newTestEnv(t).seed(t)
	svc := NewAirportService(env.repo, env.airports, zap.NewNop().Sugar())
	ctx := context.Background()

	_, err := svc.GetAirport(ctx, "CDG")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteAirport(ctx, "CDG"))

	req := newCreateRequest()
	req.Destination = "CDG"
	_, err = env.scheduler.CreateFlight(ctx, req)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	assert.Positive(t, testutil.ToFloat64(env.metrics.CacheHitsTotal.WithLabelValues("airport"))+
		testutil.ToFloat64(env.metrics.CacheMissesTotal.WithLabelValues("airport")))
}

func TestAirportService_ImportAirports(t *testing.T) {
	env := newTestEnv(t).seed(t)
	svc := NewAirportService(env.repo, env.airports, zap.NewNop().Sugar())
	ctx := context.Background()

	payload := `{
		"EGLL": {"icao": "EGLL", "iata": "LHR", "name": "London Heathrow Airport", "city": "London", "country": "GB"},
		"EHAM": {"icao": "EHAM", "iata": "ams", "name": "Amsterdam Airport Schiphol", "city": "Amsterdam", "country": "NL"},
		"KXYZ": {"icao": "KXYZ", "iata": "", "name": "Private Strip", "city": "Nowhere", "country": "US"},
		"LFPB": {"icao": "LFPB", "iata": "LBG", "name": "Paris Le Bourget", "state": "Ile-de-France", "country": "FR"}
	}`

	count, err := svc.ImportAirports(ctx, strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	lhr, err := svc.GetAirport(ctx, "LHR")
	require.NoError(t, err)
	assert.Equal(t, "London Heathrow Airport", lhr.Name)

	lbg, err := svc.GetAirport(ctx, "LBG")
	require.NoError(t, err)
	assert.Equal(t, "Ile-de-France", lbg.City)

	_, err = svc.ImportAirports(ctx, strings.NewReader(`{}`))
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.ImportAirports(ctx, strings.NewReader(`not json`))
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestAircraftService_AddAndDeleteGuard(t *testing.T) {
	env := newTestEnv(t).seed(t)
	svc := NewAircraftService(env.repo, zap.NewNop().Sugar())
	ctx := context.Background()

	_, err := svc.AddAircraft(ctx, &dtos.CreateAircraftRequest{AircraftID: "A3", Model: "E190", Capacity: 0, Manufacturer: "Embraer", RegistrationNumber: "G-LCYJ"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.AddAircraft(ctx, &dtos.CreateAircraftRequest{AircraftID: "A1", Model: "A321", Capacity: 200, Manufacturer: "Airbus", RegistrationNumber: "G-NEW1"})
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)

	added, err := svc.AddAircraft(ctx, &dtos.CreateAircraftRequest{AircraftID: "A3", Model: "E190", Capacity: 98, Manufacturer: "Embraer", RegistrationNumber: "G-LCYJ"})
	require.NoError(t, err)
	assert.Equal(t, "A3", added.AircraftID)

	env.create(t, "LHR", "JFK", "01/06/2025", "A1", "P1")

	err = svc.DeleteAircraft(ctx, "A1")
	var inUse *InUseError
	require.True(t, errors.As(err, &inUse), "got %v", err)
	assert.Equal(t, "aircraft", inUse.Resource)

	remaining, err := env.repo.Aircraft.GetByID(ctx, "A1")
	require.NoError(t, err)
	assert.NotNil(t, remaining)

	require.NoError(t, svc.DeleteAircraft(ctx, "A3"))
	assert.True(t, errors.Is(svc.DeleteAircraft(ctx, "A3"), ErrNotFound))
}

func TestPilotService_ViewPilotsSelectsColumns(t *testing.T) {
	env := newTestEnv(t).seed(t)
	svc := NewPilotService(env.repo, zap.NewNop().Sugar())

	view, err := svc.ViewPilots(context.Background(), "1,3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pilot ID", "Last Name"}, view.Headers)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, []string{"P1", "Hart"}, view.Rows[0])

	all, err := svc.ViewPilots(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all.Headers, len(PilotColumnHeaders()))

	_, err = svc.ViewPilots(context.Background(), "first")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestPilotService_ScheduleAndDeleteGuard(t *testing.T) {
	env := newTestEnv(t).seed(t)
	svc := NewPilotService(env.repo, zap.NewNop().Sugar())
	ctx := context.Background()

	env.create(t, "LHR", "JFK", "03/06/2025", "A1", "P1")
	env.create(t, "JFK", "LHR", "01/06/2025", "A2", "P1")

	schedule, err := svc.Schedule(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, schedule, 2)
	assert.Equal(t, "01/06/2025", schedule[0].Date)
	assert.Equal(t, "03/06/2025", schedule[1].Date)
	assert.Equal(t, "Amelia Hart", schedule[0].PilotName)

	_, err = svc.Schedule(ctx, "P9")
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.True(t, errors.Is(svc.DeletePilot(ctx, "P1"), ErrResourceInUse))
	require.NoError(t, svc.DeletePilot(ctx, "P3"))

	_, err = svc.AddPilot(ctx, &dtos.CreatePilotRequest{PilotID: "P2", FirstName: "Dup", LastName: "Licate"})
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)

	_, err = svc.AddPilot(ctx, &dtos.CreatePilotRequest{PilotID: "P4"})
	assert.True(t, errors.Is(err, ErrValidation))
}

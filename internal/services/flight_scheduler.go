package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/constants"
	"flight-ops/dispatch/internal/db/repositories"
	"flight-ops/dispatch/internal/metrics"
	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/models/gorm"

	"go.uber.org/zap"
)

// FlightScheduler creates flights together with their pilot assignment
type FlightScheduler struct {
	repo         *repositories.Repository
	availability *AvailabilityService
	airports     *AirportCache
	metrics      *metrics.MetricsRegistry
	logger       *zap.SugaredLogger
}

// NewFlightScheduler creates a FlightScheduler. airports and m may be nil.
func NewFlightScheduler(
	repo *repositories.Repository,
	availability *AvailabilityService,
	airports *AirportCache,
	m *metrics.MetricsRegistry,
	logger *zap.SugaredLogger,
) *FlightScheduler {
	return &FlightScheduler{
		repo:         repo,
		availability: availability,
		airports:     airports,
		metrics:      m,
		logger:       logger,
	}
}

// flightInput is a create request after format validation
type flightInput struct {
	origin      string
	destination string
	date        string
	time        string
	status      constants.FlightStatus
	aircraftID  string
	pilotID     string
}

// CreateFlight validates req and persists the flight and its assignment atomically.
// Malformed input is rejected before any lookup; resource checks then run inside
// the same transaction as the inserts.
func (s *FlightScheduler) CreateFlight(ctx context.Context, req *dtos.CreateFlightRequest) (*gorm.Flight, error) {
	start := time.Now()
	flight, err := s.createFlight(ctx, req)
	observe(s.metrics, "create_flight", start, err)

	if err != nil {
		s.logRejection("create_flight", err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.FlightsCreatedTotal.Inc()
	}
	s.logger.Infow("Flight created",
		"flight_id", flight.FlightID,
		"route", flight.OriginID+"-"+flight.DestinationID,
		"date", flight.FlightDate,
		"aircraft_id", flight.AircraftID,
		"pilot_id", flight.PilotID(),
	)
	return flight, nil
}

func (s *FlightScheduler) createFlight(ctx context.Context, req *dtos.CreateFlightRequest) (*gorm.Flight, error) {
	in, err := parseCreateRequest(req)
	if err != nil {
		return nil, err
	}

	var created *gorm.Flight
	err = s.repo.Transaction(ctx, func(tx *repositories.Repository) error {
		if err := requireAirport(ctx, tx, s.airports, "origin", in.origin); err != nil {
			return err
		}
		if err := requireAirport(ctx, tx, s.airports, "destination", in.destination); err != nil {
			return err
		}

		avail := s.availability.within(tx)
		displayDate := common.DisplayDate(in.date)

		freeAircraft, err := avail.AvailableAircraft(ctx, in.date, 0)
		if err != nil {
			return err
		}
		if len(freeAircraft) == 0 {
			return &ConflictError{Resource: "aircraft", Date: displayDate}
		}
		if err := requireAircraft(ctx, tx, in.aircraftID); err != nil {
			return err
		}
		if ids := AircraftIDs(freeAircraft); !containsID(ids, in.aircraftID) {
			return &ConflictError{Resource: "aircraft", ID: in.aircraftID, Date: displayDate, Candidates: ids}
		}

		freePilots, err := avail.AvailablePilots(ctx, in.date, 0)
		if err != nil {
			return err
		}
		if len(freePilots) == 0 {
			return &ConflictError{Resource: "pilot", Date: displayDate}
		}
		pilot, err := tx.Pilots.GetByID(ctx, in.pilotID)
		if err != nil {
			return err
		}
		if pilot == nil {
			return &NotFoundError{Resource: "pilot", ID: in.pilotID}
		}
		if ids := PilotIDs(freePilots); !containsID(ids, in.pilotID) {
			return &ConflictError{Resource: "pilot", ID: in.pilotID, Date: displayDate, Candidates: ids}
		}

		flight := &gorm.Flight{
			OriginID:      in.origin,
			DestinationID: in.destination,
			AircraftID:    in.aircraftID,
			FlightDate:    in.date,
			FlightTime:    in.time,
			Status:        in.status,
		}
		if err := tx.Flights.InsertFlight(ctx, flight); err != nil {
			return &PersistenceError{Op: "insert flight", Err: err}
		}
		if err := tx.Flights.InsertAssignment(ctx, flight.FlightID, in.pilotID); err != nil {
			return &PersistenceError{Op: "insert assignment", Err: err}
		}

		flight.Assignment = &gorm.FlightPilot{FlightID: flight.FlightID, PilotID: in.pilotID, Pilot: pilot}
		created = flight
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// IsHomeBaseDeparture reports whether the operator should be reminded to plan a return leg
func IsHomeBaseDeparture(flight *gorm.Flight, homeBase string) bool {
	return flight != nil && homeBase != "" && flight.OriginID == common.NormalizeIATA(homeBase)
}

func (s *FlightScheduler) logRejection(operation string, err error) {
	var persistence *PersistenceError
	if errors.As(err, &persistence) {
		s.logger.Errorw("Flight rejected by store",
			"operation", operation,
			"step", persistence.Op,
			"error", persistence.Err,
		)
		return
	}
	s.logger.Warnw("Flight request refused",
		"operation", operation,
		"kind", ErrorKind(err),
		"error", err,
	)
}

func parseCreateRequest(req *dtos.CreateFlightRequest) (*flightInput, error) {
	in := &flightInput{
		origin:      common.NormalizeIATA(req.Origin),
		destination: common.NormalizeIATA(req.Destination),
		aircraftID:  strings.TrimSpace(req.AircraftID),
		pilotID:     strings.TrimSpace(req.PilotID),
	}

	if in.origin == "" {
		return nil, &ValidationError{Field: "origin", Reason: "required"}
	}
	if in.destination == "" {
		return nil, &ValidationError{Field: "destination", Reason: "required"}
	}
	if in.origin == in.destination {
		return nil, &ValidationError{Field: "destination", Reason: "must differ from origin"}
	}

	date, err := common.ParseFlightDate(req.Date)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "expected DD/MM/YYYY"}
	}
	in.date = date

	clock, err := common.ParseFlightTime(req.Time)
	if err != nil {
		return nil, &ValidationError{Field: "time", Reason: "expected HH:MM"}
	}
	in.time = clock

	status, err := constants.ParseFlightStatus(req.Status)
	if err != nil {
		return nil, &ValidationError{Field: "status", Reason: "expected Scheduled, Delayed or Cancelled"}
	}
	in.status = status

	if in.aircraftID == "" {
		return nil, &ValidationError{Field: "aircraft_id", Reason: "required"}
	}
	if in.pilotID == "" {
		return nil, &ValidationError{Field: "pilot_id", Reason: "required"}
	}
	return in, nil
}

func requireAirport(ctx context.Context, repo *repositories.Repository, airports *AirportCache, field, code string) error {
	airport, err := airports.Get(ctx, repo, code)
	if err != nil {
		return err
	}
	if airport == nil {
		return &NotFoundError{Resource: field + " airport", ID: code}
	}
	return nil
}

func requireAircraft(ctx context.Context, repo *repositories.Repository, aircraftID string) error {
	aircraft, err := repo.Aircraft.GetByID(ctx, aircraftID)
	if err != nil {
		return err
	}
	if aircraft == nil {
		return &NotFoundError{Resource: "aircraft", ID: aircraftID}
	}
	return nil
}

package services

import (
	"context"
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

// FlightReviser updates and deletes existing flights
type FlightReviser struct {
	repo         *repositories.Repository
	availability *AvailabilityService
	airports     *AirportCache
	metrics      *metrics.MetricsRegistry
	logger       *zap.SugaredLogger
}

// NewFlightReviser creates a FlightReviser. airports and m may be nil.
func NewFlightReviser(
	repo *repositories.Repository,
	availability *AvailabilityService,
	airports *AirportCache,
	m *metrics.MetricsRegistry,
	logger *zap.SugaredLogger,
) *FlightReviser {
	return &FlightReviser{
		repo:         repo,
		availability: availability,
		airports:     airports,
		metrics:      m,
		logger:       logger,
	}
}

// UpdateFlight applies the non-nil fields of req to flight flightID.
// Aircraft and pilot commitments are re-checked against the resulting date,
// ignoring the flight itself. On a ConflictError nothing was written and
// Candidates lists the resources free on that date.
func (s *FlightReviser) UpdateFlight(ctx context.Context, flightID uint, req *dtos.UpdateFlightRequest) (*gorm.Flight, error) {
	start := time.Now()
	flight, err := s.updateFlight(ctx, flightID, req)
	observe(s.metrics, "update_flight", start, err)

	if err != nil {
		s.logger.Warnw("Flight update refused",
			"flight_id", flightID,
			"kind", ErrorKind(err),
			"error", err,
		)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.FlightsUpdatedTotal.Inc()
	}
	s.logger.Infow("Flight updated",
		"flight_id", flight.FlightID,
		"date", flight.FlightDate,
		"aircraft_id", flight.AircraftID,
		"pilot_id", flight.PilotID(),
		"status", flight.Status,
	)
	return flight, nil
}

func (s *FlightReviser) updateFlight(ctx context.Context, flightID uint, req *dtos.UpdateFlightRequest) (*gorm.Flight, error) {
	var updated *gorm.Flight

	err := s.repo.Transaction(ctx, func(tx *repositories.Repository) error {
		current, err := tx.Flights.GetByID(ctx, flightID)
		if err != nil {
			return err
		}
		if current == nil {
			return &NotFoundError{Resource: "flight", ID: flightIDString(flightID)}
		}

		next, pilotID, err := applyUpdate(current, req)
		if err != nil {
			return err
		}

		if next.OriginID != current.OriginID {
			if err := requireAirport(ctx, tx, s.airports, "origin", next.OriginID); err != nil {
				return err
			}
		}
		if next.DestinationID != current.DestinationID {
			if err := requireAirport(ctx, tx, s.airports, "destination", next.DestinationID); err != nil {
				return err
			}
		}

		avail := s.availability.within(tx)
		displayDate := common.DisplayDate(next.FlightDate)
		dateChanged := next.FlightDate != current.FlightDate

		if dateChanged || next.AircraftID != current.AircraftID {
			if err := requireAircraft(ctx, tx, next.AircraftID); err != nil {
				return err
			}
			free, err := avail.IsAircraftAvailable(ctx, next.AircraftID, next.FlightDate, current.FlightID)
			if err != nil {
				return err
			}
			if !free {
				candidates, err := avail.AvailableAircraft(ctx, next.FlightDate, current.FlightID)
				if err != nil {
					return err
				}
				return &ConflictError{Resource: "aircraft", ID: next.AircraftID, Date: displayDate, Candidates: AircraftIDs(candidates)}
			}
		}

		if dateChanged || pilotID != current.PilotID() {
			pilot, err := tx.Pilots.GetByID(ctx, pilotID)
			if err != nil {
				return err
			}
			if pilot == nil {
				return &NotFoundError{Resource: "pilot", ID: pilotID}
			}
			free, err := avail.IsPilotAvailable(ctx, pilotID, next.FlightDate, current.FlightID)
			if err != nil {
				return err
			}
			if !free {
				candidates, err := avail.AvailablePilots(ctx, next.FlightDate, current.FlightID)
				if err != nil {
					return err
				}
				return &ConflictError{Resource: "pilot", ID: pilotID, Date: displayDate, Candidates: PilotIDs(candidates)}
			}
		}

		if err := tx.Flights.UpdateFlight(ctx, next); err != nil {
			return &PersistenceError{Op: "update flight", Err: err}
		}
		if err := tx.Flights.ReplaceAssignment(ctx, current.FlightID, pilotID); err != nil {
			return &PersistenceError{Op: "replace assignment", Err: err}
		}

		updated, err = tx.Flights.GetByID(ctx, current.FlightID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyUpdate copies current with req's fields applied and returns the pilot to assign
func applyUpdate(current *gorm.Flight, req *dtos.UpdateFlightRequest) (*gorm.Flight, string, error) {
	next := *current
	next.Assignment = nil
	pilotID := current.PilotID()

	if req.Origin != nil {
		next.OriginID = common.NormalizeIATA(*req.Origin)
	}
	if req.Destination != nil {
		next.DestinationID = common.NormalizeIATA(*req.Destination)
	}
	if next.OriginID == next.DestinationID {
		return nil, "", &ValidationError{Field: "destination", Reason: "must differ from origin"}
	}
	if req.AircraftID != nil {
		next.AircraftID = strings.TrimSpace(*req.AircraftID)
	}
	if req.Date != nil {
		date, err := common.ParseFlightDate(*req.Date)
		if err != nil {
			return nil, "", &ValidationError{Field: "date", Reason: "expected DD/MM/YYYY"}
		}
		next.FlightDate = date
	}
	if req.Time != nil {
		clock, err := common.ParseFlightTime(*req.Time)
		if err != nil {
			return nil, "", &ValidationError{Field: "time", Reason: "expected HH:MM"}
		}
		next.FlightTime = clock
	}
	if req.Status != nil {
		status, err := constants.ParseFlightStatus(*req.Status)
		if err != nil {
			return nil, "", &ValidationError{Field: "status", Reason: "expected Scheduled, Delayed or Cancelled"}
		}
		next.Status = status
	}
	if req.PilotID != nil {
		pilotID = strings.TrimSpace(*req.PilotID)
	}

	if next.AircraftID == "" {
		return nil, "", &ValidationError{Field: "aircraft_id", Reason: "required"}
	}
	if pilotID == "" {
		return nil, "", &ValidationError{Field: "pilot_id", Reason: "required"}
	}
	return &next, pilotID, nil
}

// DeleteFlight removes flight flightID and its assignment in one transaction
func (s *FlightReviser) DeleteFlight(ctx context.Context, flightID uint) error {
	start := time.Now()
	err := s.repo.Transaction(ctx, func(tx *repositories.Repository) error {
		current, err := tx.Flights.GetByID(ctx, flightID)
		if err != nil {
			return err
		}
		if current == nil {
			return &NotFoundError{Resource: "flight", ID: flightIDString(flightID)}
		}
		if err := tx.Flights.DeleteFlight(ctx, flightID); err != nil {
			return &PersistenceError{Op: "delete flight", Err: err}
		}
		return nil
	})
	observe(s.metrics, "delete_flight", start, err)

	if err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.FlightsDeletedTotal.Inc()
	}
	s.logger.Infow("Flight deleted", "flight_id", flightID)
	return nil
}

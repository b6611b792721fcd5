package services

import (
	"context"

	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/db/repositories"
	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/models/gorm"
)

// AvailabilityService answers which aircraft and pilots are free on a date.
// Dates passed to its methods are in storage form (YYYY-MM-DD). It never writes.
type AvailabilityService struct {
	repo *repositories.Repository
}

// NewAvailabilityService creates an AvailabilityService over repo
func NewAvailabilityService(repo *repositories.Repository) *AvailabilityService {
	return &AvailabilityService{repo: repo}
}

// within returns a resolver reading through tx so checks see uncommitted writes
func (s *AvailabilityService) within(tx *repositories.Repository) *AvailabilityService {
	return &AvailabilityService{repo: tx}
}

// AvailableAircraft returns every aircraft with no flight on date other than
// excludingFlightID (0 excludes nothing). An empty result is not an error.
func (s *AvailabilityService) AvailableAircraft(ctx context.Context, date string, excludingFlightID uint) ([]gorm.Aircraft, error) {
	return s.repo.Aircraft.AvailableOn(ctx, date, excludingFlightID)
}

// AvailablePilots returns every pilot with no assignment on date other than
// on excludingFlightID (0 excludes nothing). An empty result is not an error.
func (s *AvailabilityService) AvailablePilots(ctx context.Context, date string, excludingFlightID uint) ([]gorm.Pilot, error) {
	return s.repo.Pilots.AvailableOn(ctx, date, excludingFlightID)
}

// IsAircraftAvailable reports whether aircraftID is free on date
func (s *AvailabilityService) IsAircraftAvailable(ctx context.Context, aircraftID, date string, excludingFlightID uint) (bool, error) {
	booked, err := s.repo.Flights.AircraftBooked(ctx, aircraftID, date, excludingFlightID)
	return !booked, err
}

// IsPilotAvailable reports whether pilotID is free on date
func (s *AvailabilityService) IsPilotAvailable(ctx context.Context, pilotID, date string, excludingFlightID uint) (bool, error) {
	booked, err := s.repo.Flights.PilotBooked(ctx, pilotID, date, excludingFlightID)
	return !booked, err
}

// DayAssignments lists the flights on date with the pilot flying each
func (s *AvailabilityService) DayAssignments(ctx context.Context, date string) ([]dtos.DayAssignment, error) {
	flights, err := s.repo.Flights.FlightsOnDate(ctx, date)
	if err != nil {
		return nil, err
	}

	result := make([]dtos.DayAssignment, 0, len(flights))
	for _, f := range flights {
		result = append(result, dtos.DayAssignment{
			FlightID: f.FlightID,
			PilotID:  f.PilotID(),
			Time:     f.FlightTime,
		})
	}
	return result, nil
}

// Availability is the free fleet and crew for one date
type Availability struct {
	Date       string
	Aircraft   []gorm.Aircraft
	Pilots     []gorm.Pilot
	DayFlights []dtos.DayAssignment
}

// ForDate validates a DD/MM/YYYY literal and gathers everything free on it
func (s *AvailabilityService) ForDate(ctx context.Context, dateInput string) (*Availability, error) {
	date, err := common.ParseFlightDate(dateInput)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "expected DD/MM/YYYY"}
	}

	aircraft, err := s.AvailableAircraft(ctx, date, 0)
	if err != nil {
		return nil, err
	}
	pilots, err := s.AvailablePilots(ctx, date, 0)
	if err != nil {
		return nil, err
	}
	day, err := s.DayAssignments(ctx, date)
	if err != nil {
		return nil, err
	}

	return &Availability{
		Date:       common.DisplayDate(date),
		Aircraft:   aircraft,
		Pilots:     pilots,
		DayFlights: day,
	}, nil
}

// AircraftIDs extracts the id set of fleet
func AircraftIDs(fleet []gorm.Aircraft) []string {
	ids := make([]string, 0, len(fleet))
	for _, a := range fleet {
		ids = append(ids, a.AircraftID)
	}
	return ids
}

// PilotIDs extracts the id set of pilots
func PilotIDs(pilots []gorm.Pilot) []string {
	ids := make([]string, 0, len(pilots))
	for _, p := range pilots {
		ids = append(ids, p.PilotID)
	}
	return ids
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

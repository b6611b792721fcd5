package repositories

import (
	"context"
	"fmt"

	"flight-ops/dispatch/internal/constants"
	"flight-ops/dispatch/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// FlightRepository handles the flight and flight_pilot tables. Multi-statement
// operations expect to run on a transaction-bound repository.
type FlightRepository struct {
	db *gormlib.DB
}

// NewFlightRepository creates a new flight repository
func NewFlightRepository(db *gormlib.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// GetByID retrieves a flight with its assignment and pilot preloaded
func (r *FlightRepository) GetByID(ctx context.Context, flightID uint) (*gorm.Flight, error) {
	var flight gorm.Flight

	err := r.db.WithContext(ctx).
		Preload("Assignment.Pilot").
		Where("flight_id = ?", flightID).
		First(&flight).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}

	return &flight, nil
}

// FlightsOnDate returns the flights departing on date ordered by time
func (r *FlightRepository) FlightsOnDate(ctx context.Context, date string) ([]gorm.Flight, error) {
	var flights []gorm.Flight

	err := r.db.WithContext(ctx).
		Preload("Assignment.Pilot").
		Where("flight_date = ?", date).
		Order("flight_time, flight_id").
		Find(&flights).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch flights on %s: %w", date, err)
	}

	return flights, nil
}

// FlightsByStatus returns flights with status ordered by date, then time
func (r *FlightRepository) FlightsByStatus(ctx context.Context, status constants.FlightStatus) ([]gorm.Flight, error) {
	var flights []gorm.Flight

	err := r.db.WithContext(ctx).
		Preload("Assignment.Pilot").
		Where("status = ?", status).
		Order("flight_date, flight_time, flight_id").
		Find(&flights).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s flights: %w", status, err)
	}

	return flights, nil
}

// List returns every flight with its assignment
func (r *FlightRepository) List(ctx context.Context) ([]gorm.Flight, error) {
	var flights []gorm.Flight

	err := r.db.WithContext(ctx).
		Preload("Assignment.Pilot").
		Order("flight_date, flight_time, flight_id").
		Find(&flights).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch flights: %w", err)
	}

	return flights, nil
}

// AssignmentFor returns the pilot assigned to flightID, or "" when there is none
func (r *FlightRepository) AssignmentFor(ctx context.Context, flightID uint) (string, error) {
	var assignment gorm.FlightPilot

	err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		First(&assignment).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to fetch assignment: %w", err)
	}

	return assignment.PilotID, nil
}

// AircraftBooked reports whether aircraftID flies on date in a flight other than excludingFlightID
func (r *FlightRepository) AircraftBooked(ctx context.Context, aircraftID, date string, excludingFlightID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gorm.Flight{}).
		Where("aircraft_id = ? AND flight_date = ? AND flight_id <> ?", aircraftID, date, excludingFlightID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check aircraft bookings: %w", err)
	}
	return count > 0, nil
}

// PilotBooked reports whether pilotID is assigned on date to a flight other than excludingFlightID
func (r *FlightRepository) PilotBooked(ctx context.Context, pilotID, date string, excludingFlightID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("flight_pilot").
		Joins("JOIN flight ON flight.flight_id = flight_pilot.flight_id").
		Where("flight_pilot.pilot_id = ? AND flight.flight_date = ? AND flight.flight_id <> ?", pilotID, date, excludingFlightID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pilot bookings: %w", err)
	}
	return count > 0, nil
}

// InsertFlight creates the flight row and fills in the generated ID
func (r *FlightRepository) InsertFlight(ctx context.Context, flight *gorm.Flight) error {
	return r.db.WithContext(ctx).Omit("Assignment").Create(flight).Error
}

// InsertAssignment binds pilotID to flightID
func (r *FlightRepository) InsertAssignment(ctx context.Context, flightID uint, pilotID string) error {
	return r.db.WithContext(ctx).
		Omit("Pilot").
		Create(&gorm.FlightPilot{FlightID: flightID, PilotID: pilotID}).Error
}

// ReplaceAssignment deletes the current assignment and inserts a new one
func (r *FlightRepository) ReplaceAssignment(ctx context.Context, flightID uint, pilotID string) error {
	if err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Delete(&gorm.FlightPilot{}).Error; err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}
	if err := r.InsertAssignment(ctx, flightID, pilotID); err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// UpdateFlight rewrites every mutable column of the flight row
func (r *FlightRepository) UpdateFlight(ctx context.Context, flight *gorm.Flight) error {
	result := r.db.WithContext(ctx).
		Model(&gorm.Flight{}).
		Where("flight_id = ?", flight.FlightID).
		Updates(map[string]interface{}{
			"origin_id":      flight.OriginID,
			"destination_id": flight.DestinationID,
			"aircraft_id":    flight.AircraftID,
			"flight_date":    flight.FlightDate,
			"flight_time":    flight.FlightTime,
			"status":         flight.Status,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update flight: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("flight not found with ID: %d", flight.FlightID)
	}

	return nil
}

// DeleteFlight removes the assignment first, then the flight
func (r *FlightRepository) DeleteFlight(ctx context.Context, flightID uint) error {
	if err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Delete(&gorm.FlightPilot{}).Error; err != nil {
		return fmt.Errorf("failed to remove assignment: %w", err)
	}

	result := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Delete(&gorm.Flight{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete flight: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("flight not found with ID: %d", flightID)
	}

	return nil
}

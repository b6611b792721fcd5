package repositories

import (
	"context"
	"fmt"

	"flight-ops/dispatch/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// PilotRepository handles pilot table operations
type PilotRepository struct {
	db *gormlib.DB
}

// NewPilotRepository creates a new pilot repository
func NewPilotRepository(db *gormlib.DB) *PilotRepository {
	return &PilotRepository{db: db}
}

// GetByID retrieves a pilot by its ID
func (r *PilotRepository) GetByID(ctx context.Context, pilotID string) (*gorm.Pilot, error) {
	var pilot gorm.Pilot

	err := r.db.WithContext(ctx).
		Where("pilot_id = ?", pilotID).
		First(&pilot).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pilot: %w", err)
	}

	return &pilot, nil
}

func (r *PilotRepository) List(ctx context.Context) ([]gorm.Pilot, error) {
	var pilots []gorm.Pilot

	err := r.db.WithContext(ctx).
		Order("pilot_id").
		Find(&pilots).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch pilots: %w", err)
	}

	return pilots, nil
}

func (r *PilotRepository) Create(ctx context.Context, pilot *gorm.Pilot) error {
	return r.db.WithContext(ctx).Create(pilot).Error
}

func (r *PilotRepository) Delete(ctx context.Context, pilotID string) error {
	return r.db.WithContext(ctx).
		Where("pilot_id = ?", pilotID).
		Delete(&gorm.Pilot{}).Error
}

// CountAssignments counts flights the pilot is assigned to
func (r *PilotRepository) CountAssignments(ctx context.Context, pilotID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gorm.FlightPilot{}).
		Where("pilot_id = ?", pilotID).
		Count(&count).Error
	return count, err
}

// AvailableOn returns every pilot not assigned to a flight on date, ignoring
// flight excludingFlightID (0 excludes nothing).
func (r *PilotRepository) AvailableOn(ctx context.Context, date string, excludingFlightID uint) ([]gorm.Pilot, error) {
	var pilots []gorm.Pilot

	busy := r.db.Table("flight_pilot").
		Select("flight_pilot.pilot_id").
		Joins("JOIN flight ON flight.flight_id = flight_pilot.flight_id").
		Where("flight.flight_date = ? AND flight.flight_id <> ?", date, excludingFlightID)

	err := r.db.WithContext(ctx).
		Where("pilot_id NOT IN (?)", busy).
		Order("pilot_id").
		Find(&pilots).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch available pilots: %w", err)
	}

	return pilots, nil
}

// Schedule returns the pilot's flights ordered by date, then time
func (r *PilotRepository) Schedule(ctx context.Context, pilotID string) ([]gorm.Flight, error) {
	var flights []gorm.Flight

	err := r.db.WithContext(ctx).
		Joins("JOIN flight_pilot ON flight_pilot.flight_id = flight.flight_id").
		Where("flight_pilot.pilot_id = ?", pilotID).
		Order("flight.flight_date, flight.flight_time").
		Find(&flights).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch pilot schedule: %w", err)
	}

	return flights, nil
}

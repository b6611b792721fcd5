package repositories

import (
	"context"
	"fmt"

	"flight-ops/dispatch/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AircraftRepository handles aircraft table operations
type AircraftRepository struct {
	db *gormlib.DB
}

// NewAircraftRepository creates a new aircraft repository
func NewAircraftRepository(db *gormlib.DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// GetByID retrieves an aircraft by its ID
func (r *AircraftRepository) GetByID(ctx context.Context, aircraftID string) (*gorm.Aircraft, error) {
	var aircraft gorm.Aircraft

	err := r.db.WithContext(ctx).
		Where("aircraft_id = ?", aircraftID).
		First(&aircraft).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return &aircraft, nil
}

// List returns the whole fleet
func (r *AircraftRepository) List(ctx context.Context) ([]gorm.Aircraft, error) {
	var fleet []gorm.Aircraft

	err := r.db.WithContext(ctx).
		Order("aircraft_id").
		Find(&fleet).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch aircraft: %w", err)
	}

	return fleet, nil
}

func (r *AircraftRepository) Create(ctx context.Context, aircraft *gorm.Aircraft) error {
	return r.db.WithContext(ctx).Create(aircraft).Error
}

func (r *AircraftRepository) Delete(ctx context.Context, aircraftID string) error {
	return r.db.WithContext(ctx).
		Where("aircraft_id = ?", aircraftID).
		Delete(&gorm.Aircraft{}).Error
}

// CountFlightReferences counts flights flown by the aircraft on any date
func (r *AircraftRepository) CountFlightReferences(ctx context.Context, aircraftID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gorm.Flight{}).
		Where("aircraft_id = ?", aircraftID).
		Count(&count).Error
	return count, err
}

// AvailableOn returns every aircraft without a flight on date, ignoring flight
// excludingFlightID (0 excludes nothing).
func (r *AircraftRepository) AvailableOn(ctx context.Context, date string, excludingFlightID uint) ([]gorm.Aircraft, error) {
	var fleet []gorm.Aircraft

	busy := r.db.Model(&gorm.Flight{}).
		Select("aircraft_id").
		Where("flight_date = ? AND flight_id <> ?", date, excludingFlightID)

	err := r.db.WithContext(ctx).
		Where("aircraft_id NOT IN (?)", busy).
		Order("aircraft_id").
		Find(&fleet).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch available aircraft: %w", err)
	}

	return fleet, nil
}

package repositories

import (
	"context"
	"fmt"

	"flight-ops/dispatch/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// GetByCode finds an airport by IATA code (case-insensitive)
func (r *AirportRepository) GetByCode(ctx context.Context, code string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Where("UPPER(iata_code) = UPPER(?)", code).
		First(&airport).Error

	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch airport: %w", err)
	}

	return &airport, nil
}

// List returns every airport ordered by country, then city
func (r *AirportRepository) List(ctx context.Context) ([]gorm.Airport, error) {
	var airports []gorm.Airport

	err := r.db.WithContext(ctx).
		Order("country, city, iata_code").
		Find(&airports).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch airports: %w", err)
	}

	return airports, nil
}

// Create inserts a new airport
func (r *AirportRepository) Create(ctx context.Context, airport *gorm.Airport) error {
	return r.db.WithContext(ctx).Create(airport).Error
}

// UpdateDetails rewrites name, city and country. The IATA code never changes.
func (r *AirportRepository) UpdateDetails(ctx context.Context, airport *gorm.Airport) error {
	result := r.db.WithContext(ctx).
		Model(&gorm.Airport{}).
		Where("iata_code = ?", airport.IATACode).
		Updates(map[string]interface{}{
			"name":    airport.Name,
			"city":    airport.City,
			"country": airport.Country,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update airport: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("airport not found with code: %s", airport.IATACode)
	}

	return nil
}

// Delete removes an airport
func (r *AirportRepository) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).
		Where("iata_code = ?", code).
		Delete(&gorm.Airport{}).Error
}

// CountFlightReferences counts flights using code as origin or destination
func (r *AirportRepository) CountFlightReferences(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gorm.Flight{}).
		Where("origin_id = ? OR destination_id = ?", code, code).
		Count(&count).Error
	return count, err
}

// BatchUpsert inserts airports, refreshing name, city and country of existing codes
func (r *AirportRepository) BatchUpsert(ctx context.Context, airports []gorm.Airport) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "iata_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "city", "country", "updated_at"}),
		}).
		CreateInBatches(airports, 100).Error
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}

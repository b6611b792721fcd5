package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repository groups the per-table repositories over one connection or transaction
type Repository struct {
	db *gorm.DB

	Airports *AirportRepository
	Aircraft *AircraftRepository
	Pilots   *PilotRepository
	Flights  *FlightRepository
}

// NewRepository creates a Repository over db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:       db,
		Airports: NewAirportRepository(db),
		Aircraft: NewAircraftRepository(db),
		Pilots:   NewPilotRepository(db),
		Flights:  NewFlightRepository(db),
	}
}

// Transaction runs fn against a transaction-bound Repository. The transaction
// commits only if fn returns nil and rolls back on error or panic.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// DB exposes the underlying handle for callers that build their own queries
func (r *Repository) DB() *gorm.DB {
	return r.db
}

package services

import (
	"context"
	"errors"
	"strings"

	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/db/repositories"
	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/models/gorm"

	"go.uber.org/zap"
	gormlib "gorm.io/gorm"
)

// AirportService manages the airport reference data
type AirportService struct {
	repo     *repositories.Repository
	airports *AirportCache
	logger   *zap.SugaredLogger
}

// NewAirportService creates an AirportService. airports may be nil.
func NewAirportService(repo *repositories.Repository, airports *AirportCache, logger *zap.SugaredLogger) *AirportService {
	return &AirportService{repo: repo, airports: airports, logger: logger}
}

// ListAirports returns every airport ordered by country, then city
func (s *AirportService) ListAirports(ctx context.Context) ([]gorm.Airport, error) {
	return s.repo.Airports.List(ctx)
}

// GetAirport returns the airport with code
func (s *AirportService) GetAirport(ctx context.Context, code string) (*gorm.Airport, error) {
	code = common.NormalizeIATA(code)
	airport, err := s.airports.Get(ctx, s.repo, code)
	if err != nil {
		return nil, err
	}
	if airport == nil {
		return nil, &NotFoundError{Resource: "airport", ID: code}
	}
	return airport, nil
}

// AddAirport validates and inserts a new airport
func (s *AirportService) AddAirport(ctx context.Context, req *dtos.CreateAirportRequest) (*gorm.Airport, error) {
	airport := &gorm.Airport{
		IATACode: common.NormalizeIATA(req.IATACode),
		Name:     strings.TrimSpace(req.Name),
		City:     strings.TrimSpace(req.City),
		Country:  strings.TrimSpace(req.Country),
	}

	if !common.IsIATACode(airport.IATACode) {
		return nil, &ValidationError{Field: "iata_code", Reason: "must be exactly 3 letters"}
	}
	if airport.Name == "" || airport.City == "" || airport.Country == "" {
		return nil, &ValidationError{Field: "airport", Reason: "name, city and country are required"}
	}

	if err := s.repo.Airports.Create(ctx, airport); err != nil {
		if errors.Is(err, gormlib.ErrDuplicatedKey) {
			return nil, &DuplicateError{Resource: "airport", ID: airport.IATACode}
		}
		return nil, err
	}

	s.logger.Infow("Airport added", "iata_code", airport.IATACode)
	return airport, nil
}

// UpdateAirport rewrites name, city and country; blank request fields keep the current value
func (s *AirportService) UpdateAirport(ctx context.Context, code string, req *dtos.UpdateAirportRequest) (*gorm.Airport, error) {
	code = common.NormalizeIATA(code)

	var updated *gorm.Airport
	err := s.repo.Transaction(ctx, func(tx *repositories.Repository) error {
		airport, err := tx.Airports.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if airport == nil {
			return &NotFoundError{Resource: "airport", ID: code}
		}

		if v := strings.TrimSpace(req.Name); v != "" {
			airport.Name = v
		}
		if v := strings.TrimSpace(req.City); v != "" {
			airport.City = v
		}
		if v := strings.TrimSpace(req.Country); v != "" {
			airport.Country = v
		}

		if err := tx.Airports.UpdateDetails(ctx, airport); err != nil {
			return err
		}
		updated = airport
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.airports.Invalidate(code)
	s.logger.Infow("Airport updated", "iata_code", code)
	return updated, nil
}

// DeleteAirport removes an airport no flight departs from or arrives at
func (s *AirportService) DeleteAirport(ctx context.Context, code string) error {
	code = common.NormalizeIATA(code)

	err := s.repo.Transaction(ctx, func(tx *repositories.Repository) error {
		airport, err := tx.Airports.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if airport == nil {
			return &NotFoundError{Resource: "airport", ID: code}
		}

		refs, err := tx.Airports.CountFlightReferences(ctx, airport.IATACode)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &InUseError{Resource: "airport", ID: airport.IATACode, References: refs}
		}

		if err := tx.Airports.Delete(ctx, airport.IATACode); err != nil {
			if errors.Is(err, gormlib.ErrForeignKeyViolated) {
				return &InUseError{Resource: "airport", ID: airport.IATACode}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.airports.Invalidate(code)
	s.logger.Infow("Airport deleted", "iata_code", code)
	return nil
}

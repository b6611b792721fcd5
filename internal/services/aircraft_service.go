package services

import (
	"context"
	"errors"
	"strings"

	"flight-ops/dispatch/internal/db/repositories"
	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/models/gorm"

	"go.uber.org/zap"
	gormlib "gorm.io/gorm"
)

// AircraftService manages the fleet
type AircraftService struct {
	repo   *repositories.Repository
	logger *zap.SugaredLogger
}

func NewAircraftService(repo *repositories.Repository, logger *zap.SugaredLogger) *AircraftService {
	return &AircraftService{repo: repo, logger: logger}
}

// ListAircraft returns the fleet ordered by id
func (s *AircraftService) ListAircraft(ctx context.Context) ([]gorm.Aircraft, error) {
	return s.repo.Aircraft.List(ctx)
}

// AddAircraft validates and inserts a new aircraft
func (s *AircraftService) AddAircraft(ctx context.Context, req *dtos.CreateAircraftRequest) (*gorm.Aircraft, error) {
	aircraft := &gorm.Aircraft{
		AircraftID:         strings.TrimSpace(req.AircraftID),
		Model:              strings.TrimSpace(req.Model),
		Capacity:           req.Capacity,
		Manufacturer:       strings.TrimSpace(req.Manufacturer),
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
	}

	if aircraft.AircraftID == "" {
		return nil, &ValidationError{Field: "aircraft_id", Reason: "required"}
	}
	if aircraft.Model == "" || aircraft.Manufacturer == "" || aircraft.RegistrationNumber == "" {
		return nil, &ValidationError{Field: "aircraft", Reason: "model, manufacturer and registration number are required"}
	}
	if aircraft.Capacity <= 0 {
		return nil, &ValidationError{Field: "capacity", Reason: "must be a positive integer"}
	}

	if err := s.repo.Aircraft.Create(ctx, aircraft); err != nil {
		if errors.Is(err, gormlib.ErrDuplicatedKey) {
			return nil, &DuplicateError{Resource: "aircraft", ID: aircraft.AircraftID}
		}
		return nil, err
	}

	s.logger.Infow("Aircraft added", "aircraft_id", aircraft.AircraftID, "model", aircraft.Model)
	return aircraft, nil
}

// DeleteAircraft removes an aircraft that no flight references
func (s *AircraftService) DeleteAircraft(ctx context.Context, aircraftID string) error {
	aircraftID = strings.TrimSpace(aircraftID)

	err := s.repo.Transaction(ctx, func(tx *repositories.Repository) error {
		aircraft, err := tx.Aircraft.GetByID(ctx, aircraftID)
		if err != nil {
			return err
		}
		if aircraft == nil {
			return &NotFoundError{Resource: "aircraft", ID: aircraftID}
		}

		refs, err := tx.Aircraft.CountFlightReferences(ctx, aircraftID)
		if err != nil {
			return err
		}
		if refs > 0 {
			return &InUseError{Resource: "aircraft", ID: aircraftID, References: refs}
		}

		if err := tx.Aircraft.Delete(ctx, aircraftID); err != nil {
			if errors.Is(err, gormlib.ErrForeignKeyViolated) {
				return &InUseError{Resource: "aircraft", ID: aircraftID}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("Aircraft deleted", "aircraft_id", aircraftID)
	return nil
}

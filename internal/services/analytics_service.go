package services

import (
	"context"
	"fmt"

	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/constants"
	"flight-ops/dispatch/internal/models/dtos"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

const (
	totalFlightsQuery = `SELECT COUNT(*) FROM flight`

	flightsByStatusQuery = `
		SELECT status, COUNT(*) AS count
		FROM flight
		GROUP BY status
		ORDER BY status`

	flightsPerDayQuery = `
		SELECT flight_date, COUNT(*) AS count
		FROM flight
		GROUP BY flight_date
		ORDER BY flight_date`

	topRoutesQuery = `
		SELECT origin_id || ' to ' || destination_id AS route, COUNT(*) AS count
		FROM flight
		GROUP BY origin_id, destination_id
		ORDER BY count DESC, route
		LIMIT ?`

	pilotWorkloadQuery = `
		SELECT pilot.pilot_id, pilot.last_name, COUNT(flight_pilot.flight_id) AS flight_count
		FROM pilot
		LEFT JOIN flight_pilot ON flight_pilot.pilot_id = pilot.pilot_id
		GROUP BY pilot.pilot_id, pilot.last_name
		ORDER BY flight_count DESC, pilot.pilot_id`
)

// AnalyticsService computes read-only aggregates over the flight tables
type AnalyticsService struct {
	db *sqlx.DB
}

func NewAnalyticsService(db *sqlx.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// FlightReport gathers the total, per-status, per-day and top route counts.
// Dates in PerDay are DD/MM/YYYY in chronological order.
func (s *AnalyticsService) FlightReport(ctx context.Context) (*dtos.FlightReport, error) {
	report := &dtos.FlightReport{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.db.GetContext(gctx, &report.TotalFlights, totalFlightsQuery); err != nil {
			return fmt.Errorf("failed to count flights: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.db.SelectContext(gctx, &report.ByStatus, flightsByStatusQuery); err != nil {
			return fmt.Errorf("failed to count flights by status: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.db.SelectContext(gctx, &report.PerDay, flightsPerDayQuery); err != nil {
			return fmt.Errorf("failed to count flights per day: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		query := s.db.Rebind(topRoutesQuery)
		if err := s.db.SelectContext(gctx, &report.TopRoutes, query, constants.TopRoutesLimit); err != nil {
			return fmt.Errorf("failed to rank routes: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range report.PerDay {
		report.PerDay[i].Date = common.DisplayDate(report.PerDay[i].Date)
	}
	return report, nil
}

// PilotWorkload counts the flights assigned to every pilot, busiest first
func (s *AnalyticsService) PilotWorkload(ctx context.Context) ([]dtos.PilotWorkload, error) {
	var workload []dtos.PilotWorkload
	if err := s.db.SelectContext(ctx, &workload, pilotWorkloadQuery); err != nil {
		return nil, fmt.Errorf("failed to count pilot workload: %w", err)
	}
	return workload, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/models/gorm"
)

// RawAirportData is one entry of an airports JSON dump keyed by ICAO code
type RawAirportData struct {
	ICAO    string `json:"icao"`
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// ImportAirports loads airports from a JSON reader and upserts them.
// Expected format: object with airport data as values
// Example: {"EGLL": {"icao": "EGLL", "iata": "LHR", "name": "London Heathrow", ...}}
// Entries without a 3-letter IATA code are skipped.
func (s *AirportService) ImportAirports(ctx context.Context, reader io.Reader) (int, error) {
	var rawData map[string]RawAirportData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&rawData); err != nil {
		return 0, &ValidationError{Field: "airports file", Reason: fmt.Sprintf("failed to decode JSON: %v", err)}
	}

	if len(rawData) == 0 {
		return 0, &ValidationError{Field: "airports file", Reason: "no airport data found"}
	}

	s.logger.Debugw("Airport file decoded", "entries", len(rawData))

	seen := make(map[string]bool, len(rawData))
	airports := make([]gorm.Airport, 0, len(rawData))
	for _, raw := range rawData {
		airport := gorm.Airport{
			IATACode: common.NormalizeIATA(raw.IATA),
			Name:     strings.TrimSpace(raw.Name),
			City:     strings.TrimSpace(raw.City),
			Country:  strings.TrimSpace(raw.Country),
		}
		if airport.City == "" {
			airport.City = strings.TrimSpace(raw.State)
		}

		if !common.IsIATACode(airport.IATACode) || airport.Name == "" || seen[airport.IATACode] {
			continue
		}
		if airport.City == "" || airport.Country == "" {
			continue
		}
		seen[airport.IATACode] = true
		airports = append(airports, airport)
	}

	if len(airports) == 0 {
		return 0, &ValidationError{Field: "airports file", Reason: "no valid airports found"}
	}

	if err := s.repo.Airports.BatchUpsert(ctx, airports); err != nil {
		return 0, fmt.Errorf("failed to import airports: %w", err)
	}

	for _, a := range airports {
		s.airports.Invalidate(a.IATACode)
	}

	s.logger.Infow("Airports imported", "count", len(airports), "skipped", len(rawData)-len(airports))
	return len(airports), nil
}

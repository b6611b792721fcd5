package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"flight-ops/dispatch/internal/common"
	"flight-ops/dispatch/internal/constants"
	"flight-ops/dispatch/internal/db/repositories"
	"flight-ops/dispatch/internal/models/dtos"
	"flight-ops/dispatch/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// FlightQueryService serves the read-only flight listings
type FlightQueryService struct {
	repo *repositories.Repository
	db   *sqlx.DB
}

func NewFlightQueryService(repo *repositories.Repository, db *sqlx.DB) *FlightQueryService {
	return &FlightQueryService{repo: repo, db: db}
}

// viewColumn is one selectable column of the joined flight view
type viewColumn struct {
	expr   string
	label  string
	format func(string) string
}

// flightViewColumns are numbered 1..10 in this order for column selection
var flightViewColumns = []viewColumn{
	{expr: "flight.flight_id", label: "Flight ID"},
	{expr: "flight.origin_id", label: "Origin Airport"},
	{expr: "flight.destination_id", label: "Destination Airport"},
	{expr: "flight.aircraft_id", label: "Aircraft ID"},
	{expr: "flight.flight_date", label: "Date", format: common.DisplayDate},
	{expr: "flight.flight_time", label: "Time"},
	{expr: "flight.status", label: "Status"},
	{expr: "pilot.pilot_id", label: "Pilot ID"},
	{expr: "pilot.first_name", label: "Pilot First Name"},
	{expr: "pilot.last_name", label: "Pilot Last Name"},
}

// FlightViewHeaders lists the selectable column labels in order
func FlightViewHeaders() []string {
	headers := make([]string, 0, len(flightViewColumns))
	for _, c := range flightViewColumns {
		headers = append(headers, c.label)
	}
	return headers
}

// GetFlight returns one flight with its pilot
func (s *FlightQueryService) GetFlight(ctx context.Context, flightID uint) (*dtos.FlightView, error) {
	flight, err := s.repo.Flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, &NotFoundError{Resource: "flight", ID: flightIDString(flightID)}
	}
	view := ToFlightView(*flight)
	return &view, nil
}

// FlightsOnDate lists the flights of a DD/MM/YYYY date ordered by time
func (s *FlightQueryService) FlightsOnDate(ctx context.Context, dateInput string) ([]dtos.FlightView, error) {
	date, err := common.ParseFlightDate(dateInput)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: "expected DD/MM/YYYY"}
	}

	flights, err := s.repo.Flights.FlightsOnDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return toFlightViews(flights), nil
}

// FlightsByStatus lists the flights with a status ordered by date, then time
func (s *FlightQueryService) FlightsByStatus(ctx context.Context, statusInput string) ([]dtos.FlightView, error) {
	status, err := constants.ParseFlightStatus(statusInput)
	if err != nil {
		return nil, &ValidationError{Field: "status", Reason: "expected Scheduled, Delayed or Cancelled"}
	}

	flights, err := s.repo.Flights.FlightsByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return toFlightViews(flights), nil
}

// ListFlights returns every flight ordered by date, then time
func (s *FlightQueryService) ListFlights(ctx context.Context) ([]dtos.FlightView, error) {
	flights, err := s.repo.Flights.List(ctx)
	if err != nil {
		return nil, err
	}
	return toFlightViews(flights), nil
}

// ViewFlights renders the flight and pilot join restricted to the selected
// columns ("1,3,4"; blank selects all).
func (s *FlightQueryService) ViewFlights(ctx context.Context, selection string) (*dtos.TableView, error) {
	indexes, err := ParseColumnSelection(selection, len(flightViewColumns))
	if err != nil {
		return nil, err
	}

	selected := make([]viewColumn, 0, len(indexes))
	fields := make([]string, 0, len(indexes))
	for _, i := range indexes {
		c := flightViewColumns[i]
		selected = append(selected, c)
		fields = append(fields, c.expr+" AS "+pq.QuoteIdentifier(c.label))
	}

	query := `SELECT ` + strings.Join(fields, ", ") + `
		FROM flight
		LEFT JOIN flight_pilot ON flight_pilot.flight_id = flight.flight_id
		LEFT JOIN pilot ON pilot.pilot_id = flight_pilot.pilot_id
		ORDER BY flight.flight_date, flight.flight_time, flight.flight_id`

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query flight view: %w", err)
	}
	defer rows.Close()

	view := &dtos.TableView{Rows: [][]string{}}
	for _, c := range selected {
		view.Headers = append(view.Headers, c.label)
	}

	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight view: %w", err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = cellString(v)
			if selected[i].format != nil {
				cells[i] = selected[i].format(cells[i])
			}
		}
		view.Rows = append(view.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read flight view: %w", err)
	}

	return view, nil
}

// ToFlightView converts a flight with its preloaded assignment for display
func ToFlightView(f gorm.Flight) dtos.FlightView {
	view := dtos.FlightView{
		FlightID:    f.FlightID,
		Origin:      f.OriginID,
		Destination: f.DestinationID,
		AircraftID:  f.AircraftID,
		Date:        common.DisplayDate(f.FlightDate),
		Time:        f.FlightTime,
		Status:      f.Status.String(),
		PilotID:     f.PilotID(),
	}
	if f.Assignment != nil && f.Assignment.Pilot != nil {
		view.PilotName = f.Assignment.Pilot.FullName()
	}
	return view
}

func toFlightViews(flights []gorm.Flight) []dtos.FlightView {
	views := make([]dtos.FlightView, 0, len(flights))
	for _, f := range flights {
		views = append(views, ToFlightView(f))
	}
	return views
}

func cellString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}

func flightIDString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

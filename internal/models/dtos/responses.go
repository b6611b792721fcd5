package dtos

// FlightView is a flight as shown to the operator (date as DD/MM/YYYY)
type FlightView struct {
	FlightID    uint   `json:"flight_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	AircraftID  string `json:"aircraft_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	PilotID     string `json:"pilot_id"`
	PilotName   string `json:"pilot_name"`
}

// DayAssignment is one flight on a date with the pilot flying it
type DayAssignment struct {
	FlightID uint   `json:"flight_id"`
	PilotID  string `json:"pilot_id"`
	Time     string `json:"time"`
}

// TableView is a header row plus string cells, produced by column-selectable listings
type TableView struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

type DailyCount struct {
	Date  string `db:"flight_date" json:"date"`
	Count int    `db:"count" json:"count"`
}

type RouteCount struct {
	Route string `db:"route" json:"route"`
	Count int    `db:"count" json:"count"`
}

type PilotWorkload struct {
	PilotID     string `db:"pilot_id" json:"pilot_id"`
	LastName    string `db:"last_name" json:"last_name"`
	FlightCount int    `db:"flight_count" json:"flight_count"`
}

// FlightReport holds the aggregate rows of the flight and destination report
type FlightReport struct {
	TotalFlights int           `json:"total_flights"`
	ByStatus     []StatusCount `json:"by_status"`
	PerDay       []DailyCount  `json:"per_day"`
	TopRoutes    []RouteCount  `json:"top_routes"`
}

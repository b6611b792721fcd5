package constants

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// FlightStatus mirrors the CHECK constraint on flight.status
type FlightStatus string

const (
	FlightScheduled FlightStatus = "Scheduled"
	FlightDelayed   FlightStatus = "Delayed"
	FlightCancelled FlightStatus = "Cancelled"
)

// FlightStatuses lists the statuses in menu order (1, 2, 3)
var FlightStatuses = []FlightStatus{FlightScheduled, FlightDelayed, FlightCancelled}

// String implements fmt.Stringer
func (s FlightStatus) String() string { return string(s) }

// IsValid reports whether s is one of the three persisted statuses
func (s FlightStatus) IsValid() bool {
	switch s {
	case FlightScheduled, FlightDelayed, FlightCancelled:
		return true
	}
	return false
}

// ParseFlightStatus accepts the literal status (any case) or its menu number.
func ParseFlightStatus(raw string) (FlightStatus, error) {
	v := strings.TrimSpace(raw)
	switch v {
	case "1":
		return FlightScheduled, nil
	case "2":
		return FlightDelayed, nil
	case "3":
		return FlightCancelled, nil
	}
	for _, s := range FlightStatuses {
		if strings.EqualFold(v, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown flight status %q", raw)
}

/* ---------- DB adapters so gorm / sqlx scan and write cleanly ---------- */

// Scan implements the sql.Scanner interface
func (s *FlightStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = FlightStatus(v)
	case []byte:
		*s = FlightStatus(v)
	default:
		return fmt.Errorf("FlightStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface. Unknown statuses never reach the store.
func (s FlightStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("FlightStatus: refusing to persist %q", string(s))
	}
	return string(s), nil
}

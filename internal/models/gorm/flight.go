package gorm

import (
	"flight-ops/dispatch/internal/constants"
	"time"
)

// Flight is one scheduled departure. FlightDate is stored as YYYY-MM-DD.
type Flight struct {
	FlightID      uint                   `gorm:"column:flight_id;primaryKey;autoIncrement"`
	OriginID      string                 `gorm:"column:origin_id;type:varchar(3);not null"`
	DestinationID string                 `gorm:"column:destination_id;type:varchar(3);not null"`
	AircraftID    string                 `gorm:"column:aircraft_id;not null"`
	FlightDate    string                 `gorm:"column:flight_date;type:varchar(10);not null"`
	FlightTime    string                 `gorm:"column:flight_time;type:varchar(5);not null"`
	Status        constants.FlightStatus `gorm:"column:status;type:varchar(16);not null"`
	CreatedAt     time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time              `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Assignment *FlightPilot `gorm:"foreignKey:FlightID"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flight"
}

// PilotID returns the assigned pilot, or "" when the assignment was not loaded
func (f Flight) PilotID() string {
	if f.Assignment == nil {
		return ""
	}
	return f.Assignment.PilotID
}

// FlightPilot binds exactly one pilot to a flight
type FlightPilot struct {
	FlightID   uint      `gorm:"column:flight_id;primaryKey;autoIncrement:false"`
	PilotID    string    `gorm:"column:pilot_id;not null"`
	AssignedAt time.Time `gorm:"column:assigned_at;autoCreateTime"`

	// Relationships
	Pilot *Pilot `gorm:"foreignKey:PilotID;references:PilotID"`
}

// TableName specifies the table name for GORM
func (FlightPilot) TableName() string {
	return "flight_pilot"
}

package gorm

import "time"

type Aircraft struct {
	AircraftID         string    `gorm:"column:aircraft_id;primaryKey"`
	Model              string    `gorm:"column:model;not null"`
	Capacity           int       `gorm:"column:capacity;not null"`
	Manufacturer       string    `gorm:"column:manufacturer;not null"`
	RegistrationNumber string    `gorm:"column:registration_number;not null;uniqueIndex"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Aircraft) TableName() string {
	return "aircraft"
}

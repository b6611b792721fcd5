package gorm

import "time"

// Airport represents a destination keyed by its IATA code
type Airport struct {
	IATACode  string    `gorm:"column:iata_code;primaryKey;type:varchar(3)"`
	Name      string    `gorm:"column:name;type:text;not null"`
	City      string    `gorm:"column:city;type:varchar(100);not null"`
	Country   string    `gorm:"column:country;type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airport"
}

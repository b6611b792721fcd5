package gorm

import "time"

// Pilot holds personal, contact and credential details of a pilot
type Pilot struct {
	PilotID            string    `gorm:"column:pilot_id;primaryKey"`
	FirstName          string    `gorm:"column:first_name;not null"`
	LastName           string    `gorm:"column:last_name;not null"`
	ExperienceYears    int       `gorm:"column:experience_years"`
	DateOfBirth        string    `gorm:"column:date_of_birth"`
	Nationality        string    `gorm:"column:nationality"`
	PhoneNumber        string    `gorm:"column:phone_number"`
	Email              string    `gorm:"column:email"`
	PassportNumber     string    `gorm:"column:passport_number"`
	LicenseNumber      string    `gorm:"column:license_number"`
	FirstLineOfAddress string    `gorm:"column:first_line_of_address"`
	TownCity           string    `gorm:"column:town_city"`
	Country            string    `gorm:"column:country"`
	Postcode           string    `gorm:"column:postcode"`
	County             string    `gorm:"column:county"`
	WorkEligibility    string    `gorm:"column:work_eligibility"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Pilot) TableName() string {
	return "pilot"
}

// FullName joins first and last name for listings
func (p Pilot) FullName() string {
	return p.FirstName + " " + p.LastName
}

package dtos

// CreateFlightRequest carries operator input for a new flight. Date is DD/MM/YYYY, Time is HH:MM.
type CreateFlightRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	PilotID     string `json:"pilot_id"`
	AircraftID  string `json:"aircraft_id"`
}

// UpdateFlightRequest: a nil field keeps the persisted value
type UpdateFlightRequest struct {
	Origin      *string `json:"origin,omitempty"`
	Destination *string `json:"destination,omitempty"`
	AircraftID  *string `json:"aircraft_id,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Status      *string `json:"status,omitempty"`
	PilotID     *string `json:"pilot_id,omitempty"`
}

type CreateAirportRequest struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

// UpdateAirportRequest: blank fields keep the current value
type UpdateAirportRequest struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type CreateAircraftRequest struct {
	AircraftID         string `json:"aircraft_id"`
	Model              string `json:"model"`
	Capacity           int    `json:"capacity"`
	Manufacturer       string `json:"manufacturer"`
	RegistrationNumber string `json:"registration_number"`
}

type CreatePilotRequest struct {
	PilotID            string `json:"pilot_id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	ExperienceYears    int    `json:"experience_years"`
	DateOfBirth        string `json:"date_of_birth"`
	Nationality        string `json:"nationality"`
	PhoneNumber        string `json:"phone_number"`
	Email              string `json:"email"`
	PassportNumber     string `json:"passport_number"`
	LicenseNumber      string `json:"license_number"`
	FirstLineOfAddress string `json:"first_line_of_address"`
	TownCity           string `json:"town_city"`
	Country            string `json:"country"`
	Postcode           string `json:"postcode"`
	County             string `json:"county"`
	WorkEligibility    string `json:"work_eligibility"`
}

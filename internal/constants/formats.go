package constants

const (
	// DateInputLayout is the operator-facing date literal (DD/MM/YYYY)
	DateInputLayout = "02/01/2006"
	// DateStoreLayout keeps flight_date sortable as text
	DateStoreLayout = "2006-01-02"
	// TimeLayout is the 24-hour clock literal
	TimeLayout = "15:04"

	IATACodeLength = 3
	TopRoutesLimit = 5
)

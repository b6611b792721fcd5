package constants

const (
	StatusError      = "Error"
	StatusRejected   = "Flight rejected"
	StatusInUse      = "Resource in use"
	StatusNotFound   = "Not found"
	StatusConflict   = "Scheduling conflict"
	StatusDuplicate  = "Already exists"
	StatusInvalid    = "Invalid input"
	StatusCancelled  = "Cancelled"
	StatusSuccessful = "Done"
)

const (
	MsgNoAircraftAvailable = "Either all aircraft are being used, or your selected aircraft is being used for another flight on this day. Please make another selection"
	MsgNoPilotAvailable    = "No available pilots on this date."
	MsgFlightRejected      = "Database rejection, please start again"
	MsgReturnFlightHint    = "Reminder: this flight leaves %s. Please add the return flight now so pilots are not stranded overseas, and make sure the pilot has a sufficient break before it."
	MsgDeletionCancelled   = "Deletion cancelled."
)

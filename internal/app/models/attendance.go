package models

// Sentinel values stored in the time_in column. Any other non-empty value is
// a formatted wall-clock time and counts as present.
const (
	TimeInLate   = "Late"
	TimeInAbsent = "Absent"
)

// ScanAction is the action submitted with a barcode scan
type ScanAction string

const (
	ActionTimeIn  ScanAction = "time_in"
	ActionTimeOut ScanAction = "time_out"
)

// AttendanceStatus is the derived per-event classification, never stored
type AttendanceStatus string

const (
	StatusAttended AttendanceStatus = "Attended"
	StatusLate     AttendanceStatus = "Late"
	StatusMissed   AttendanceStatus = "Missed"
)

// AttendanceRecord defines a ledger row based on the 'event_attendance' table.
// At most one record exists per (event, usn, date).
type AttendanceRecord struct {
	ID      int64  `json:"id" db:"id" example:"1"`
	EventID int64  `json:"eventId" db:"event_id" example:"1"`
	USN     string `json:"usn" db:"usn" example:"22000745800"`
	Date    string `json:"date" db:"date" example:"2025-09-12"`
	TimeIn  string `json:"timeIn" db:"time_in" example:"8:59 AM"`
	TimeOut string `json:"timeOut" db:"time_out" example:"4:30 PM"`
}

// DeriveStatus classifies a stored time_in value.
// Empty or "Absent" means the student never registered; "Late" means the first
// scan of the day was a time-out; anything else is a normal time-in.
func DeriveStatus(timeIn string) AttendanceStatus {
	switch timeIn {
	case "", TimeInAbsent:
		return StatusMissed
	case TimeInLate:
		return StatusLate
	default:
		return StatusAttended
	}
}

// AttendanceUpdate is the payload published to dashboard subscribers after
// every successful scan.
type AttendanceUpdate struct {
	EventID int64  `json:"event_id" example:"1"`
	USN     string `json:"usn" example:"22000745800"`
	Name    string `json:"name" example:"Juan Dela Cruz"`
	Date    string `json:"date" example:"2025-09-12"`
	TimeIn  string `json:"time_in" example:"8:59 AM"`
	TimeOut string `json:"time_out" example:"4:30 PM"`
}

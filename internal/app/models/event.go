package models

// Event defines an event based on the 'events' table.
// Dates and the cutoff are stored as text the way the scanners submit them:
// EventDate "2006-01-02", CutoffTime "15:04". A nil CutoffTime means time-in
// is never rejected for lateness.
type Event struct {
	ID         int64   `json:"id" db:"id" example:"1"`
	EventName  string  `json:"eventName" db:"event_name" example:"Intramurals Opening"`
	EventDate  string  `json:"eventDate" db:"event_date" example:"2025-09-12"`
	Semester   string  `json:"semester" db:"semester" example:"1st Semester 2025-2026"`
	CutoffTime *string `json:"cutoffTime,omitempty" db:"cutoff_time" example:"09:00"`
}

package dto

// CreateEventRequest represents a new catalog entry.
// CutoffTime is optional "HH:MM"; omitted means no lateness cutoff.
type CreateEventRequest struct {
	EventName  string  `json:"eventName" binding:"required"`
	EventDate  string  `json:"eventDate" binding:"required"`
	Semester   string  `json:"semester" binding:"required"`
	CutoffTime *string `json:"cutoffTime"`
}

// UpdateEventRequest represents an event edit
type UpdateEventRequest struct {
	EventName  string  `json:"eventName" binding:"required"`
	EventDate  string  `json:"eventDate" binding:"required"`
	Semester   string  `json:"semester" binding:"required"`
	CutoffTime *string `json:"cutoffTime"`
}

package dto

import "github.com/keiji0711/final-final/internal/app/models"

// GlobalStats aggregates attendance over a set of events. Slots assumes every
// student is expected at every event; percentages are formatted to one decimal
// place, "0%" when there are no slots.
type GlobalStats struct {
	TotalStudents    int    `json:"totalStudents" example:"120"`
	TotalEvents      int    `json:"totalEvents" example:"8"`
	TotalPresent     int    `json:"totalPresent" example:"700"`
	TotalLate        int    `json:"totalLate" example:"90"`
	TotalAbsent      int    `json:"totalAbsent" example:"170"`
	AttendanceRate   string `json:"attendanceRate" example:"72.9%"`
	LatePercentage   string `json:"latePercentage" example:"9.4%"`
	AbsentPercentage string `json:"absentPercentage" example:"17.7%"`
}

// EventStats aggregates attendance for a single event
type EventStats struct {
	Event   *models.Event `json:"event"`
	Present int           `json:"present" example:"95"`
	Late    int           `json:"late" example:"10"`
	Absent  int           `json:"absent" example:"15"`
}

// EventHistoryEntry is one row of a student's per-event history. Events the
// student never scanned at still appear, with empty times and status Missed.
type EventHistoryEntry struct {
	EventID   int64                   `json:"eventId" example:"1"`
	EventName string                  `json:"eventName" example:"Intramurals Opening"`
	EventDate string                  `json:"eventDate" example:"2025-09-12"`
	TimeIn    string                  `json:"timeIn" example:"8:59 AM"`
	TimeOut   string                  `json:"timeOut" example:"4:30 PM"`
	Status    models.AttendanceStatus `json:"status" example:"Attended"`
}

// StudentProfile is the per-student attendance summary and history
type StudentProfile struct {
	Student   *models.Student     `json:"student"`
	Attended  int                 `json:"attended" example:"6"`
	Late      int                 `json:"late" example:"1"`
	Missed    int                 `json:"missed" example:"1"`
	NoTimeout int                 `json:"noTimeout" example:"2"`
	History   []EventHistoryEntry `json:"history"`
}

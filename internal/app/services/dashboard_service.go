package services

import (
	"context"
	"fmt"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/app/models/dto"
	"github.com/keiji0711/final-final/internal/app/repositories"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
)

// RosterReader is the roster access the aggregation queries need
type RosterReader interface {
	GetByUSN(ctx context.Context, usn string) (*models.Student, error)
	Count(ctx context.Context) (int, error)
}

// CatalogReader is the event access the aggregation queries need
type CatalogReader interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context) ([]*models.Event, error)
	Count(ctx context.Context) (int, error)
}

// AttendanceStats exposes the aggregate ledger queries
type AttendanceStats interface {
	CountPresentLateForEvents(ctx context.Context, eventIDs []int64) (present, late int, err error)
	CountPresentLateByEvent(ctx context.Context, eventID int64) (present, late int, err error)
	CountAttendedLateByStudent(ctx context.Context, usn string) (attended, late int, err error)
	CountNoTimeoutByStudent(ctx context.Context, usn string) (int, error)
	HistoryByStudent(ctx context.Context, usn string) ([]*repositories.StudentHistoryRow, error)
}

// DashboardService computes aggregate attendance figures
type DashboardService struct {
	students RosterReader
	events   CatalogReader
	stats    AttendanceStats
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(students RosterReader, events CatalogReader, stats AttendanceStats) *DashboardService {
	return &DashboardService{
		students: students,
		events:   events,
		stats:    stats,
	}
}

// GlobalStats computes the campus-wide attendance summary. The universe of
// attendance slots is the cross product of every student and every event; a
// slot with no row, or an "Absent" sentinel, counts as absent.
func (s *DashboardService) GlobalStats(ctx context.Context) (*dto.GlobalStats, error) {
	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	events, err := s.events.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	eventIDs := make([]int64, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}

	var present, late int
	if len(eventIDs) > 0 {
		present, late, err = s.stats.CountPresentLateForEvents(ctx, eventIDs)
		if err != nil {
			return nil, fmt.Errorf("error counting attendance: %w", err)
		}
	}

	slots := totalStudents * len(events)
	absent := slots - present - late
	if absent < 0 {
		absent = 0
	}

	return &dto.GlobalStats{
		TotalStudents:    totalStudents,
		TotalEvents:      len(events),
		TotalPresent:     present,
		TotalLate:        late,
		TotalAbsent:      absent,
		AttendanceRate:   FormatPercent(present, slots),
		LatePercentage:   FormatPercent(late, slots),
		AbsentPercentage: FormatPercent(absent, slots),
	}, nil
}

// EventStats computes the per-event breakdown against the current roster size.
func (s *DashboardService) EventStats(ctx context.Context, eventID int64) (*dto.EventStats, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error fetching event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	present, late, err := s.stats.CountPresentLateByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error counting attendance: %w", err)
	}

	absent := totalStudents - present - late
	if absent < 0 {
		absent = 0
	}

	return &dto.EventStats{
		Event:   event,
		Present: present,
		Late:    late,
		Absent:  absent,
	}, nil
}

// StudentProfile builds the per-student attendance profile, including the
// full per-event history with derived status.
func (s *DashboardService) StudentProfile(ctx context.Context, usn string) (*dto.StudentProfile, error) {
	student, err := s.students.GetByUSN(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("error fetching student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	totalEvents, err := s.events.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting events: %w", err)
	}

	attended, late, err := s.stats.CountAttendedLateByStudent(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("error counting attendance: %w", err)
	}

	noTimeout, err := s.stats.CountNoTimeoutByStudent(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("error counting missing time outs: %w", err)
	}

	rows, err := s.stats.HistoryByStudent(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("error fetching history: %w", err)
	}

	history := make([]dto.EventHistoryEntry, 0, len(rows))
	for _, row := range rows {
		history = append(history, dto.EventHistoryEntry{
			EventID:   row.EventID,
			EventName: row.EventName,
			EventDate: row.EventDate,
			TimeIn:    row.TimeIn,
			TimeOut:   row.TimeOut,
			Status:    models.DeriveStatus(row.TimeIn),
		})
	}

	missed := totalEvents - attended - late
	if missed < 0 {
		missed = 0
	}

	return &dto.StudentProfile{
		Student:   student,
		Attended:  attended,
		Late:      late,
		Missed:    missed,
		NoTimeout: noTimeout,
		History:   history,
	}, nil
}

// FormatPercent renders part over total as a one-decimal percentage string.
// A zero total yields "0%" rather than a division by zero.
func FormatPercent(part, total int) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/app/repositories"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
	"github.com/keiji0711/final-final/internal/pkg/helpers"
)

// AttendancePublisher pushes an update to dashboard subscribers after every
// successful scan. Implementations must not block; delivery is best-effort and
// a publish failure never rolls back the ledger write.
type AttendancePublisher interface {
	PublishAttendance(update *models.AttendanceUpdate)
}

// StudentDirectory is the roster lookup the recording rule needs
type StudentDirectory interface {
	GetByUSN(ctx context.Context, usn string) (*models.Student, error)
}

// EventCatalog is the event lookup the recording rule needs
type EventCatalog interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// AttendanceLedger is the per-key record storage the recording rule needs.
// Insert must fail with repositories.ErrDuplicateAttendance when a row for the
// same (event, usn, date) key already exists.
type AttendanceLedger interface {
	GetForDate(ctx context.Context, eventID int64, usn, date string) (*models.AttendanceRecord, error)
	Insert(ctx context.Context, record *models.AttendanceRecord) error
	UpdateTimeOut(ctx context.Context, eventID int64, usn, date, timeOut string) error
}

// AttendanceService applies the attendance recording rule to barcode scans
type AttendanceService struct {
	students  StudentDirectory
	events    EventCatalog
	ledger    AttendanceLedger
	publisher AttendancePublisher
	logger    zerolog.Logger

	now func() time.Time
}

// NewAttendanceService creates a new attendance service. The publisher is an
// injected capability; pass nil to record scans without broadcasting.
func NewAttendanceService(
	students StudentDirectory,
	events EventCatalog,
	ledger AttendanceLedger,
	publisher AttendancePublisher,
	logger zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		students:  students,
		events:    events,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordScan validates a scan and writes or updates the day's ledger row.
//
// time_in: rejected after the event's cutoff instant and rejected when the
// student already has a row for today; otherwise a new row is created.
// time_out: with no row for today the student never timed in, so a row is
// created with the "Late" sentinel as time_in; with an existing row only
// time_out is overwritten (last write wins, time_in is immutable).
func (s *AttendanceService) RecordScan(ctx context.Context, usn string, eventID int64, action models.ScanAction) (*models.AttendanceUpdate, error) {
	usn = strings.TrimSpace(usn)
	if usn == "" || eventID <= 0 {
		return nil, apperrors.ErrMissingFields
	}

	student, err := s.students.GetByUSN(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("error validating student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error validating event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	now := s.now()
	today := helpers.FormatDate(now)
	clock := helpers.FormatClockTime(now)

	record, err := s.ledger.GetForDate(ctx, eventID, usn, today)
	if err != nil {
		return nil, fmt.Errorf("error looking up attendance record: %w", err)
	}

	update := &models.AttendanceUpdate{
		EventID: eventID,
		USN:     student.USN,
		Name:    student.Name,
		Date:    today,
	}

	switch action {
	case models.ActionTimeIn:
		if event.CutoffTime != nil && *event.CutoffTime != "" {
			afterCutoff, err := helpers.IsAfterCutoff(now, *event.CutoffTime)
			if err != nil {
				return nil, fmt.Errorf("error evaluating cutoff: %w", err)
			}
			if afterCutoff {
				return nil, apperrors.ErrCutoffExceeded
			}
		}

		if record != nil {
			return nil, apperrors.ErrDuplicateTimeIn
		}

		newRecord := &models.AttendanceRecord{
			EventID: eventID,
			USN:     usn,
			Date:    today,
			TimeIn:  clock,
			TimeOut: "",
		}
		if err := s.ledger.Insert(ctx, newRecord); err != nil {
			if errors.Is(err, repositories.ErrDuplicateAttendance) {
				// Lost the race against a concurrent scan for the same key
				return nil, apperrors.ErrDuplicateTimeIn
			}
			return nil, fmt.Errorf("error inserting attendance record: %w", err)
		}

		update.TimeIn = clock
		update.TimeOut = ""

	case models.ActionTimeOut:
		if record == nil {
			newRecord := &models.AttendanceRecord{
				EventID: eventID,
				USN:     usn,
				Date:    today,
				TimeIn:  models.TimeInLate,
				TimeOut: clock,
			}
			err := s.ledger.Insert(ctx, newRecord)
			if err == nil {
				update.TimeIn = models.TimeInLate
				update.TimeOut = clock
				break
			}
			if !errors.Is(err, repositories.ErrDuplicateAttendance) {
				return nil, fmt.Errorf("error inserting attendance record: %w", err)
			}

			// A concurrent scan created the row first; fall back to a plain
			// time-out update against the winner's record.
			record, err = s.ledger.GetForDate(ctx, eventID, usn, today)
			if err != nil {
				return nil, fmt.Errorf("error looking up attendance record: %w", err)
			}
			if record == nil {
				return nil, fmt.Errorf("attendance record vanished after duplicate insert for usn %s", usn)
			}
		}

		if err := s.ledger.UpdateTimeOut(ctx, eventID, usn, today, clock); err != nil {
			return nil, fmt.Errorf("error updating time out: %w", err)
		}
		update.TimeIn = record.TimeIn
		update.TimeOut = clock

	default:
		return nil, apperrors.ErrInvalidAction
	}

	if s.publisher != nil {
		s.publisher.PublishAttendance(update)
	}

	s.logger.Debug().
		Str("usn", usn).
		Int64("eventID", eventID).
		Str("action", string(action)).
		Msg("Scan recorded")

	return update, nil
}

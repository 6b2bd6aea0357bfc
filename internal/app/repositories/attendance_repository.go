package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/pkg/dberrors"
)

// Attendance repository error types
var (
	// ErrDuplicateAttendance means the (event, usn, date) key already has a row.
	// Raced inserts resolve to exactly one winner through the unique constraint;
	// callers decide whether the loser is a duplicate time-in or a late update.
	ErrDuplicateAttendance = errors.New("attendance record already exists for this event, student and date")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// uniqueKeyConstraint is the schema constraint enforcing one row per key
const uniqueKeyConstraint = "uq_event_attendance_key"

// EventAttendanceRow is a ledger row joined with the student's name,
// as shown on the live attendance sheet and the export.
type EventAttendanceRow struct {
	USN     string `json:"usn"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	TimeIn  string `json:"time_in"`
	TimeOut string `json:"time_out"`
}

// StudentHistoryRow is one event from a student's history; TimeIn and TimeOut
// are empty when the student never scanned at the event.
type StudentHistoryRow struct {
	EventID   int64
	EventName string
	EventDate string
	TimeIn    string
	TimeOut   string
}

// AttendanceRepository handles database operations for the attendance ledger
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// GetForDate retrieves the record for one (event, usn, date) key, nil when absent
func (r *AttendanceRepository) GetForDate(ctx context.Context, eventID int64, usn, date string) (*models.AttendanceRecord, error) {
	query := `
		SELECT id, event_id, usn, date, time_in, time_out
		FROM event_attendance
		WHERE event_id = $1 AND usn = $2 AND date = $3
	`

	var record models.AttendanceRecord
	err := r.db.QueryRow(ctx, query, eventID, usn, date).Scan(
		&record.ID,
		&record.EventID,
		&record.USN,
		&record.Date,
		&record.TimeIn,
		&record.TimeOut,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	return &record, nil
}

// Insert writes a new ledger row. The unique constraint is the single-writer
// guard: a concurrent insert for the same key fails with ErrDuplicateAttendance
// instead of producing a second row.
func (r *AttendanceRepository) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO event_attendance (event_id, usn, date, time_in, time_out)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		record.EventID, record.USN, record.Date, record.TimeIn, record.TimeOut,
	).Scan(&record.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, uniqueKeyConstraint) {
			return ErrDuplicateAttendance
		}
		return fmt.Errorf("error inserting attendance record: %w", err)
	}

	return nil
}

// UpdateTimeOut overwrites the time-out of an existing record (last write wins);
// time_in is never touched here.
func (r *AttendanceRepository) UpdateTimeOut(ctx context.Context, eventID int64, usn, date, timeOut string) error {
	query := `
		UPDATE event_attendance
		SET time_out = $4
		WHERE event_id = $1 AND usn = $2 AND date = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, eventID, usn, date, timeOut)
	if err != nil {
		return fmt.Errorf("error updating time out: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}

// ListByEvent retrieves all ledger rows for one event with student names
func (r *AttendanceRepository) ListByEvent(ctx context.Context, eventID int64) ([]*EventAttendanceRow, error) {
	query := `
		SELECT ea.usn, s.name, ea.date, ea.time_in, ea.time_out
		FROM event_attendance ea
		JOIN students s ON s.usn = ea.usn
		WHERE ea.event_id = $1
		ORDER BY ea.date ASC, s.name ASC
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*EventAttendanceRow
	for rows.Next() {
		var entry EventAttendanceRow
		if err := rows.Scan(&entry.USN, &entry.Name, &entry.Date, &entry.TimeIn, &entry.TimeOut); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// CountPresentLateForEvents counts present and late rows across a set of events.
// Present is any time_in that is non-empty and not a sentinel value.
func (r *AttendanceRepository) CountPresentLateForEvents(ctx context.Context, eventIDs []int64) (present, late int, err error) {
	if len(eventIDs) == 0 {
		return 0, 0, nil
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN time_in != '' AND time_in != 'Absent' AND time_in != 'Late' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN time_in = 'Late' THEN 1 ELSE 0 END), 0)
		FROM event_attendance
		WHERE event_id = ANY($1)
	`

	err = r.db.QueryRow(ctx, query, eventIDs).Scan(&present, &late)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting attendance: %w", err)
	}

	return present, late, nil
}

// CountPresentLateByEvent counts present and late rows for a single event
func (r *AttendanceRepository) CountPresentLateByEvent(ctx context.Context, eventID int64) (present, late int, err error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN time_in != '' AND time_in != 'Absent' AND time_in != 'Late' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN time_in = 'Late' THEN 1 ELSE 0 END), 0)
		FROM event_attendance
		WHERE event_id = $1
	`

	err = r.db.QueryRow(ctx, query, eventID).Scan(&present, &late)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting event attendance: %w", err)
	}

	return present, late, nil
}

// CountAttendedLateByStudent counts the distinct events where the student was
// present and where the student was late
func (r *AttendanceRepository) CountAttendedLateByStudent(ctx context.Context, usn string) (attended, late int, err error) {
	query := `
		SELECT
			COUNT(DISTINCT ea.event_id) FILTER (WHERE ea.time_in != '' AND ea.time_in != 'Absent' AND ea.time_in != 'Late'),
			COUNT(DISTINCT ea.event_id) FILTER (WHERE ea.time_in = 'Late')
		FROM event_attendance ea
		JOIN events e ON e.id = ea.event_id
		WHERE ea.usn = $1
	`

	err = r.db.QueryRow(ctx, query, usn).Scan(&attended, &late)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting student attendance: %w", err)
	}

	return attended, late, nil
}

// CountNoTimeoutByStudent counts records where the student timed in but never
// timed out, restricted to events that still exist
func (r *AttendanceRepository) CountNoTimeoutByStudent(ctx context.Context, usn string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM event_attendance ea
		JOIN events e ON e.id = ea.event_id
		WHERE ea.usn = $1
		  AND ea.time_in != ''
		  AND ea.time_out = ''
	`

	var count int
	err := r.db.QueryRow(ctx, query, usn).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting missing timeouts: %w", err)
	}

	return count, nil
}

// HistoryByStudent retrieves every event left-joined with the student's ledger
// rows, newest event first; events with no scan come back with empty times
func (r *AttendanceRepository) HistoryByStudent(ctx context.Context, usn string) ([]*StudentHistoryRow, error) {
	query := `
		SELECT e.id, e.event_name, e.event_date,
		       COALESCE(ea.time_in, ''), COALESCE(ea.time_out, '')
		FROM events e
		LEFT JOIN event_attendance ea
		       ON e.id = ea.event_id AND ea.usn = $1
		ORDER BY e.event_date DESC
	`

	rows, err := r.db.Query(ctx, query, usn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*StudentHistoryRow
	for rows.Next() {
		var row StudentHistoryRow
		if err := rows.Scan(&row.EventID, &row.EventName, &row.EventDate, &row.TimeIn, &row.TimeOut); err != nil {
			return nil, err
		}
		history = append(history, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

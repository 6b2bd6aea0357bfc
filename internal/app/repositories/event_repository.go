package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keiji0711/final-final/internal/app/models"
)

// Event repository error types
var (
	ErrEventNotFound = errors.New("event not found")
)

// EventRepository handles database operations for the event catalog
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
	}
}

// Create inserts a new event and fills in its assigned id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (event_name, event_date, semester, cutoff_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		event.EventName, event.EventDate, event.Semester, event.CutoffTime,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}

	return nil
}

// GetByID retrieves an event by id, nil when absent
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `
		SELECT id, event_name, event_date, semester, cutoff_time
		FROM events
		WHERE id = $1
	`

	var event models.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.EventName,
		&event.EventDate,
		&event.Semester,
		&event.CutoffTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	return &event, nil
}

// GetAll retrieves all events ordered by date
func (r *EventRepository) GetAll(ctx context.Context) ([]*models.Event, error) {
	query := `
		SELECT id, event_name, event_date, semester, cutoff_time
		FROM events
		ORDER BY event_date ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID,
			&event.EventName,
			&event.EventDate,
			&event.Semester,
			&event.CutoffTime,
		); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Count returns the catalog size
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}

	return count, nil
}

// Update updates an existing event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET event_name = $2, event_date = $3, semester = $4, cutoff_time = $5
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query,
		event.ID, event.EventName, event.EventDate, event.Semester, event.CutoffTime)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	return nil
}

// Delete removes an event; ledger rows cascade at the schema level
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	return nil
}

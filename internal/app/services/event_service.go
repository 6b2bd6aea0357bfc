package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/app/repositories"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
	"github.com/keiji0711/final-final/internal/pkg/validation"
)

// EventService manages trackable events
type EventService struct {
	eventRepo      *repositories.EventRepository
	attendanceRepo *repositories.AttendanceRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo *repositories.EventRepository, attendanceRepo *repositories.AttendanceRepository) *EventService {
	return &EventService{
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
	}
}

// CreateEvent registers an event. The cutoff time is optional; when present it
// must be a 24-hour HH:MM wall-clock value and time-ins after that instant on
// the event day are rejected.
func (s *EventService) CreateEvent(ctx context.Context, name, date, semester string, cutoff *string) (*models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" || date == "" || semester == "" {
		return nil, apperrors.ErrMissingFields
	}
	if !validation.IsValidDate(date) {
		return nil, apperrors.NewValidationError("event date must be in YYYY-MM-DD format")
	}

	cutoff, err := normalizeCutoff(cutoff)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		EventName:  name,
		EventDate:  date,
		Semester:   semester,
		CutoffTime: cutoff,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	return event, nil
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

// ListEvents returns all events ordered by date.
func (s *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return events, nil
}

// UpdateEvent changes an event's details.
func (s *EventService) UpdateEvent(ctx context.Context, id int64, name, date, semester string, cutoff *string) (*models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" || date == "" || semester == "" {
		return nil, apperrors.ErrMissingFields
	}
	if !validation.IsValidDate(date) {
		return nil, apperrors.NewValidationError("event date must be in YYYY-MM-DD format")
	}

	cutoff, err := normalizeCutoff(cutoff)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		ID:         id,
		EventName:  name,
		EventDate:  date,
		Semester:   semester,
		CutoffTime: cutoff,
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if err == repositories.ErrEventNotFound {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error updating event: %w", err)
	}

	return event, nil
}

// ListAttendance returns the event's attendance sheet: every ledger row
// joined with the student's name, ordered by date then name.
func (s *EventService) ListAttendance(ctx context.Context, id int64) ([]*repositories.EventAttendanceRow, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	rows, err := s.attendanceRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}
	return rows, nil
}

// DeleteEvent removes an event and cascades away its attendance rows.
func (s *EventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if err == repositories.ErrEventNotFound {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("error deleting event: %w", err)
	}
	return nil
}

// normalizeCutoff maps an empty cutoff to nil and validates the HH:MM format.
func normalizeCutoff(cutoff *string) (*string, error) {
	if cutoff == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*cutoff)
	if trimmed == "" {
		return nil, nil
	}
	if !validation.IsValidCutoff(trimmed) {
		return nil, apperrors.ErrInvalidCutoff
	}
	return &trimmed, nil
}

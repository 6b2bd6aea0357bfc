package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/app/repositories"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
)

type fakeRoster struct {
	students map[string]*models.Student
}

func (f *fakeRoster) GetByUSN(_ context.Context, usn string) (*models.Student, error) {
	return f.students[usn], nil
}

type fakeCatalog struct {
	events map[int64]*models.Event
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*models.Event, error) {
	return f.events[id], nil
}

type fakeLedger struct {
	records map[string]*models.AttendanceRecord

	// When set, the next Insert fails with this error
	failNextInsert error

	// When set, the next GetForDate reports no record even if one exists,
	// simulating a read that raced a concurrent insert
	staleNextRead bool
}

func ledgerKey(eventID int64, usn, date string) string {
	return fmt.Sprintf("%d|%s|%s", eventID, usn, date)
}

func (f *fakeLedger) GetForDate(_ context.Context, eventID int64, usn, date string) (*models.AttendanceRecord, error) {
	if f.staleNextRead {
		f.staleNextRead = false
		return nil, nil
	}
	return f.records[ledgerKey(eventID, usn, date)], nil
}

func (f *fakeLedger) Insert(_ context.Context, record *models.AttendanceRecord) error {
	if f.failNextInsert != nil {
		err := f.failNextInsert
		f.failNextInsert = nil
		return err
	}
	key := ledgerKey(record.EventID, record.USN, record.Date)
	if _, exists := f.records[key]; exists {
		return repositories.ErrDuplicateAttendance
	}
	f.records[key] = record
	return nil
}

func (f *fakeLedger) UpdateTimeOut(_ context.Context, eventID int64, usn, date, timeOut string) error {
	record, ok := f.records[ledgerKey(eventID, usn, date)]
	if !ok {
		return repositories.ErrAttendanceNotFound
	}
	record.TimeOut = timeOut
	return nil
}

type capturePublisher struct {
	updates []*models.AttendanceUpdate
}

func (p *capturePublisher) PublishAttendance(update *models.AttendanceUpdate) {
	p.updates = append(p.updates, update)
}

func cutoff(s string) *string { return &s }

func newScanFixture(t *testing.T, event *models.Event) (*AttendanceService, *fakeLedger, *capturePublisher) {
	t.Helper()

	roster := &fakeRoster{students: map[string]*models.Student{
		"22000745800": {USN: "22000745800", Name: "Juan Dela Cruz", Course: "BSIT"},
	}}
	catalog := &fakeCatalog{events: map[int64]*models.Event{event.ID: event}}
	ledger := &fakeLedger{records: map[string]*models.AttendanceRecord{}}
	publisher := &capturePublisher{}

	svc := NewAttendanceService(roster, catalog, ledger, publisher, zerolog.Nop())
	return svc, ledger, publisher
}

func at(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 9, 12, hour, minute, 0, 0, time.Local)
	}
}

func TestRecordScanTimeInBeforeCutoff(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12", CutoffTime: cutoff("09:00")}
	svc, ledger, publisher := newScanFixture(t, event)
	svc.now = at(8, 59)

	update, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	require.NoError(t, err)

	assert.Equal(t, "8:59 AM", update.TimeIn)
	assert.Equal(t, "", update.TimeOut)
	assert.Equal(t, "Juan Dela Cruz", update.Name)
	assert.Equal(t, "2025-09-12", update.Date)

	record := ledger.records[ledgerKey(1, "22000745800", "2025-09-12")]
	require.NotNil(t, record)
	assert.Equal(t, "8:59 AM", record.TimeIn)

	require.Len(t, publisher.updates, 1)
	assert.Equal(t, update, publisher.updates[0])
}

func TestRecordScanTimeInAfterCutoff(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12", CutoffTime: cutoff("09:00")}
	svc, ledger, publisher := newScanFixture(t, event)
	svc.now = at(9, 1)

	_, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	assert.ErrorIs(t, err, apperrors.ErrCutoffExceeded)
	assert.Empty(t, ledger.records)
	assert.Empty(t, publisher.updates)
}

func TestRecordScanTimeInAtCutoffInstant(t *testing.T) {
	// Only instants strictly after the cutoff are rejected
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12", CutoffTime: cutoff("09:00")}
	svc, _, _ := newScanFixture(t, event)
	svc.now = at(9, 0)

	update, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	require.NoError(t, err)
	assert.Equal(t, "9:00 AM", update.TimeIn)
}

func TestRecordScanTimeInWithoutCutoff(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "General Assembly", EventDate: "2025-09-12"}
	svc, _, _ := newScanFixture(t, event)
	svc.now = at(23, 30)

	update, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	require.NoError(t, err)
	assert.Equal(t, "11:30 PM", update.TimeIn)
}

func TestRecordScanDuplicateTimeIn(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12", CutoffTime: cutoff("09:00")}
	svc, ledger, publisher := newScanFixture(t, event)
	svc.now = at(8, 30)

	_, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	require.NoError(t, err)

	_, err = svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateTimeIn)

	// First write is untouched and only one update was broadcast
	record := ledger.records[ledgerKey(1, "22000745800", "2025-09-12")]
	assert.Equal(t, "8:30 AM", record.TimeIn)
	assert.Len(t, publisher.updates, 1)
}

func TestRecordScanTimeInLosesInsertRace(t *testing.T) {
	// GetForDate saw no record but a concurrent scan inserted one first
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12"}
	svc, ledger, publisher := newScanFixture(t, event)
	svc.now = at(8, 30)
	ledger.failNextInsert = repositories.ErrDuplicateAttendance

	_, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateTimeIn)
	assert.Empty(t, publisher.updates)
}

func TestRecordScanTimeOutWithoutTimeIn(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12", CutoffTime: cutoff("09:00")}
	svc, ledger, publisher := newScanFixture(t, event)
	svc.now = at(10, 0)

	update, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeOut)
	require.NoError(t, err)

	assert.Equal(t, models.TimeInLate, update.TimeIn)
	assert.Equal(t, "10:00 AM", update.TimeOut)

	record := ledger.records[ledgerKey(1, "22000745800", "2025-09-12")]
	require.NotNil(t, record)
	assert.Equal(t, models.TimeInLate, record.TimeIn)
	assert.Equal(t, "10:00 AM", record.TimeOut)
	assert.Len(t, publisher.updates, 1)
}

func TestRecordScanTimeOutAfterTimeIn(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12", CutoffTime: cutoff("09:00")}
	svc, ledger, _ := newScanFixture(t, event)

	svc.now = at(8, 59)
	_, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	require.NoError(t, err)

	svc.now = at(16, 30)
	update, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeOut)
	require.NoError(t, err)

	// Time-in is immutable, only the time-out changes
	assert.Equal(t, "8:59 AM", update.TimeIn)
	assert.Equal(t, "4:30 PM", update.TimeOut)

	record := ledger.records[ledgerKey(1, "22000745800", "2025-09-12")]
	assert.Equal(t, "8:59 AM", record.TimeIn)
	assert.Equal(t, "4:30 PM", record.TimeOut)
}

func TestRecordScanRepeatedTimeOutLastWriteWins(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12"}
	svc, ledger, _ := newScanFixture(t, event)

	svc.now = at(8, 0)
	_, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	require.NoError(t, err)

	svc.now = at(15, 0)
	_, err = svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeOut)
	require.NoError(t, err)

	svc.now = at(17, 45)
	update, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeOut)
	require.NoError(t, err)

	assert.Equal(t, "5:45 PM", update.TimeOut)
	record := ledger.records[ledgerKey(1, "22000745800", "2025-09-12")]
	assert.Equal(t, "5:45 PM", record.TimeOut)
}

func TestRecordScanTimeOutLosesInsertRace(t *testing.T) {
	// The "Late" insert loses against a concurrent scan; the loser falls back
	// to updating the winner's row.
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12"}
	svc, ledger, publisher := newScanFixture(t, event)
	svc.now = at(10, 0)

	ledger.records[ledgerKey(1, "22000745800", "2025-09-12")] = &models.AttendanceRecord{
		EventID: 1, USN: "22000745800", Date: "2025-09-12", TimeIn: "8:59 AM",
	}
	ledger.staleNextRead = true

	update, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeOut)
	require.NoError(t, err)

	assert.Equal(t, "8:59 AM", update.TimeIn)
	assert.Equal(t, "10:00 AM", update.TimeOut)
	assert.Len(t, publisher.updates, 1)
}

func TestRecordScanUnknownStudent(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12"}
	svc, _, _ := newScanFixture(t, event)
	svc.now = at(8, 0)

	_, err := svc.RecordScan(context.Background(), "99999999999", 1, models.ActionTimeIn)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRecordScanUnknownEvent(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12"}
	svc, _, _ := newScanFixture(t, event)
	svc.now = at(8, 0)

	_, err := svc.RecordScan(context.Background(), "22000745800", 42, models.ActionTimeIn)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestRecordScanInvalidAction(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12"}
	svc, ledger, publisher := newScanFixture(t, event)
	svc.now = at(8, 0)

	_, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ScanAction("check_in"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAction)
	assert.Empty(t, ledger.records)
	assert.Empty(t, publisher.updates)
}

func TestRecordScanMissingFields(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12"}
	svc, _, _ := newScanFixture(t, event)

	_, err := svc.RecordScan(context.Background(), "   ", 1, models.ActionTimeIn)
	assert.ErrorIs(t, err, apperrors.ErrMissingFields)

	_, err = svc.RecordScan(context.Background(), "22000745800", 0, models.ActionTimeIn)
	assert.ErrorIs(t, err, apperrors.ErrMissingFields)
}

func TestRecordScanWithoutPublisher(t *testing.T) {
	event := &models.Event{ID: 1, EventName: "Intramurals", EventDate: "2025-09-12"}
	roster := &fakeRoster{students: map[string]*models.Student{
		"22000745800": {USN: "22000745800", Name: "Juan Dela Cruz", Course: "BSIT"},
	}}
	catalog := &fakeCatalog{events: map[int64]*models.Event{1: event}}
	ledger := &fakeLedger{records: map[string]*models.AttendanceRecord{}}

	svc := NewAttendanceService(roster, catalog, ledger, nil, zerolog.Nop())
	svc.now = at(8, 0)

	_, err := svc.RecordScan(context.Background(), "22000745800", 1, models.ActionTimeIn)
	assert.NoError(t, err)
}

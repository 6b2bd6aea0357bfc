package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/app/repositories"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
)

type fakeRosterReader struct {
	students map[string]*models.Student
}

func (f *fakeRosterReader) GetByUSN(_ context.Context, usn string) (*models.Student, error) {
	return f.students[usn], nil
}

func (f *fakeRosterReader) Count(_ context.Context) (int, error) {
	return len(f.students), nil
}

type fakeCatalogReader struct {
	events []*models.Event
}

func (f *fakeCatalogReader) GetByID(_ context.Context, id int64) (*models.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogReader) GetAll(_ context.Context) ([]*models.Event, error) {
	return f.events, nil
}

func (f *fakeCatalogReader) Count(_ context.Context) (int, error) {
	return len(f.events), nil
}

type fakeStats struct {
	present   int
	late      int
	attended  int
	noTimeout int
	history   []*repositories.StudentHistoryRow
}

func (f *fakeStats) CountPresentLateForEvents(_ context.Context, _ []int64) (int, int, error) {
	return f.present, f.late, nil
}

func (f *fakeStats) CountPresentLateByEvent(_ context.Context, _ int64) (int, int, error) {
	return f.present, f.late, nil
}

func (f *fakeStats) CountAttendedLateByStudent(_ context.Context, _ string) (int, int, error) {
	return f.attended, f.late, nil
}

func (f *fakeStats) CountNoTimeoutByStudent(_ context.Context, _ string) (int, error) {
	return f.noTimeout, nil
}

func (f *fakeStats) HistoryByStudent(_ context.Context, _ string) ([]*repositories.StudentHistoryRow, error) {
	return f.history, nil
}

func threeStudents() map[string]*models.Student {
	return map[string]*models.Student{
		"10000000001": {USN: "10000000001", Name: "Ana Reyes", Course: "BSIT"},
		"10000000002": {USN: "10000000002", Name: "Ben Santos", Course: "BSCS"},
		"10000000003": {USN: "10000000003", Name: "Cara Lim", Course: "BSIT"},
	}
}

func TestGlobalStats(t *testing.T) {
	students := &fakeRosterReader{students: threeStudents()}
	events := &fakeCatalogReader{events: []*models.Event{
		{ID: 1, EventName: "Opening", EventDate: "2025-09-12"},
		{ID: 2, EventName: "Closing", EventDate: "2025-09-13"},
	}}
	stats := &fakeStats{present: 3, late: 1}

	svc := NewDashboardService(students, events, stats)

	got, err := svc.GlobalStats(context.Background())
	require.NoError(t, err)

	// 3 students x 2 events = 6 slots; 3 present, 1 late, 2 absent
	assert.Equal(t, 3, got.TotalStudents)
	assert.Equal(t, 2, got.TotalEvents)
	assert.Equal(t, 3, got.TotalPresent)
	assert.Equal(t, 1, got.TotalLate)
	assert.Equal(t, 2, got.TotalAbsent)
	assert.Equal(t, "50.0%", got.AttendanceRate)
	assert.Equal(t, "16.7%", got.LatePercentage)
	assert.Equal(t, "33.3%", got.AbsentPercentage)
}

func TestGlobalStatsEmptySystem(t *testing.T) {
	svc := NewDashboardService(
		&fakeRosterReader{students: map[string]*models.Student{}},
		&fakeCatalogReader{},
		&fakeStats{},
	)

	got, err := svc.GlobalStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, got.TotalAbsent)
	assert.Equal(t, "0%", got.AttendanceRate)
	assert.Equal(t, "0%", got.LatePercentage)
	assert.Equal(t, "0%", got.AbsentPercentage)
}

func TestEventStats(t *testing.T) {
	students := &fakeRosterReader{students: threeStudents()}
	events := &fakeCatalogReader{events: []*models.Event{
		{ID: 1, EventName: "Opening", EventDate: "2025-09-12"},
	}}
	stats := &fakeStats{present: 1, late: 1}

	svc := NewDashboardService(students, events, stats)

	got, err := svc.EventStats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Opening", got.Event.EventName)
	assert.Equal(t, 1, got.Present)
	assert.Equal(t, 1, got.Late)
	assert.Equal(t, 1, got.Absent)
}

func TestEventStatsUnknownEvent(t *testing.T) {
	svc := NewDashboardService(
		&fakeRosterReader{students: threeStudents()},
		&fakeCatalogReader{},
		&fakeStats{},
	)

	_, err := svc.EventStats(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestStudentProfile(t *testing.T) {
	students := &fakeRosterReader{students: threeStudents()}
	events := &fakeCatalogReader{events: []*models.Event{
		{ID: 1, EventName: "Opening", EventDate: "2025-09-12"},
		{ID: 2, EventName: "Seminar", EventDate: "2025-09-20"},
		{ID: 3, EventName: "Closing", EventDate: "2025-10-01"},
	}}
	stats := &fakeStats{
		attended:  1,
		late:      1,
		noTimeout: 1,
		history: []*repositories.StudentHistoryRow{
			{EventID: 3, EventName: "Closing", EventDate: "2025-10-01", TimeIn: "", TimeOut: ""},
			{EventID: 2, EventName: "Seminar", EventDate: "2025-09-20", TimeIn: "Late", TimeOut: "4:00 PM"},
			{EventID: 1, EventName: "Opening", EventDate: "2025-09-12", TimeIn: "8:59 AM", TimeOut: ""},
		},
	}

	svc := NewDashboardService(students, events, stats)

	got, err := svc.StudentProfile(context.Background(), "10000000001")
	require.NoError(t, err)

	assert.Equal(t, "Ana Reyes", got.Student.Name)
	assert.Equal(t, 1, got.Attended)
	assert.Equal(t, 1, got.Late)
	assert.Equal(t, 1, got.Missed)
	assert.Equal(t, 1, got.NoTimeout)

	require.Len(t, got.History, 3)
	assert.Equal(t, models.StatusMissed, got.History[0].Status)
	assert.Equal(t, models.StatusLate, got.History[1].Status)
	assert.Equal(t, models.StatusAttended, got.History[2].Status)
}

func TestStudentProfileUnknownStudent(t *testing.T) {
	svc := NewDashboardService(
		&fakeRosterReader{students: map[string]*models.Student{}},
		&fakeCatalogReader{},
		&fakeStats{},
	)

	_, err := svc.StudentProfile(context.Background(), "99999999999")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		total int
		want  string
	}{
		{"zero total", 5, 0, "0%"},
		{"zero part", 0, 8, "0.0%"},
		{"half", 1, 2, "50.0%"},
		{"rounding", 1, 3, "33.3%"},
		{"full", 7, 7, "100.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPercent(tt.part, tt.total))
		})
	}
}

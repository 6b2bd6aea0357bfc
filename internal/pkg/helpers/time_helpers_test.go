package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClockTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"morning no leading zero", time.Date(2025, 9, 12, 8, 59, 0, 0, time.UTC), "8:59 AM"},
		{"noon", time.Date(2025, 9, 12, 12, 0, 0, 0, time.UTC), "12:00 PM"},
		{"midnight", time.Date(2025, 9, 12, 0, 5, 0, 0, time.UTC), "12:05 AM"},
		{"afternoon", time.Date(2025, 9, 12, 16, 30, 0, 0, time.UTC), "4:30 PM"},
		{"double digit hour", time.Date(2025, 9, 12, 23, 59, 0, 0, time.UTC), "11:59 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClockTime(tt.in))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-09-12", FormatDate(time.Date(2025, 9, 12, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-05", FormatDate(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestCutoffInstant(t *testing.T) {
	now := time.Date(2025, 9, 12, 14, 30, 0, 0, time.UTC)

	instant, err := CutoffInstant(now, "09:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 12, 9, 0, 0, 0, time.UTC), instant)

	// Whitespace tolerated, bad formats rejected
	_, err = CutoffInstant(now, " 17:45 ")
	assert.NoError(t, err)

	_, err = CutoffInstant(now, "9am")
	assert.Error(t, err)

	_, err = CutoffInstant(now, "")
	assert.Error(t, err)
}

func TestIsAfterCutoff(t *testing.T) {
	day := func(hour, minute, second int) time.Time {
		return time.Date(2025, 9, 12, hour, minute, second, 0, time.UTC)
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before cutoff", day(8, 59, 59), false},
		{"exactly at cutoff", day(9, 0, 0), false},
		{"second after cutoff", day(9, 0, 1), true},
		{"well after cutoff", day(15, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsAfterCutoff(tt.now, "09:00")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 8*time.Hour, ParseDuration("8h", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
}

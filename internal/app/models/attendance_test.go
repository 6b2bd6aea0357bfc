package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		timeIn string
		want   AttendanceStatus
	}{
		{"", StatusMissed},
		{"Absent", StatusMissed},
		{"Late", StatusLate},
		{"8:59 AM", StatusAttended},
		{"12:00 PM", StatusAttended},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveStatus(tt.timeIn), "timeIn=%q", tt.timeIn)
	}
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportFilename(t *testing.T) {
	tests := []struct {
		eventName string
		want      string
	}{
		{"Intramurals Opening", "Intramurals_Opening_attendance.xlsx"},
		{"Foundation Day 2025", "Foundation_Day_2025_attendance.xlsx"},
		{"Q&A: Seminar/Workshop", "QA_SeminarWorkshop_attendance.xlsx"},
		{"///", "event_attendance.xlsx"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, exportFilename(tt.eventName), tt.eventName)
	}
}

package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Layouts for the stored text representations. ClockLayout is 12-hour with no
// leading zero on the hour ("9:05 AM", "12:40 PM"); this exact string is what
// gets persisted in the ledger and compared against the sentinels.
const (
	ClockLayout  = "3:04 PM"
	DateLayout   = "2006-01-02"
	CutoffLayout = "15:04"
)

// FormatClockTime renders a wall-clock time for storage and broadcast
func FormatClockTime(t time.Time) string {
	return t.Format(ClockLayout)
}

// FormatDate renders the calendar date of a timestamp
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CutoffInstant combines an "HH:MM" cutoff with the calendar date of now.
// The cutoff never rolls into the next day.
func CutoffInstant(now time.Time, cutoff string) (time.Time, error) {
	parsed, err := time.Parse(CutoffLayout, strings.TrimSpace(cutoff))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cutoff time %q: %w", cutoff, err)
	}

	return time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location()), nil
}

// IsAfterCutoff reports whether now is strictly after today's cutoff instant
func IsAfterCutoff(now time.Time, cutoff string) (bool, error) {
	instant, err := CutoffInstant(now, cutoff)
	if err != nil {
		return false, err
	}

	return now.After(instant), nil
}

// ParseDuration parses a duration string, returns the default duration on error
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

package validation

import "regexp"

// Validation rule patterns
var (
	// USN / barcode pattern - digits only, campus IDs run up to 11 digits
	USNPattern = `^\d{5,16}$`

	// Cutoff time pattern - 24-hour "HH:MM"
	CutoffPattern = `^([01]\d|2[0-3]):[0-5]\d$`

	// Event date pattern - ISO calendar date
	DatePattern = `^\d{4}-\d{2}-\d{2}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	USN    *regexp.Regexp
	Cutoff *regexp.Regexp
	Date   *regexp.Regexp
}{
	USN:    regexp.MustCompile(USNPattern),
	Cutoff: regexp.MustCompile(CutoffPattern),
	Date:   regexp.MustCompile(DatePattern),
}

// IsValidUSN reports whether s looks like a student barcode token
func IsValidUSN(s string) bool {
	return CompiledPatterns.USN.MatchString(s)
}

// IsValidCutoff reports whether s is a valid "HH:MM" cutoff
func IsValidCutoff(s string) bool {
	return CompiledPatterns.Cutoff.MatchString(s)
}

// IsValidDate reports whether s is a valid "YYYY-MM-DD" date string
func IsValidDate(s string) bool {
	return CompiledPatterns.Date.MatchString(s)
}

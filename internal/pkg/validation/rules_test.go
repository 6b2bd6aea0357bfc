package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUSN(t *testing.T) {
	valid := []string{"12345", "22000745800", "1234567890123456"}
	for _, usn := range valid {
		assert.True(t, IsValidUSN(usn), usn)
	}

	invalid := []string{"", "1234", "12345678901234567", "22-000-745", "22000745800 ", "abc12345"}
	for _, usn := range invalid {
		assert.False(t, IsValidUSN(usn), usn)
	}
}

func TestIsValidCutoff(t *testing.T) {
	valid := []string{"00:00", "09:00", "13:45", "23:59"}
	for _, c := range valid {
		assert.True(t, IsValidCutoff(c), c)
	}

	invalid := []string{"", "24:00", "9:00", "09:60", "0900", "09:00 AM"}
	for _, c := range invalid {
		assert.False(t, IsValidCutoff(c), c)
	}
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2025-09-12"))
	assert.False(t, IsValidDate("2025-9-12"))
	assert.False(t, IsValidDate("12/09/2025"))
	assert.False(t, IsValidDate(""))
}

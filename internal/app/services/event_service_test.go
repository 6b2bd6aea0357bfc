package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiji0711/final-final/internal/pkg/apperrors"
)

func TestNormalizeCutoff(t *testing.T) {
	got, err := normalizeCutoff(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	empty := "   "
	got, err = normalizeCutoff(&empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	padded := " 09:00 "
	got, err = normalizeCutoff(&padded)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "09:00", *got)

	bad := "9am"
	_, err = normalizeCutoff(&bad)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCutoff)

	twelveHour := "09:00 AM"
	_, err = normalizeCutoff(&twelveHour)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCutoff)
}

package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanRateLimiterExhaustsBurst(t *testing.T) {
	limiter := NewScanRateLimiter(3, 60)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.allow("10.0.0.1"), "request %d should pass", i)
	}
	assert.False(t, limiter.allow("10.0.0.1"))
}

func TestScanRateLimiterIsolatesClients(t *testing.T) {
	limiter := NewScanRateLimiter(1, 60)

	assert.True(t, limiter.allow("10.0.0.1"))
	assert.False(t, limiter.allow("10.0.0.1"))

	// A different station has its own bucket
	assert.True(t, limiter.allow("10.0.0.2"))
}

func TestScanRateLimiterDefaultsCapacity(t *testing.T) {
	limiter := NewScanRateLimiter(0, 2)

	assert.True(t, limiter.allow("10.0.0.1"))
	assert.True(t, limiter.allow("10.0.0.1"))
	assert.False(t, limiter.allow("10.0.0.1"))
}

package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/keiji0711/final-final/internal/app/models"
)

func TestPublishAttendanceNeverBlocks(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	// No broadcast loop is running, so the buffer fills up; publishes past
	// capacity must drop instead of blocking the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			hub.PublishAttendance(&models.AttendanceUpdate{USN: "22000745800"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("PublishAttendance blocked on a full broadcast buffer")
	}
}

func TestClientCountStartsEmpty(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	assert.Equal(t, 0, hub.ClientCount())
}

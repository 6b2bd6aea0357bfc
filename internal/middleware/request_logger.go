package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keiji0711/final-final/internal/pkg/logger"
)

// RequestLogger logs every request with method, path, status and latency.
// Health and metrics probes are skipped to keep the log readable.
func RequestLogger(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		event := logger.Info()
		if c.Writer.Status() >= 500 {
			event = logger.Error()
		} else if c.Writer.Status() >= 400 {
			event = logger.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Str("clientIP", c.ClientIP()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}

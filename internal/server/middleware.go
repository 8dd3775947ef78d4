package server

import (
	"strconv"
	"time"

	"allyoucangym/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records count and latency per route template, so
// /api/sessions/:sessionId is one series regardless of the id.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}

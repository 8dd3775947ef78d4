package server

import (
	"context"
	"net/http"
	"time"

	"allyoucangym/internal/api"
	"allyoucangym/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type queueInspector interface {
	QueueLength(ctx context.Context) int64
}

// Health godoc
// @Summary      Health check
// @Description  Reports database reachability and the pending email count.
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Failure      503 {object} api.HealthResponse
// @Router       /health [get]
func Health(db pinger, queue queueInspector) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		res := api.HealthResponse{Status: "ok", Database: "ok"}
		if err := db.PingContext(ctx); err != nil {
			logger.Warn("health check: database unreachable", "error", err)
			res.Status = "degraded"
			res.Database = "unreachable"
		}
		if queue != nil {
			res.EmailQueue = queue.QueueLength(ctx)
		}

		status := http.StatusOK
		if res.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, res)
	}
}

// Metrics godoc
// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/percentquiz/scoring-backend/internal/database"
	apperrors "github.com/percentquiz/scoring-backend/internal/errors"
)

// HealthChecker is the part of the database wrapper the health endpoints use
type HealthChecker interface {
	HealthCheckContext(ctx context.Context) error
	GetStats() database.Stats
}

// HealthHandler serves liveness and database health
type HealthHandler struct {
	db HealthChecker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db HealthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports that the process is up
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// DatabaseHealth pings the store and reports pool statistics
func (h *HealthHandler) DatabaseHealth(c *gin.Context) {
	ctx, cancel := requestContext(c, readTimeout)
	defer cancel()

	stats := h.db.GetStats()
	body := gin.H{
		"status":           "healthy",
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
	}

	if err := h.db.HealthCheckContext(ctx); err != nil {
		_ = c.Error(apperrors.InternalError("database unreachable", err).WithOperation("DatabaseHealth"))
		body["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	c.JSON(http.StatusOK, body)
}

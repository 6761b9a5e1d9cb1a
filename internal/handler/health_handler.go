package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alixtron0/tour-backoffice/internal/cache"
	"github.com/alixtron0/tour-backoffice/internal/database"
)

// HealthHandler reports service liveness and readiness
type HealthHandler struct {
	db      *database.PostgresDB
	cache   *cache.Client
	service string
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *database.PostgresDB, cacheClient *cache.Client, service, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cacheClient,
		service: service,
		version: version,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   h.service,
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready. It checks the database and, when caching is
// enabled, Redis.
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		healthy = false
	} else {
		checks["database"] = "healthy"
	}

	if h.cache != nil {
		if err := h.cache.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks["redis"] = "healthy"
		}
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "not ready"
	}
	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}

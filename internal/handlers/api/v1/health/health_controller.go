// file: internal/handlers/api/v1/health/health_controller.go
package health

import (
	"net/http"
	"time"

	"ecotrack/internal/database"
	"ecotrack/internal/monitoring"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"go.uber.org/zap"
)

// Controller handles health probe endpoints
type Controller struct {
	services *services.ServiceCollection
	metrics  *monitoring.Collector
	logger   *zap.Logger
	builder  *response.Builder
	started  time.Time
}

// NewController creates a new health controller
func NewController(services *services.ServiceCollection, metrics *monitoring.Collector, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{
		services: services,
		metrics:  metrics,
		logger:   logger,
		builder:  builder,
		started:  time.Now(),
	}
}

type healthReport struct {
	Status    string                 `json:"status"`
	Uptime    string                 `json:"uptime"`
	Timestamp time.Time              `json:"timestamp"`
	Database  *database.HealthStatus `json:"database"`
	Cache     string                 `json:"cache"`
}

// Health handles GET /health
func (c *Controller) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := c.services.DBManager.Health(r.Context())

	cacheStatus := "healthy"
	if err := c.services.Cache.Health(r.Context()); err != nil {
		cacheStatus = "unhealthy"
	}

	report := &healthReport{
		Status:    "healthy",
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
		Database:  dbStatus,
		Cache:     cacheStatus,
	}

	status := http.StatusOK
	if dbStatus.Status == database.StatusUnhealthy {
		report.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	} else if dbStatus.Status == database.StatusDegraded || cacheStatus != "healthy" {
		report.Status = "degraded"
	}

	c.builder.Success(w, r, status, report)
}

// Metrics handles GET /health/metrics
func (c *Controller) Metrics(w http.ResponseWriter, r *http.Request) {
	c.builder.Success(w, r, http.StatusOK, c.metrics.Stats())
}

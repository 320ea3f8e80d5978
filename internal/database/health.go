// file: internal/database/health.go
package database

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Health status values reported by the checker.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthStatus is the result of one health check pass.
type HealthStatus struct {
	Status          string        `json:"status"`
	ResponseTime    time.Duration `json:"response_time"`
	OpenConnections int           `json:"open_connections"`
	InUse           int           `json:"in_use"`
	Idle            int           `json:"idle"`
	WaitCount       int64         `json:"wait_count"`
	Errors          []string      `json:"errors,omitempty"`
	CheckedAt       time.Time     `json:"checked_at"`
}

// HealthChecker probes the database pool.
type HealthChecker struct {
	manager *Manager
	logger  *zap.Logger
}

// NewHealthChecker creates a health checker bound to a manager.
func NewHealthChecker(manager *Manager, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{manager: manager, logger: logger}
}

// Check pings the database and samples pool statistics. A ping slower than
// one second degrades the status; a failed ping marks it unhealthy.
func (h *HealthChecker) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    StatusHealthy,
		CheckedAt: time.Now().UTC(),
	}

	db := h.manager.DB()
	if db == nil {
		status.Status = StatusUnhealthy
		status.Errors = append(status.Errors, "database connection is closed")
		return status
	}

	start := time.Now()
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		status.Status = StatusUnhealthy
		status.Errors = append(status.Errors, err.Error())
		h.logger.Error("Database health check failed", zap.Error(err))
		return status
	}
	status.ResponseTime = time.Since(start)

	stats := db.Stats()
	status.OpenConnections = stats.OpenConnections
	status.InUse = stats.InUse
	status.Idle = stats.Idle
	status.WaitCount = stats.WaitCount

	if status.ResponseTime > time.Second {
		status.Status = StatusDegraded
		status.Errors = append(status.Errors, "slow database response")
	}

	return status
}

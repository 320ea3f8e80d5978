// file: internal/middleware/metrics.go
package middleware

import (
	"net/http"
	"time"

	"ecotrack/internal/monitoring"
)

// Metrics records per-request counters into the collector
func Metrics(collector *monitoring.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}
			collector.RecordRequest(r.URL.Path, status, time.Since(start))
		})
	}
}

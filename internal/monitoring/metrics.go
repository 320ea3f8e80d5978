// file: internal/monitoring/metrics.go
package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Collector accumulates request counters and exposes process stats
type Collector struct {
	startTime time.Time

	totalRequests  int64
	failedRequests int64

	mu              sync.Mutex
	statusCounts    map[int]int64
	totalDuration   time.Duration
	slowestPath     string
	slowestDuration time.Duration
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{
		startTime:    time.Now(),
		statusCounts: make(map[int]int64),
	}
}

// RecordRequest tracks one completed HTTP request
func (c *Collector) RecordRequest(path string, status int, duration time.Duration) {
	atomic.AddInt64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddInt64(&c.failedRequests, 1)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusCounts[status]++
	c.totalDuration += duration
	if duration > c.slowestDuration {
		c.slowestDuration = duration
		c.slowestPath = path
	}
}

// Snapshot is a point-in-time view of the collector
type Snapshot struct {
	Uptime          string        `json:"uptime"`
	TotalRequests   int64         `json:"total_requests"`
	FailedRequests  int64         `json:"failed_requests"`
	StatusCounts    map[int]int64 `json:"status_counts"`
	AverageDuration string        `json:"average_duration"`
	SlowestPath     string        `json:"slowest_path,omitempty"`
	SlowestDuration string        `json:"slowest_duration,omitempty"`
	Goroutines      int           `json:"goroutines"`
	HeapAllocBytes  uint64        `json:"heap_alloc_bytes"`
	NumGC           uint32        `json:"num_gc"`
}

// Stats returns a snapshot of request counters and runtime resources
func (c *Collector) Stats() *Snapshot {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.mu.Lock()
	defer c.mu.Unlock()

	total := atomic.LoadInt64(&c.totalRequests)
	snapshot := &Snapshot{
		Uptime:         time.Since(c.startTime).Round(time.Second).String(),
		TotalRequests:  total,
		FailedRequests: atomic.LoadInt64(&c.failedRequests),
		StatusCounts:   make(map[int]int64, len(c.statusCounts)),
		Goroutines:     runtime.NumGoroutine(),
		HeapAllocBytes: mem.HeapAlloc,
		NumGC:          mem.NumGC,
	}
	for status, count := range c.statusCounts {
		snapshot.StatusCounts[status] = count
	}
	if total > 0 {
		snapshot.AverageDuration = (c.totalDuration / time.Duration(total)).Round(time.Microsecond).String()
	}
	if c.slowestPath != "" {
		snapshot.SlowestPath = c.slowestPath
		snapshot.SlowestDuration = c.slowestDuration.Round(time.Microsecond).String()
	}

	return snapshot
}

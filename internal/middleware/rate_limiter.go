// file: internal/middleware/rate_limiter.go
package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"go.uber.org/zap"
)

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration
}

// DefaultRateLimitConfig returns the default per-client limit
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: 120,
		CleanupInterval:   5 * time.Minute,
	}
}

type clientWindow struct {
	count       int
	windowStart time.Time
}

// rateLimiter implements a fixed-window counter per client IP
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
	config  *RateLimitConfig
	logger  *zap.Logger
}

// RateLimit limits each client IP to a fixed number of requests per minute
func RateLimit(config *RateLimitConfig, builder *response.Builder, logger *zap.Logger) func(http.Handler) http.Handler {
	if config == nil {
		config = DefaultRateLimitConfig()
	}

	limiter := &rateLimiter{
		clients: make(map[string]*clientWindow),
		config:  config,
		logger:  logger,
	}
	go limiter.cleanup()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientIP(r)) {
				builder.Error(w, r, &services.ServiceError{
					Type:       "RATE_LIMIT",
					Message:    "too many requests",
					StatusCode: http.StatusTooManyRequests,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *rateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	window, ok := l.clients[ip]
	if !ok || now.Sub(window.windowStart) >= time.Minute {
		l.clients[ip] = &clientWindow{count: 1, windowStart: now}
		return true
	}

	window.count++
	if window.count > l.config.RequestsPerMinute {
		if window.count == l.config.RequestsPerMinute+1 {
			l.logger.Warn("Client rate limited", zap.String("ip", ip))
		}
		return false
	}
	return true
}

func (l *rateLimiter) cleanup() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-2 * time.Minute)
		for ip, window := range l.clients {
			if window.windowStart.Before(cutoff) {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

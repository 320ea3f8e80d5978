// file: internal/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ecotrack/internal/contextutils"
	"ecotrack/internal/services"

	"go.uber.org/zap"
)

// ===============================
// RESPONSE TYPES
// ===============================

// APIResponse represents a standardized API response
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Timestamp int64        `json:"timestamp,omitempty"`
}

// ErrorDetail represents error information in API responses
type ErrorDetail struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ===============================
// BUILDER
// ===============================

// Builder writes API responses with consistent shape and logging
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a new response builder
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// Success writes a successful response with the given status code
func (b *Builder) Success(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	b.write(w, r, status, &APIResponse{
		Success:   true,
		Data:      data,
		RequestID: contextutils.GetRequestID(r.Context()),
		Timestamp: time.Now().Unix(),
	})
}

// Error writes an error response. Service errors carry their own status
// code and client-safe message; anything else becomes an opaque 500.
func (b *Builder) Error(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) {
		b.logger.Error("Unhandled error",
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		svcErr = services.NewInternalError("internal server error")
	}

	status := svcErr.GetStatusCode()
	if status >= http.StatusInternalServerError {
		b.logger.Error("Request failed",
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	b.write(w, r, status, &APIResponse{
		Success: false,
		Error: &ErrorDetail{
			Type:    svcErr.Type,
			Message: svcErr.Message,
			Code:    svcErr.Code,
			Details: svcErr.Details,
		},
		RequestID: contextutils.GetRequestID(r.Context()),
		Timestamp: time.Now().Unix(),
	})
}

// ValidationError writes a 400 for malformed request bodies
func (b *Builder) ValidationError(w http.ResponseWriter, r *http.Request, message string, cause error) {
	b.Error(w, r, services.NewValidationError(message, cause))
}

func (b *Builder) write(w http.ResponseWriter, r *http.Request, status int, payload *APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		b.logger.Error("Failed to encode response",
			zap.String("request_id", payload.RequestID),
			zap.Error(err),
		)
	}
}

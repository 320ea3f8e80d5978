// file: internal/handlers/api/v1/footprint/footprint_controller.go
package footprint

import (
	"encoding/json"
	"net/http"

	"ecotrack/internal/contextutils"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"go.uber.org/zap"
)

// Controller handles carbon footprint endpoints
type Controller struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewController creates a new footprint controller
func NewController(services *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{
		services: services,
		logger:   logger,
		builder:  builder,
	}
}

// Calculate handles POST /carbon-footprint/calculate. Anonymous callers get
// a new user plus a device token in the response.
func (c *Controller) Calculate(w http.ResponseWriter, r *http.Request) {
	var req services.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.ValidationError(w, r, "invalid request body", err)
		return
	}

	userID := contextutils.GetUserID(r.Context())

	result, err := c.services.AssessmentService.Calculate(r.Context(), userID, &req)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusCreated, result)
}

// GetCurrent handles GET /carbon-footprint/current
func (c *Controller) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	footprint, err := c.services.AssessmentService.GetCurrent(r.Context(), userID)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusOK, footprint)
}

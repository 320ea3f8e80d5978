// file: internal/handlers/api/v1/settings/settings_controller.go
package settings

import (
	"encoding/json"
	"net/http"

	"ecotrack/internal/contextutils"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"go.uber.org/zap"
)

// Controller handles user settings endpoints
type Controller struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewController creates a new settings controller
func NewController(services *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{
		services: services,
		logger:   logger,
		builder:  builder,
	}
}

// GetSettings handles GET /settings
func (c *Controller) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	settings, err := c.services.SettingsService.GetSettings(r.Context(), userID)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings
func (c *Controller) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.ValidationError(w, r, "invalid request body", err)
		return
	}

	userID := contextutils.GetUserID(r.Context())

	settings, err := c.services.SettingsService.UpdateSettings(r.Context(), userID, &req)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusOK, settings)
}

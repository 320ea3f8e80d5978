// file: internal/handlers/api/v1/rewards/rewards_controller.go
package rewards

import (
	"net/http"

	"ecotrack/internal/contextutils"
	"ecotrack/internal/models"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"go.uber.org/zap"
)

// Controller handles rewards ledger endpoints
type Controller struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewController creates a new rewards controller
func NewController(services *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{
		services: services,
		logger:   logger,
		builder:  builder,
	}
}

// GetSummary handles GET /rewards
func (c *Controller) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	summary, err := c.services.RewardsService.GetSummary(r.Context(), userID)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusOK, summary)
}

// ListBadges handles GET /rewards/badges
func (c *Controller) ListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := c.services.RewardsService.ListBadges(r.Context())
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	if badges == nil {
		badges = []*models.Badge{}
	}

	c.builder.Success(w, r, http.StatusOK, badges)
}

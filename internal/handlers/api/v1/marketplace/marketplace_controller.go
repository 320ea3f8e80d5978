// file: internal/handlers/api/v1/marketplace/marketplace_controller.go
package marketplace

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ecotrack/internal/contextutils"
	"ecotrack/internal/models"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Controller handles marketplace endpoints
type Controller struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewController creates a new marketplace controller
func NewController(services *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{
		services: services,
		logger:   logger,
		builder:  builder,
	}
}

// ListRewards handles GET /marketplace
func (c *Controller) ListRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := c.services.MarketplaceService.ListRewards(r.Context())
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	if rewards == nil {
		rewards = []*models.MarketplaceReward{}
	}

	c.builder.Success(w, r, http.StatusOK, rewards)
}

// GetReward handles GET /marketplace/{id}
func (c *Controller) GetReward(w http.ResponseWriter, r *http.Request) {
	rewardID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || rewardID <= 0 {
		c.builder.ValidationError(w, r, "invalid reward id", err)
		return
	}

	reward, err := c.services.MarketplaceService.GetReward(r.Context(), rewardID)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusOK, reward)
}

// Redeem handles POST /marketplace
func (c *Controller) Redeem(w http.ResponseWriter, r *http.Request) {
	var req services.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.ValidationError(w, r, "invalid request body", err)
		return
	}

	userID := contextutils.GetUserID(r.Context())

	result, err := c.services.MarketplaceService.Redeem(r.Context(), userID, &req)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusCreated, result)
}

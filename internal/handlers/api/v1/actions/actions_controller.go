// file: internal/handlers/api/v1/actions/actions_controller.go
package actions

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ecotrack/internal/contextutils"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxProofUploadBytes = 10 << 20

// Controller handles eco action endpoints
type Controller struct {
	services *services.ServiceCollection
	logger   *zap.Logger
	builder  *response.Builder
}

// NewController creates a new actions controller
func NewController(services *services.ServiceCollection, logger *zap.Logger, builder *response.Builder) *Controller {
	return &Controller{
		services: services,
		logger:   logger,
		builder:  builder,
	}
}

// LogAction handles POST /actions
func (c *Controller) LogAction(w http.ResponseWriter, r *http.Request) {
	var req services.LogActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.ValidationError(w, r, "invalid request body", err)
		return
	}

	userID := contextutils.GetUserID(r.Context())

	action, err := c.services.ActionService.LogAction(r.Context(), userID, &req)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusCreated, action)
}

// ListActions handles GET /actions
func (c *Controller) ListActions(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	list, err := c.services.ActionService.ListActions(r.Context(), userID)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusOK, list)
}

// VerifyAction handles POST /actions/{id}/verify
func (c *Controller) VerifyAction(w http.ResponseWriter, r *http.Request) {
	actionID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || actionID <= 0 {
		c.builder.ValidationError(w, r, "invalid action id", err)
		return
	}

	var req services.VerifyActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.ValidationError(w, r, "invalid request body", err)
		return
	}

	result, err := c.services.ActionService.VerifyAction(r.Context(), actionID, &req)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusOK, result)
}

// UploadProof handles POST /actions/proof multipart uploads
func (c *Controller) UploadProof(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	if err := r.ParseMultipartForm(maxProofUploadBytes); err != nil {
		c.builder.ValidationError(w, r, "invalid multipart form", err)
		return
	}

	file, header, err := r.FormFile("proof")
	if err != nil {
		c.builder.ValidationError(w, r, "proof file is required", err)
		return
	}
	defer file.Close()

	result, err := c.services.ActionService.UploadProof(r.Context(), userID, header.Filename, header.Size, file)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}

	c.builder.Success(w, r, http.StatusCreated, result)
}

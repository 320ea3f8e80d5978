// file: internal/services/action_service.go
package services

import (
	"context"
	"errors"
	"io"
	"time"

	"ecotrack/internal/cache"
	"ecotrack/internal/events"
	"ecotrack/internal/models"
	"ecotrack/internal/repositories"
	"ecotrack/internal/validation"

	"go.uber.org/zap"
)

// ===============================
// ACTION CATALOG
// ===============================

// actionSpec holds the fixed impact and reward of a known action type.
type actionSpec struct {
	Description     string
	CO2Kg           float64
	Points          int
	RequirementType string
}

var actionCatalog = map[string]actionSpec{
	"public_transport": {
		Description:     "Used public transportation",
		CO2Kg:           2.3,
		Points:          25,
		RequirementType: models.RequirementTransportActions,
	},
	"energy_saving": {
		Description:     "Reduced home energy usage",
		CO2Kg:           0.8,
		Points:          10,
		RequirementType: models.RequirementEnergyActions,
	},
	"recycling": {
		Description:     "Recycled household items",
		CO2Kg:           0.5,
		Points:          8,
		RequirementType: models.RequirementRecycleActions,
	},
	"plant_based_meal": {
		Description:     "Ate a plant-based meal",
		CO2Kg:           1.2,
		Points:          15,
		RequirementType: models.RequirementPlantMeals,
	},
	"water_conservation": {
		Description:     "Conserved water",
		CO2Kg:           0.3,
		Points:          5,
		RequirementType: models.RequirementWaterActions,
	},
	"active_transport": {
		Description:     "Walked or biked instead of driving",
		CO2Kg:           2.8,
		Points:          30,
		RequirementType: models.RequirementTransportActions,
	},
}

var defaultActionSpec = actionSpec{
	Description: "Eco-friendly action",
	CO2Kg:       1.0,
	Points:      10,
}

// specFor returns the catalog entry for an action type, falling back to the
// generic entry for unknown types.
func specFor(actionType string) actionSpec {
	if spec, ok := actionCatalog[actionType]; ok {
		return spec
	}
	return defaultActionSpec
}

// ===============================
// SERVICE
// ===============================

// actionService implements ActionService
type actionService struct {
	actions repositories.ActionRepository
	rewards repositories.RewardsRepository
	files   FileService
	cache   cache.Cache
	events  events.EventBus
	logger  *zap.Logger
}

// NewActionService creates a new action service
func NewActionService(
	repos *repositories.Collection,
	files FileService,
	cacheService cache.Cache,
	eventBus events.EventBus,
	logger *zap.Logger,
) ActionService {
	return &actionService{
		actions: repos.Action,
		rewards: repos.Rewards,
		files:   files,
		cache:   cacheService,
		events:  eventBus,
		logger:  logger,
	}
}

// LogAction records one eco action. The CO2 impact and the point value come
// from the catalog, never from the client. Actions submitted with proof
// start pending review; actions without proof wait for it.
func (s *actionService) LogAction(ctx context.Context, userID int64, req *LogActionRequest) (*models.EcoAction, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid action", err)
	}

	spec := specFor(req.ActionType)

	description := spec.Description
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	status := models.VerificationAwaitingProof
	if req.ProofURL != nil && *req.ProofURL != "" {
		status = models.VerificationPending
	}

	action := &models.EcoAction{
		UserID:             userID,
		ActionType:         req.ActionType,
		Description:        description,
		CO2Impact:          spec.CO2Kg,
		PointsEarned:       spec.Points,
		ProofURL:           req.ProofURL,
		ProofType:          req.ProofType,
		VerificationStatus: status,
	}
	if err := s.actions.Create(ctx, action); err != nil {
		return nil, NewInternalError("failed to store action")
	}

	s.events.Publish(ctx, events.NewActionLoggedEvent(userID, action.ID, action.ActionType, status))

	s.logger.Info("Eco action logged",
		zap.Int64("user_id", userID),
		zap.Int64("action_id", action.ID),
		zap.String("action_type", action.ActionType),
		zap.String("status", status),
	)

	return action, nil
}

// ListActions returns the user's actions, newest first, together with the
// subset logged today.
func (s *actionService) ListActions(ctx context.Context, userID int64) (*ActionListResult, error) {
	actions, err := s.actions.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to list actions")
	}
	if actions == nil {
		actions = []*models.EcoAction{}
	}

	todayActions, err := s.actions.ListByUserForDay(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, NewInternalError("failed to list today's actions")
	}
	if todayActions == nil {
		todayActions = []*models.EcoAction{}
	}

	return &ActionListResult{Actions: actions, TodayActions: todayActions}, nil
}

// VerifyAction resolves a submitted action. Verification credits the ledger
// exactly once; a second resolution attempt is a conflict.
func (s *actionService) VerifyAction(ctx context.Context, actionID int64, req *VerifyActionRequest) (*VerifyActionResult, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid verification", err)
	}

	action, err := s.actions.GetByID(ctx, actionID)
	if err != nil {
		return nil, NewInternalError("failed to load action")
	}
	if action == nil {
		return nil, NewNotFoundError("action not found")
	}

	if req.Status == models.VerificationRejected {
		if err := s.actions.Reject(ctx, actionID); err != nil {
			if errors.Is(err, repositories.ErrActionAlreadyResolved) {
				return nil, NewConflictError("action already resolved", "ACTION_RESOLVED")
			}
			return nil, NewInternalError("failed to reject action")
		}
		action.VerificationStatus = models.VerificationRejected

		s.events.Publish(ctx, events.NewActionRejectedEvent(action.UserID, action.ID))
		return &VerifyActionResult{Action: action}, nil
	}

	spec := specFor(action.ActionType)
	ledger, completedBadges, err := s.rewards.ApplyVerifiedAction(ctx, action, spec.RequirementType, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repositories.ErrActionAlreadyResolved) {
			return nil, NewConflictError("action already resolved", "ACTION_RESOLVED")
		}
		return nil, NewInternalError("failed to credit action")
	}
	action.VerificationStatus = models.VerificationVerified

	s.events.Publish(ctx, events.NewActionVerifiedEvent(
		action.UserID, action.ID, action.PointsEarned, ledger.TotalPoints, ledger.CurrentLevel))
	for _, badge := range completedBadges {
		s.events.Publish(ctx, events.NewBadgeCompletedEvent(action.UserID, badge))
	}

	if err := s.cache.Delete(ctx, currentFootprintKey(action.UserID)); err != nil {
		s.logger.Warn("Failed to invalidate footprint cache",
			zap.Int64("user_id", action.UserID), zap.Error(err))
	}

	return &VerifyActionResult{Action: action, Ledger: ledger}, nil
}

// UploadProof stores a proof file and returns its public URL.
func (s *actionService) UploadProof(ctx context.Context, userID int64, filename string, size int64, file io.Reader) (*ProofUploadResult, error) {
	return s.files.UploadProof(ctx, userID, filename, size, file)
}

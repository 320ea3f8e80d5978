// file: internal/services/assessment_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ecotrack/internal/cache"
	"ecotrack/internal/emissions"
	"ecotrack/internal/events"
	"ecotrack/internal/models"
	"ecotrack/internal/repositories"
	"ecotrack/internal/validation"

	"go.uber.org/zap"
)

const currentFootprintTTL = 5 * time.Minute

// assessmentService implements AssessmentService
type assessmentService struct {
	users       repositories.UserRepository
	assessments repositories.AssessmentRepository
	actions     repositories.ActionRepository
	rewards     repositories.RewardsRepository
	tokens      TokenService
	cache       cache.Cache
	events      events.EventBus
	logger      *zap.Logger
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	repos *repositories.Collection,
	tokens TokenService,
	cacheService cache.Cache,
	eventBus events.EventBus,
	logger *zap.Logger,
) AssessmentService {
	return &assessmentService{
		users:       repos.User,
		assessments: repos.Assessment,
		actions:     repos.Action,
		rewards:     repos.Rewards,
		tokens:      tokens,
		cache:       cacheService,
		events:      eventBus,
		logger:      logger,
	}
}

// Calculate estimates the footprint from the submitted answers, stores the
// assessment and returns the breakdown. Unknown callers get a fresh user
// with a seeded ledger and a device token for subsequent requests.
func (s *assessmentService) Calculate(ctx context.Context, userID int64, req *CalculateRequest) (*CalculateResult, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid calculation request", err)
	}

	result := &CalculateResult{}

	if userID == 0 {
		user, err := s.users.Create(ctx)
		if err != nil {
			return nil, NewInternalError("failed to create user")
		}
		userID = user.ID

		if err := s.rewards.SeedLedger(ctx, userID); err != nil {
			return nil, NewInternalError("failed to initialize rewards")
		}
		if err := s.rewards.SeedAchievements(ctx, userID); err != nil {
			return nil, NewInternalError("failed to initialize achievements")
		}

		token, err := s.tokens.Mint(userID)
		if err != nil {
			return nil, NewInternalError("failed to issue device token")
		}
		result.Token = token

		s.logger.Info("New user created from calculation", zap.Int64("user_id", userID))
	} else {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, NewInternalError("failed to load user")
		}
		if user == nil {
			return nil, NewUnauthorizedError("unknown user")
		}
	}

	breakdown := emissions.Estimate(req.Answers)

	raw, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, NewValidationError("answers are not serializable", err)
	}

	assessment := &models.Assessment{
		UserID:                  userID,
		AssessmentData:          raw,
		MonthlyEmissions:        breakdown.Monthly,
		YearlyEmissions:         breakdown.Yearly,
		TransportationEmissions: breakdown.Transportation,
		EnergyEmissions:         breakdown.Energy,
		DietEmissions:           breakdown.Diet,
		ShoppingEmissions:       breakdown.Shopping,
		WasteEmissions:          breakdown.Waste,
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, NewInternalError("failed to store assessment")
	}

	result.AssessmentID = assessment.ID
	result.UserID = userID
	result.Emissions = breakdown

	s.events.Publish(ctx, events.NewFootprintCalculatedEvent(userID, assessment.ID, breakdown.Yearly))

	if err := s.cache.Delete(ctx, currentFootprintKey(userID)); err != nil {
		s.logger.Warn("Failed to invalidate footprint cache",
			zap.Int64("user_id", userID), zap.Error(err))
	}

	return result, nil
}

// GetCurrent returns the latest stored assessment together with the CO2
// saved by today's verified actions.
func (s *assessmentService) GetCurrent(ctx context.Context, userID int64) (*CurrentFootprint, error) {
	key := currentFootprintKey(userID)

	var cached CurrentFootprint
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	assessment, err := s.assessments.GetLatest(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load assessment")
	}
	if assessment == nil {
		return nil, NewNotFoundError("no assessment found")
	}

	today := time.Now().UTC()

	savings, err := s.assessments.GetTodaySavings(ctx, userID, today)
	if err != nil {
		return nil, NewInternalError("failed to load today's savings")
	}

	todayActions, err := s.actions.ListByUserForDay(ctx, userID, today)
	if err != nil {
		return nil, NewInternalError("failed to load today's actions")
	}
	if todayActions == nil {
		todayActions = []*models.EcoAction{}
	}

	footprint := &CurrentFootprint{
		Assessment:   assessment,
		TodaySavings: savings,
		TodayActions: todayActions,
	}

	if err := s.cache.Set(ctx, key, footprint, currentFootprintTTL); err != nil {
		s.logger.Warn("Failed to cache footprint",
			zap.Int64("user_id", userID), zap.Error(err))
	}

	return footprint, nil
}

func currentFootprintKey(userID int64) string {
	return fmt.Sprintf("footprint:current:%d", userID)
}

// file: internal/services/rewards_service.go
package services

import (
	"context"
	"time"

	"ecotrack/internal/cache"
	"ecotrack/internal/models"
	"ecotrack/internal/repositories"

	"go.uber.org/zap"
)

const (
	badgeCatalogCacheKey = "rewards:badges:catalog"
	badgeCatalogCacheTTL = 10 * time.Minute
)

// rewardsService implements RewardsService
type rewardsService struct {
	rewards repositories.RewardsRepository
	cache   cache.Cache
	logger  *zap.Logger
}

// NewRewardsService creates a new rewards service
func NewRewardsService(repos *repositories.Collection, cacheService cache.Cache, logger *zap.Logger) RewardsService {
	return &rewardsService{
		rewards: repos.Rewards,
		cache:   cacheService,
		logger:  logger,
	}
}

// GetSummary assembles the rewards screen: ledger totals, distance to the
// next level and achievement progress. Users that never earned a point get
// the zero ledger rather than an error.
func (s *rewardsService) GetSummary(ctx context.Context, userID int64) (*RewardsSummary, error) {
	ledger, err := s.rewards.GetLedger(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load rewards ledger")
	}
	if ledger == nil {
		ledger = &models.RewardsLedger{UserID: userID, CurrentLevel: 1}
	}

	achievements, err := s.rewards.ListAchievements(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load achievements")
	}

	return &RewardsSummary{
		TotalPoints:       ledger.TotalPoints,
		CurrentLevel:      ledger.CurrentLevel,
		CurrentStreak:     ledger.CurrentStreak,
		PointsToNextLevel: models.PointsToNextLevel(ledger.TotalPoints, ledger.CurrentLevel),
		Achievements:      achievements,
	}, nil
}

// ListBadges returns the full badge catalog, cached since it only changes
// with migrations.
func (s *rewardsService) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	var cached []*models.Badge
	if found, err := s.cache.Get(ctx, badgeCatalogCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	badges, err := s.rewards.ListBadges(ctx)
	if err != nil {
		return nil, NewInternalError("failed to load badge catalog")
	}

	if err := s.cache.Set(ctx, badgeCatalogCacheKey, badges, badgeCatalogCacheTTL); err != nil {
		s.logger.Warn("Failed to cache badge catalog", zap.Error(err))
	}

	return badges, nil
}

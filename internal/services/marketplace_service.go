// file: internal/services/marketplace_service.go
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"ecotrack/internal/cache"
	"ecotrack/internal/events"
	"ecotrack/internal/models"
	"ecotrack/internal/repositories"
	"ecotrack/internal/validation"

	"go.uber.org/zap"
)

const (
	marketplaceCacheKey = "marketplace:rewards:active"
	marketplaceCacheTTL = 2 * time.Minute

	redemptionCodeLength = 8
	redemptionValidity   = 30 * 24 * time.Hour

	redemptionCodeAttempts = 3
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// marketplaceService implements MarketplaceService
type marketplaceService struct {
	marketplace repositories.MarketplaceRepository
	cache       cache.Cache
	events      events.EventBus
	logger      *zap.Logger
}

// NewMarketplaceService creates a new marketplace service
func NewMarketplaceService(
	repos *repositories.Collection,
	cacheService cache.Cache,
	eventBus events.EventBus,
	logger *zap.Logger,
) MarketplaceService {
	return &marketplaceService{
		marketplace: repos.Marketplace,
		cache:       cacheService,
		events:      eventBus,
		logger:      logger,
	}
}

// ListRewards returns the active catalog, briefly cached since it changes
// rarely and every user sees the same list.
func (s *marketplaceService) ListRewards(ctx context.Context) ([]*models.MarketplaceReward, error) {
	var cached []*models.MarketplaceReward
	if found, err := s.cache.Get(ctx, marketplaceCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	rewards, err := s.marketplace.ListActive(ctx, time.Now().UTC())
	if err != nil {
		return nil, NewInternalError("failed to list rewards")
	}

	if err := s.cache.Set(ctx, marketplaceCacheKey, rewards, marketplaceCacheTTL); err != nil {
		s.logger.Warn("Failed to cache marketplace rewards", zap.Error(err))
	}

	return rewards, nil
}

// GetReward returns one catalog entry by ID
func (s *marketplaceService) GetReward(ctx context.Context, rewardID int64) (*models.MarketplaceReward, error) {
	reward, err := s.marketplace.GetByID(ctx, rewardID)
	if err != nil {
		return nil, NewInternalError("failed to load reward")
	}
	if reward == nil || !reward.IsActive {
		return nil, NewNotFoundError("reward not found")
	}
	return reward, nil
}

// Redeem spends points on a reward and returns the redemption code. The
// repository runs the exchange atomically; this layer maps its sentinel
// errors to client-facing failures and retries code collisions.
func (s *marketplaceService) Redeem(ctx context.Context, userID int64, req *RedeemRequest) (*RedeemResult, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid redemption request", err)
	}

	expiresAt := time.Now().UTC().Add(redemptionValidity)

	var lastErr error
	for attempt := 0; attempt < redemptionCodeAttempts; attempt++ {
		code, err := generateRedemptionCode()
		if err != nil {
			return nil, NewInternalError("failed to generate redemption code")
		}

		redemption, reward, err := s.marketplace.Redeem(ctx, userID, req.RewardID, code, expiresAt)
		if err == nil {
			s.events.Publish(ctx, events.NewRewardRedeemedEvent(
				userID, reward.ID, redemption.PointsSpent, redemption.RedemptionCode))

			if cacheErr := s.cache.Delete(ctx, marketplaceCacheKey); cacheErr != nil {
				s.logger.Warn("Failed to invalidate marketplace cache", zap.Error(cacheErr))
			}

			return &RedeemResult{Redemption: redemption, Reward: reward}, nil
		}

		if errors.Is(err, repositories.ErrDuplicateRedemptionCode) {
			lastErr = err
			continue
		}

		switch {
		case errors.Is(err, repositories.ErrRewardNotFound):
			return nil, NewNotFoundError("reward not found")
		case errors.Is(err, repositories.ErrLedgerNotFound):
			return nil, NewBusinessError("no points balance yet", "NO_LEDGER")
		case errors.Is(err, repositories.ErrInsufficientPoints):
			return nil, NewBusinessError("not enough points", "INSUFFICIENT_POINTS")
		case errors.Is(err, repositories.ErrLevelTooLow):
			return nil, NewBusinessError("level requirement not met", "LEVEL_TOO_LOW")
		case errors.Is(err, repositories.ErrOutOfStock):
			return nil, NewBusinessError("reward out of stock", "OUT_OF_STOCK")
		default:
			return nil, NewInternalError("failed to redeem reward")
		}
	}

	s.logger.Error("Redemption code collisions exhausted retries", zap.Error(lastErr))
	return nil, NewInternalError("failed to redeem reward")
}

// generateRedemptionCode returns an 8 character uppercase alphanumeric code.
func generateRedemptionCode() (string, error) {
	buf := make([]byte, redemptionCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	code := make([]byte, redemptionCodeLength)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(code), nil
}

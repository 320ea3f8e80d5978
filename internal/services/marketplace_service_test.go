// file: internal/services/marketplace_service_test.go
package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"ecotrack/internal/cache"
	"ecotrack/internal/events"
	"ecotrack/internal/models"
	"ecotrack/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMarketplaceRepo struct {
	rewards   []*models.MarketplaceReward
	redeemErr error
	calls     int
	lastCode  string
	lastExp   time.Time
}

func (f *fakeMarketplaceRepo) ListActive(ctx context.Context, now time.Time) ([]*models.MarketplaceReward, error) {
	f.calls++
	return f.rewards, nil
}

func (f *fakeMarketplaceRepo) GetByID(ctx context.Context, id int64) (*models.MarketplaceReward, error) {
	for _, r := range f.rewards {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeMarketplaceRepo) Redeem(ctx context.Context, userID, rewardID int64, code string, expiresAt time.Time) (*models.Redemption, *models.MarketplaceReward, error) {
	if f.redeemErr != nil {
		return nil, nil, f.redeemErr
	}
	reward, _ := f.GetByID(ctx, rewardID)
	if reward == nil {
		return nil, nil, repositories.ErrRewardNotFound
	}
	f.lastCode = code
	f.lastExp = expiresAt
	return &models.Redemption{
		ID:             1,
		UserID:         userID,
		RewardID:       rewardID,
		PointsSpent:    reward.PointCost,
		RedemptionCode: code,
		ExpiresAt:      expiresAt,
	}, reward, nil
}

func newTestMarketplaceService(t *testing.T, repo *fakeMarketplaceRepo) MarketplaceService {
	t.Helper()

	memCache, err := cache.New(nil, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { memCache.Close() })

	repos := &repositories.Collection{Marketplace: repo}
	bus := events.NewInMemoryEventBus(zap.NewNop())

	return NewMarketplaceService(repos, memCache, bus, zap.NewNop())
}

func TestMarketplaceService_Redeem(t *testing.T) {
	reward := &models.MarketplaceReward{
		ID:          3,
		PartnerName: "GreenGrocer",
		Title:       "10% off groceries",
		PointCost:   500,
	}

	t.Run("issues a well formed code with a 30 day expiry", func(t *testing.T) {
		repo := &fakeMarketplaceRepo{rewards: []*models.MarketplaceReward{reward}}
		svc := newTestMarketplaceService(t, repo)

		before := time.Now().UTC()
		result, err := svc.Redeem(context.Background(), 7, &RedeemRequest{RewardID: 3})
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8}$`), result.Redemption.RedemptionCode)
		assert.Equal(t, 500, result.Redemption.PointsSpent)

		wantExpiry := before.Add(30 * 24 * time.Hour)
		assert.WithinDuration(t, wantExpiry, result.Redemption.ExpiresAt, time.Minute)
	})

	t.Run("maps sentinel failures to client errors", func(t *testing.T) {
		tests := []struct {
			name       string
			sentinel   error
			wantType   string
			wantStatus int
		}{
			{"missing reward", repositories.ErrRewardNotFound, "NOT_FOUND", 404},
			{"missing ledger", repositories.ErrLedgerNotFound, "BUSINESS_ERROR", 400},
			{"too few points", repositories.ErrInsufficientPoints, "BUSINESS_ERROR", 400},
			{"level too low", repositories.ErrLevelTooLow, "BUSINESS_ERROR", 400},
			{"out of stock", repositories.ErrOutOfStock, "BUSINESS_ERROR", 400},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &fakeMarketplaceRepo{redeemErr: tt.sentinel}
				svc := newTestMarketplaceService(t, repo)

				_, err := svc.Redeem(context.Background(), 7, &RedeemRequest{RewardID: 3})

				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, tt.wantType, svcErr.Type)
				assert.Equal(t, tt.wantStatus, svcErr.GetStatusCode())
			})
		}
	})

	t.Run("rejects a zero reward id", func(t *testing.T) {
		svc := newTestMarketplaceService(t, &fakeMarketplaceRepo{})

		_, err := svc.Redeem(context.Background(), 7, &RedeemRequest{})

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "VALIDATION_ERROR", svcErr.Type)
	})
}

func TestMarketplaceService_ListRewards_Caches(t *testing.T) {
	repo := &fakeMarketplaceRepo{rewards: []*models.MarketplaceReward{
		{ID: 1, Title: "Reusable bottle", PointCost: 200},
	}}
	svc := newTestMarketplaceService(t, repo)

	first, err := svc.ListRewards(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.ListRewards(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)

	assert.Equal(t, 1, repo.calls)
}

func TestGenerateRedemptionCode(t *testing.T) {
	seen := map[string]bool{}
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)

	for i := 0; i < 100; i++ {
		code, err := generateRedemptionCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}

	// 100 draws from a 36^8 space should never repeat.
	assert.Len(t, seen, 100)
}

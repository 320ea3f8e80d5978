// file: internal/services/action_service_test.go
package services

import (
	"context"
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

// ===============================
// FAKES
// ===============================

type fakeActionRepo struct {
	created  []*models.EcoAction
	byID     map[int64]*models.EcoAction
	rejected []int64
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{byID: map[int64]*models.EcoAction{}}
}

func (f *fakeActionRepo) Create(ctx context.Context, action *models.EcoAction) error {
	action.ID = int64(len(f.created) + 1)
	action.CreatedAt = time.Now().UTC()
	f.created = append(f.created, action)
	f.byID[action.ID] = action
	return nil
}

func (f *fakeActionRepo) GetByID(ctx context.Context, id int64) (*models.EcoAction, error) {
	return f.byID[id], nil
}

func (f *fakeActionRepo) ListByUser(ctx context.Context, userID int64) ([]*models.EcoAction, error) {
	var out []*models.EcoAction
	for _, a := range f.created {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActionRepo) ListByUserForDay(ctx context.Context, userID int64, day time.Time) ([]*models.EcoAction, error) {
	var out []*models.EcoAction
	for _, a := range f.created {
		if a.UserID == userID && sameDay(a.CreatedAt, day) {
			out = append(out, a)
		}
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (f *fakeActionRepo) Reject(ctx context.Context, actionID int64) error {
	action := f.byID[actionID]
	if action == nil || action.VerificationStatus == models.VerificationVerified ||
		action.VerificationStatus == models.VerificationRejected {
		return repositories.ErrActionAlreadyResolved
	}
	action.VerificationStatus = models.VerificationRejected
	f.rejected = append(f.rejected, actionID)
	return nil
}

type fakeRewardsRepo struct {
	applied         []string
	alreadyResolved bool
	ledger          *models.RewardsLedger
	completesBadges []string
}

func (f *fakeRewardsRepo) GetLedger(ctx context.Context, userID int64) (*models.RewardsLedger, error) {
	return f.ledger, nil
}

func (f *fakeRewardsRepo) SeedLedger(ctx context.Context, userID int64) error { return nil }

func (f *fakeRewardsRepo) ListBadges(ctx context.Context) ([]*models.Badge, error) { return nil, nil }

func (f *fakeRewardsRepo) SeedAchievements(ctx context.Context, userID int64) error { return nil }

func (f *fakeRewardsRepo) ListAchievements(ctx context.Context, userID int64) ([]*models.Achievement, error) {
	return nil, nil
}

func (f *fakeRewardsRepo) ApplyVerifiedAction(ctx context.Context, action *models.EcoAction, requirementType string, now time.Time) (*models.RewardsLedger, []string, error) {
	if f.alreadyResolved {
		return nil, nil, repositories.ErrActionAlreadyResolved
	}
	f.applied = append(f.applied, requirementType)
	if f.ledger == nil {
		f.ledger = &models.RewardsLedger{UserID: action.UserID, CurrentLevel: 1}
	}
	f.ledger.TotalPoints += action.PointsEarned
	return f.ledger, f.completesBadges, nil
}

// ===============================
// HELPERS
// ===============================

func newTestActionService(t *testing.T, actions *fakeActionRepo, rewards *fakeRewardsRepo) ActionService {
	t.Helper()

	memCache, err := cache.New(nil, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { memCache.Close() })

	repos := &repositories.Collection{Action: actions, Rewards: rewards}
	bus := events.NewInMemoryEventBus(zap.NewNop())

	return NewActionService(repos, disabledFileService{}, memCache, bus, zap.NewNop())
}

func strPtr(s string) *string { return &s }

// ===============================
// TESTS
// ===============================

func TestActionService_LogAction_Catalog(t *testing.T) {
	tests := []struct {
		name       string
		req        *LogActionRequest
		wantCO2    float64
		wantPoints int
		wantDesc   string
		wantStatus string
	}{
		{
			name:       "known type without proof waits for it",
			req:        &LogActionRequest{ActionType: "public_transport"},
			wantCO2:    2.3,
			wantPoints: 25,
			wantDesc:   "Used public transportation",
			wantStatus: models.VerificationAwaitingProof,
		},
		{
			name: "proof submission goes straight to review",
			req: &LogActionRequest{
				ActionType: "recycling",
				ProofURL:   strPtr("https://cdn.example.com/proof.jpg"),
				ProofType:  strPtr("photo"),
			},
			wantCO2:    0.5,
			wantPoints: 8,
			wantDesc:   "Recycled household items",
			wantStatus: models.VerificationPending,
		},
		{
			name:       "unknown type falls back to generic values",
			req:        &LogActionRequest{ActionType: "tree_planting"},
			wantCO2:    1.0,
			wantPoints: 10,
			wantDesc:   "Eco-friendly action",
			wantStatus: models.VerificationAwaitingProof,
		},
		{
			name: "client description wins over catalog default",
			req: &LogActionRequest{
				ActionType:  "energy_saving",
				Description: strPtr("Switched to LED bulbs"),
			},
			wantCO2:    0.8,
			wantPoints: 10,
			wantDesc:   "Switched to LED bulbs",
			wantStatus: models.VerificationAwaitingProof,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := newFakeActionRepo()
			svc := newTestActionService(t, actions, &fakeRewardsRepo{})

			action, err := svc.LogAction(context.Background(), 7, tt.req)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCO2, action.CO2Impact)
			assert.Equal(t, tt.wantPoints, action.PointsEarned)
			assert.Equal(t, tt.wantDesc, action.Description)
			assert.Equal(t, tt.wantStatus, action.VerificationStatus)
		})
	}
}

func TestActionService_LogAction_RequiresType(t *testing.T) {
	svc := newTestActionService(t, newFakeActionRepo(), &fakeRewardsRepo{})

	_, err := svc.LogAction(context.Background(), 7, &LogActionRequest{})

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "VALIDATION_ERROR", svcErr.Type)
}

func TestActionService_VerifyAction(t *testing.T) {
	t.Run("verification credits through the ledger", func(t *testing.T) {
		actions := newFakeActionRepo()
		rewards := &fakeRewardsRepo{}
		svc := newTestActionService(t, actions, rewards)

		logged, err := svc.LogAction(context.Background(), 7, &LogActionRequest{ActionType: "plant_based_meal"})
		require.NoError(t, err)

		result, err := svc.VerifyAction(context.Background(), logged.ID, &VerifyActionRequest{Status: "verified"})

		require.NoError(t, err)
		assert.Equal(t, models.VerificationVerified, result.Action.VerificationStatus)
		assert.Equal(t, []string{models.RequirementPlantMeals}, rewards.applied)
		assert.Equal(t, 15, result.Ledger.TotalPoints)
	})

	t.Run("badge completions are published", func(t *testing.T) {
		memCache, err := cache.New(nil, zap.NewNop())
		require.NoError(t, err)
		t.Cleanup(func() { memCache.Close() })

		actions := newFakeActionRepo()
		rewards := &fakeRewardsRepo{completesBadges: []string{"First Steps"}}
		bus := events.NewInMemoryEventBus(zap.NewNop())

		var completed []string
		bus.Subscribe(events.TypeBadgeCompleted, func(ctx context.Context, event events.Event) error {
			completed = append(completed, event.(*events.BadgeCompletedEvent).BadgeName)
			return nil
		})

		repos := &repositories.Collection{Action: actions, Rewards: rewards}
		svc := NewActionService(repos, disabledFileService{}, memCache, bus, zap.NewNop())

		logged, err := svc.LogAction(context.Background(), 7, &LogActionRequest{ActionType: "recycling"})
		require.NoError(t, err)

		_, err = svc.VerifyAction(context.Background(), logged.ID, &VerifyActionRequest{Status: "verified"})

		require.NoError(t, err)
		assert.Equal(t, []string{"First Steps"}, completed)
	})

	t.Run("second resolution is a conflict", func(t *testing.T) {
		actions := newFakeActionRepo()
		rewards := &fakeRewardsRepo{alreadyResolved: true}
		svc := newTestActionService(t, actions, rewards)

		logged, err := svc.LogAction(context.Background(), 7, &LogActionRequest{ActionType: "recycling"})
		require.NoError(t, err)

		_, err = svc.VerifyAction(context.Background(), logged.ID, &VerifyActionRequest{Status: "verified"})

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "CONFLICT", svcErr.Type)
	})

	t.Run("rejection never touches the ledger", func(t *testing.T) {
		actions := newFakeActionRepo()
		rewards := &fakeRewardsRepo{}
		svc := newTestActionService(t, actions, rewards)

		logged, err := svc.LogAction(context.Background(), 7, &LogActionRequest{ActionType: "recycling"})
		require.NoError(t, err)

		result, err := svc.VerifyAction(context.Background(), logged.ID, &VerifyActionRequest{Status: "rejected"})

		require.NoError(t, err)
		assert.Equal(t, models.VerificationRejected, result.Action.VerificationStatus)
		assert.Nil(t, result.Ledger)
		assert.Empty(t, rewards.applied)
	})

	t.Run("unknown action is not found", func(t *testing.T) {
		svc := newTestActionService(t, newFakeActionRepo(), &fakeRewardsRepo{})

		_, err := svc.VerifyAction(context.Background(), 404, &VerifyActionRequest{Status: "verified"})

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "NOT_FOUND", svcErr.Type)
	})
}

func TestActionService_ListActions(t *testing.T) {
	t.Run("splits out today's actions", func(t *testing.T) {
		actions := newFakeActionRepo()
		svc := newTestActionService(t, actions, &fakeRewardsRepo{})

		old, err := svc.LogAction(context.Background(), 7, &LogActionRequest{ActionType: "public_transport"})
		require.NoError(t, err)
		actions.byID[old.ID].CreatedAt = time.Now().UTC().AddDate(0, 0, -3)

		today, err := svc.LogAction(context.Background(), 7, &LogActionRequest{ActionType: "recycling"})
		require.NoError(t, err)

		list, err := svc.ListActions(context.Background(), 7)
		require.NoError(t, err)

		assert.Len(t, list.Actions, 2)
		require.Len(t, list.TodayActions, 1)
		assert.Equal(t, today.ID, list.TodayActions[0].ID)
	})

	t.Run("no history yields empty slices", func(t *testing.T) {
		svc := newTestActionService(t, newFakeActionRepo(), &fakeRewardsRepo{})

		list, err := svc.ListActions(context.Background(), 7)
		require.NoError(t, err)

		assert.NotNil(t, list.Actions)
		assert.Empty(t, list.Actions)
		assert.NotNil(t, list.TodayActions)
		assert.Empty(t, list.TodayActions)
	})
}

// file: internal/repositories/interfaces.go
package repositories

import (
	"context"
	"time"

	"ecotrack/internal/models"
)

// UserRepository defines the contract for user data operations
type UserRepository interface {
	Create(ctx context.Context) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AssessmentRepository defines the contract for carbon assessment data
type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetLatest(ctx context.Context, userID int64) (*models.Assessment, error)
	GetTodaySavings(ctx context.Context, userID int64, day time.Time) (float64, error)
}

// ActionRepository defines the contract for eco action data
type ActionRepository interface {
	Create(ctx context.Context, action *models.EcoAction) error
	GetByID(ctx context.Context, id int64) (*models.EcoAction, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.EcoAction, error)
	ListByUserForDay(ctx context.Context, userID int64, day time.Time) ([]*models.EcoAction, error)
	Reject(ctx context.Context, actionID int64) error
}

// RewardsRepository defines the contract for the rewards ledger, badge
// catalog and per-user achievement progress.
type RewardsRepository interface {
	GetLedger(ctx context.Context, userID int64) (*models.RewardsLedger, error)
	SeedLedger(ctx context.Context, userID int64) error
	ListBadges(ctx context.Context) ([]*models.Badge, error)
	SeedAchievements(ctx context.Context, userID int64) error
	ListAchievements(ctx context.Context, userID int64) ([]*models.Achievement, error)

	// ApplyVerifiedAction atomically marks the action verified, applies the
	// point/level/streak update and advances achievement progress. Returns
	// the updated ledger and the names of badges completed by this action,
	// or ErrActionAlreadyResolved when the action is not awaiting
	// verification.
	ApplyVerifiedAction(ctx context.Context, action *models.EcoAction, requirementType string, now time.Time) (*models.RewardsLedger, []string, error)
}

// MarketplaceRepository defines the contract for the reward catalog and
// point redemption.
type MarketplaceRepository interface {
	ListActive(ctx context.Context, now time.Time) ([]*models.MarketplaceReward, error)
	GetByID(ctx context.Context, id int64) (*models.MarketplaceReward, error)

	// Redeem runs the three-way exchange (insert redemption, debit points,
	// decrement stock) as a single transaction. Precondition failures are
	// reported via the sentinel errors and leave no mutation behind.
	Redeem(ctx context.Context, userID, rewardID int64, code string, expiresAt time.Time) (*models.Redemption, *models.MarketplaceReward, error)
}

// SettingsRepository defines the contract for per-user settings
type SettingsRepository interface {
	GetOrCreate(ctx context.Context, userID int64) (*models.UserSettings, error)
	Update(ctx context.Context, userID int64, update *SettingsUpdate) (*models.UserSettings, error)
}

// SettingsUpdate carries the optional fields of a settings update. Nil
// fields are left untouched.
type SettingsUpdate struct {
	Theme         *string
	Language      *string
	Notifications *bool
	Privacy       *string
}

// IsEmpty reports whether the update carries no fields at all.
func (u *SettingsUpdate) IsEmpty() bool {
	return u.Theme == nil && u.Language == nil && u.Notifications == nil && u.Privacy == nil
}

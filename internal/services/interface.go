// file: internal/services/interface.go
package services

import (
	"context"
	"io"
	"time"

	"ecotrack/internal/models"
)

// ===============================
// CORE SERVICE INTERFACES
// ===============================

// AssessmentService defines carbon footprint business logic
type AssessmentService interface {
	// Calculate estimates emissions from survey answers and stores the
	// assessment. A zero userID creates a new user and returns a token.
	Calculate(ctx context.Context, userID int64, req *CalculateRequest) (*CalculateResult, error)

	// GetCurrent returns the latest assessment with today's verified
	// savings.
	GetCurrent(ctx context.Context, userID int64) (*CurrentFootprint, error)
}

// ActionService defines eco action business logic
type ActionService interface {
	LogAction(ctx context.Context, userID int64, req *LogActionRequest) (*models.EcoAction, error)
	ListActions(ctx context.Context, userID int64) (*ActionListResult, error)
	VerifyAction(ctx context.Context, actionID int64, req *VerifyActionRequest) (*VerifyActionResult, error)
	UploadProof(ctx context.Context, userID int64, filename string, size int64, file io.Reader) (*ProofUploadResult, error)
}

// RewardsService defines the points ledger and achievements logic
type RewardsService interface {
	GetSummary(ctx context.Context, userID int64) (*RewardsSummary, error)
	ListBadges(ctx context.Context) ([]*models.Badge, error)
}

// MarketplaceService defines reward catalog and redemption logic
type MarketplaceService interface {
	ListRewards(ctx context.Context) ([]*models.MarketplaceReward, error)
	GetReward(ctx context.Context, rewardID int64) (*models.MarketplaceReward, error)
	Redeem(ctx context.Context, userID int64, req *RedeemRequest) (*RedeemResult, error)
}

// SettingsService defines per-user preference logic
type SettingsService interface {
	GetSettings(ctx context.Context, userID int64) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, userID int64, req *UpdateSettingsRequest) (*models.UserSettings, error)
}

// TokenService mints and verifies the device tokens that identify users
type TokenService interface {
	Mint(userID int64) (string, error)
	Verify(token string) (int64, error)
	TTL() time.Duration
}

// FileService stores proof files with an external provider
type FileService interface {
	UploadProof(ctx context.Context, userID int64, filename string, size int64, file io.Reader) (*ProofUploadResult, error)
}

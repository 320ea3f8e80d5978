// file: internal/services/types.go
package services

import (
	"ecotrack/internal/emissions"
	"ecotrack/internal/models"
)

// ===============================
// ASSESSMENT TYPES
// ===============================

// CalculateRequest carries the survey answers for a footprint calculation
type CalculateRequest struct {
	Answers emissions.Answers `json:"answers" validate:"required"`
}

// CalculateResult is the outcome of a footprint calculation. Token is only
// set when the calculation created a new user.
type CalculateResult struct {
	AssessmentID int64               `json:"assessmentId"`
	UserID       int64               `json:"userId"`
	Emissions    emissions.Breakdown `json:"emissions"`
	Token        string              `json:"token,omitempty"`
}

// CurrentFootprint is the dashboard view of the latest assessment plus
// today's verified savings and logged actions.
type CurrentFootprint struct {
	Assessment   *models.Assessment  `json:"assessment"`
	TodaySavings float64             `json:"todaySavings"`
	TodayActions []*models.EcoAction `json:"todayActions"`
}

// ===============================
// ACTION TYPES
// ===============================

// LogActionRequest records one eco action
type LogActionRequest struct {
	ActionType  string  `json:"actionType" validate:"required,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	ProofURL    *string `json:"proofUrl,omitempty" validate:"omitempty,url"`
	ProofType   *string `json:"proofType,omitempty" validate:"omitempty,oneof=photo receipt location"`
}

// ActionListResult pairs the full action history with the subset logged
// today, so the client can render both without a second round trip.
type ActionListResult struct {
	Actions      []*models.EcoAction `json:"actions"`
	TodayActions []*models.EcoAction `json:"todayActions"`
}

// VerifyActionRequest resolves a submitted action
type VerifyActionRequest struct {
	Status string `json:"status" validate:"required,oneof=verified rejected"`
}

// VerifyActionResult reports the resolution and, on verification, the
// updated ledger.
type VerifyActionResult struct {
	Action *models.EcoAction     `json:"action"`
	Ledger *models.RewardsLedger `json:"ledger,omitempty"`
}

// ProofUploadResult describes a stored proof file
type ProofUploadResult struct {
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	ProofType string `json:"proof_type"`
	Size      int64  `json:"size"`
}

// ===============================
// REWARDS TYPES
// ===============================

// RewardsSummary is the full rewards screen payload
type RewardsSummary struct {
	TotalPoints       int                   `json:"total_points"`
	CurrentLevel      int                   `json:"current_level"`
	CurrentStreak     int                   `json:"current_streak"`
	PointsToNextLevel int                   `json:"points_to_next_level"`
	Achievements      []*models.Achievement `json:"achievements"`
}

// RedeemRequest spends points on a marketplace reward
type RedeemRequest struct {
	RewardID int64 `json:"rewardId" validate:"required,gt=0"`
}

// RedeemResult is the outcome of a successful redemption
type RedeemResult struct {
	Redemption *models.Redemption        `json:"redemption"`
	Reward     *models.MarketplaceReward `json:"reward"`
}

// ===============================
// SETTINGS TYPES
// ===============================

// UpdateSettingsRequest carries the optional settings fields. Absent fields
// keep their stored value.
type UpdateSettingsRequest struct {
	Theme         *string `json:"theme,omitempty" validate:"omitempty,max=64"`
	Language      *string `json:"language,omitempty" validate:"omitempty,min=2,max=8"`
	Notifications *bool   `json:"notifications,omitempty"`
	Privacy       *string `json:"privacy,omitempty" validate:"omitempty,oneof=public friends private"`
}

// file: internal/models/models.go
package models

import (
	"encoding/json"
	"time"
)

// ===============================
// CORE ENTITIES
// ===============================

// User represents an EcoTrack user. Accounts are provisioned during
// onboarding and addressed by device token afterwards.
type User struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Assessment is a stored snapshot of computed carbon emissions from one
// onboarding survey submission. Immutable once created; the latest row per
// user wins for "current" queries.
type Assessment struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`

	// Raw survey answers as submitted, kept for auditability.
	AssessmentData json.RawMessage `json:"assessment_data" db:"assessment_data"`

	// Derived figures in metric tons, rounded to 2 decimals.
	MonthlyEmissions        float64 `json:"monthly_emissions" db:"monthly_emissions"`
	YearlyEmissions         float64 `json:"yearly_emissions" db:"yearly_emissions"`
	TransportationEmissions float64 `json:"transportation_emissions" db:"transportation_emissions"`
	EnergyEmissions         float64 `json:"energy_emissions" db:"energy_emissions"`
	DietEmissions           float64 `json:"diet_emissions" db:"diet_emissions"`
	ShoppingEmissions       float64 `json:"shopping_emissions" db:"shopping_emissions"`
	WasteEmissions          float64 `json:"waste_emissions" db:"waste_emissions"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Ledger snapshot (joined, not stored on the assessment row)
	CurrentStreak int `json:"current_streak,omitempty" db:"-"`
	TotalPoints   int `json:"total_points,omitempty" db:"-"`
	CurrentLevel  int `json:"current_level,omitempty" db:"-"`
}

// Verification statuses for eco actions. Transitions only happen through
// the verification endpoint; points are credited on the transition to
// verified, exactly once.
const (
	VerificationAwaitingProof = "awaiting_proof"
	VerificationPending       = "pending"
	VerificationVerified      = "verified"
	VerificationRejected      = "rejected"
)

// EcoAction is a single user-logged eco-friendly activity.
type EcoAction struct {
	ID                 int64      `json:"id" db:"id"`
	UserID             int64      `json:"user_id" db:"user_id"`
	ActionType         string     `json:"action_type" db:"action_type"`
	Description        string     `json:"description" db:"description"`
	CO2Impact          float64    `json:"co2_impact" db:"co2_impact"`
	PointsEarned       int        `json:"points_earned" db:"points_earned"`
	ProofURL           *string    `json:"proof_url,omitempty" db:"proof_url"`
	ProofType          *string    `json:"proof_type,omitempty" db:"proof_type"`
	VerificationStatus string     `json:"verification_status" db:"verification_status"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty" db:"verified_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// RewardsLedger is the per-user aggregate of points, level and streak.
// Level is derived at earn time: floor(total_points/500)+1. The streak
// counts consecutive UTC days with at least one verified action.
type RewardsLedger struct {
	UserID           int64      `json:"user_id" db:"user_id"`
	TotalPoints      int        `json:"total_points" db:"total_points"`
	CurrentLevel     int        `json:"current_level" db:"current_level"`
	CurrentStreak    int        `json:"current_streak" db:"current_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty" db:"last_activity_date"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// PointsPerLevel is the size of one level band.
const PointsPerLevel = 500

// UserSettings holds per-user application preferences.
type UserSettings struct {
	UserID               int64     `json:"user_id" db:"user_id"`
	Theme                string    `json:"theme" db:"theme"`
	Language             string    `json:"language" db:"language"`
	NotificationsEnabled bool      `json:"notifications" db:"notifications_enabled"`
	PrivacyProfile       string    `json:"privacy" db:"privacy_profile"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns the settings row created for a user on first read.
func DefaultSettings(userID int64) *UserSettings {
	return &UserSettings{
		UserID:               userID,
		Theme:                "light_nature",
		Language:             "en",
		NotificationsEnabled: true,
		PrivacyProfile:       "public",
	}
}

package models

import "time"

// MarketplaceReward is a catalog entity users redeem points against.
type MarketplaceReward struct {
	ID                 int64      `json:"id" db:"id"`
	PartnerName        string     `json:"partner_name" db:"partner_name"`
	PartnerLogo        *string    `json:"partner_logo,omitempty" db:"partner_logo"`
	Title              string     `json:"title" db:"title"`
	Description        string     `json:"description" db:"description"`
	Category           string     `json:"category" db:"category"`
	PointCost          int        `json:"point_cost" db:"point_cost"`
	LevelRequirement   int        `json:"level_requirement" db:"level_requirement"`
	OriginalValue      *float64   `json:"original_value,omitempty" db:"original_value"`
	DiscountPercentage *int       `json:"discount_percentage,omitempty" db:"discount_percentage"`
	TermsConditions    *string    `json:"terms_conditions,omitempty" db:"terms_conditions"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty" db:"expiry_date"`
	StockAvailable     int        `json:"stock_available" db:"stock_available"`
	IsActive           bool       `json:"is_active" db:"is_active"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// Redemption is the immutable record of one points-for-reward exchange.
type Redemption struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	RewardID       int64     `json:"reward_id" db:"reward_id"`
	PointsSpent    int       `json:"points_spent" db:"points_spent"`
	RedemptionCode string    `json:"redemption_code" db:"redemption_code"`
	ExpiresAt      time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

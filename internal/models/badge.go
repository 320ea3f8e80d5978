package models

import "time"

// Badge is a catalog entry describing a milestone users can earn by
// accumulating verified actions of a given kind.
type Badge struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	Icon             string    `json:"icon" db:"icon"`
	Rarity           string    `json:"rarity" db:"rarity"`
	RequirementType  string    `json:"requirement_type" db:"requirement_type"`
	RequirementValue int       `json:"requirement_value" db:"requirement_value"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Badge requirement types. action_count is a catch-all counted on every
// verified action regardless of type.
const (
	RequirementTransportActions = "transport_actions"
	RequirementEnergyActions    = "energy_actions"
	RequirementRecycleActions   = "recycle_actions"
	RequirementPlantMeals       = "plant_meals"
	RequirementWaterActions     = "water_actions"
	RequirementActionCount      = "action_count"
)

// Achievement tracks one user's progress toward one badge. Completed flips
// to true exactly when progress reaches the badge requirement; completed_at
// is stamped on that transition and never cleared.
type Achievement struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	BadgeID     int64      `json:"badge_id" db:"badge_id"`
	Progress    int        `json:"progress" db:"progress"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	// Badge catalog fields (joined)
	BadgeName        string `json:"badge_name,omitempty" db:"-"`
	BadgeDescription string `json:"badge_description,omitempty" db:"-"`
	BadgeIcon        string `json:"badge_icon,omitempty" db:"-"`
	BadgeRarity      string `json:"badge_rarity,omitempty" db:"-"`
	RequirementValue int    `json:"requirement_value,omitempty" db:"-"`
}

// file: internal/events/domain_events.go
package events

// Event type names used across the service layer.
const (
	TypeFootprintCalculated = "footprint.calculated"
	TypeActionLogged        = "action.logged"
	TypeActionVerified      = "action.verified"
	TypeActionRejected      = "action.rejected"
	TypeBadgeCompleted      = "badge.completed"
	TypeRewardRedeemed      = "reward.redeemed"
)

// FootprintCalculatedEvent is emitted after an assessment is stored
type FootprintCalculatedEvent struct {
	BaseEvent
	AssessmentID int64   `json:"assessment_id"`
	YearlyTons   float64 `json:"yearly_tons"`
}

// NewFootprintCalculatedEvent creates a new FootprintCalculatedEvent
func NewFootprintCalculatedEvent(userID, assessmentID int64, yearlyTons float64) *FootprintCalculatedEvent {
	return &FootprintCalculatedEvent{
		BaseEvent:    newBaseEvent(TypeFootprintCalculated, userID),
		AssessmentID: assessmentID,
		YearlyTons:   yearlyTons,
	}
}

// ActionLoggedEvent is emitted when a user records an eco action
type ActionLoggedEvent struct {
	BaseEvent
	ActionID   int64  `json:"action_id"`
	ActionType string `json:"action_type"`
	Status     string `json:"status"`
}

// NewActionLoggedEvent creates a new ActionLoggedEvent
func NewActionLoggedEvent(userID, actionID int64, actionType, status string) *ActionLoggedEvent {
	return &ActionLoggedEvent{
		BaseEvent:  newBaseEvent(TypeActionLogged, userID),
		ActionID:   actionID,
		ActionType: actionType,
		Status:     status,
	}
}

// ActionVerifiedEvent is emitted when a verification credits points
type ActionVerifiedEvent struct {
	BaseEvent
	ActionID     int64 `json:"action_id"`
	PointsEarned int   `json:"points_earned"`
	TotalPoints  int   `json:"total_points"`
	CurrentLevel int   `json:"current_level"`
}

// NewActionVerifiedEvent creates a new ActionVerifiedEvent
func NewActionVerifiedEvent(userID, actionID int64, pointsEarned, totalPoints, currentLevel int) *ActionVerifiedEvent {
	return &ActionVerifiedEvent{
		BaseEvent:    newBaseEvent(TypeActionVerified, userID),
		ActionID:     actionID,
		PointsEarned: pointsEarned,
		TotalPoints:  totalPoints,
		CurrentLevel: currentLevel,
	}
}

// ActionRejectedEvent is emitted when a verification rejects an action
type ActionRejectedEvent struct {
	BaseEvent
	ActionID int64 `json:"action_id"`
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(userID, actionID int64) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBaseEvent(TypeActionRejected, userID),
		ActionID:  actionID,
	}
}

// BadgeCompletedEvent is emitted when achievement progress crosses a
// badge's threshold
type BadgeCompletedEvent struct {
	BaseEvent
	BadgeName string `json:"badge_name"`
}

// NewBadgeCompletedEvent creates a new BadgeCompletedEvent
func NewBadgeCompletedEvent(userID int64, badgeName string) *BadgeCompletedEvent {
	return &BadgeCompletedEvent{
		BaseEvent: newBaseEvent(TypeBadgeCompleted, userID),
		BadgeName: badgeName,
	}
}

// RewardRedeemedEvent is emitted after a successful marketplace redemption
type RewardRedeemedEvent struct {
	BaseEvent
	RewardID    int64  `json:"reward_id"`
	PointsSpent int    `json:"points_spent"`
	Code        string `json:"code"`
}

// NewRewardRedeemedEvent creates a new RewardRedeemedEvent
func NewRewardRedeemedEvent(userID, rewardID int64, pointsSpent int, code string) *RewardRedeemedEvent {
	return &RewardRedeemedEvent{
		BaseEvent:   newBaseEvent(TypeRewardRedeemed, userID),
		RewardID:    rewardID,
		PointsSpent: pointsSpent,
		Code:        code,
	}
}

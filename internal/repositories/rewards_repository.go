// file: internal/repositories/rewards_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecotrack/internal/database"
	"ecotrack/internal/models"

	"go.uber.org/zap"
)

// rewardsRepository implements RewardsRepository
type rewardsRepository struct {
	*BaseRepository
}

// NewRewardsRepository creates a new rewards ledger repository
func NewRewardsRepository(db *database.Manager, logger *zap.Logger) RewardsRepository {
	return &rewardsRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetLedger retrieves a user's ledger row. Returns nil when none exists.
func (r *rewardsRepository) GetLedger(ctx context.Context, userID int64) (*models.RewardsLedger, error) {
	query := `
		SELECT user_id, total_points, current_level, current_streak,
		       last_activity_date, updated_at
		FROM user_rewards
		WHERE user_id = $1`

	var ledger models.RewardsLedger
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&ledger.UserID, &ledger.TotalPoints, &ledger.CurrentLevel,
		&ledger.CurrentStreak, &ledger.LastActivityDate, &ledger.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rewards ledger: %w", err)
	}

	return &ledger, nil
}

// SeedLedger creates the initial ledger row for a new user: zero points,
// level 1, no streak yet. Idempotent.
func (r *rewardsRepository) SeedLedger(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO user_rewards (user_id, total_points, current_level, current_streak)
		VALUES ($1, 0, 1, 0)
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to seed rewards ledger: %w", err)
	}
	return nil
}

// ListBadges returns the full badge catalog.
func (r *rewardsRepository) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	query := `
		SELECT id, name, description, icon, rarity,
		       requirement_type, requirement_value, created_at
		FROM badges
		ORDER BY id`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []*models.Badge
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Description, &b.Icon, &b.Rarity,
			&b.RequirementType, &b.RequirementValue, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, &b)
	}

	return badges, rows.Err()
}

// SeedAchievements creates a zero-progress achievement row for every badge
// in the catalog. Idempotent.
func (r *rewardsRepository) SeedAchievements(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO user_achievements (user_id, badge_id, progress)
		SELECT $1, id, 0 FROM badges
		ON CONFLICT (user_id, badge_id) DO NOTHING`

	if _, err := r.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}
	return nil
}

// ListAchievements returns the user's progress joined to badge catalog
// data, completed badges first.
func (r *rewardsRepository) ListAchievements(ctx context.Context, userID int64) ([]*models.Achievement, error) {
	query := `
		SELECT
			ua.id, ua.user_id, ua.badge_id, ua.progress,
			ua.completed, ua.completed_at,
			b.name, b.description, b.icon, b.rarity, b.requirement_value
		FROM user_achievements ua
		JOIN badges b ON ua.badge_id = b.id
		WHERE ua.user_id = $1
		ORDER BY ua.completed DESC, b.rarity DESC, ua.progress DESC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.BadgeID, &a.Progress,
			&a.Completed, &a.CompletedAt,
			&a.BadgeName, &a.BadgeDescription, &a.BadgeIcon,
			&a.BadgeRarity, &a.RequirementValue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, &a)
	}

	return achievements, rows.Err()
}

// ApplyVerifiedAction runs the whole verification credit as one
// transaction: the status flip on the action, the point/level/streak update
// on the ledger row (taken under a row lock so concurrent verifications
// cannot lose updates), and achievement progress. Either everything
// commits or nothing does.
func (r *rewardsRepository) ApplyVerifiedAction(ctx context.Context, action *models.EcoAction, requirementType string, now time.Time) (*models.RewardsLedger, []string, error) {
	var (
		ledger    *models.RewardsLedger
		completed []string
	)

	err := r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := markVerified(ctx, tx, action.ID, now); err != nil {
			return err
		}

		updated, err := applyPoints(ctx, tx, action.UserID, action.PointsEarned, now)
		if err != nil {
			return err
		}
		ledger = updated

		completed, err = advanceAchievements(ctx, tx, action.UserID, requirementType, now)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	r.GetLogger().Info("Verified action credited",
		zap.Int64("action_id", action.ID),
		zap.Int64("user_id", action.UserID),
		zap.Int("points", action.PointsEarned),
		zap.Int("total_points", ledger.TotalPoints),
		zap.Int("level", ledger.CurrentLevel),
		zap.Int("streak", ledger.CurrentStreak),
		zap.Strings("badges_completed", completed),
	)

	return ledger, completed, nil
}

// markVerified flips the action to verified, but only from a state that is
// still awaiting verification. Anything else means the credit already
// happened (or the action was rejected) and must not be applied twice.
func markVerified(ctx context.Context, tx *sql.Tx, actionID int64, now time.Time) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE eco_actions
		SET verification_status = $2, verified_at = $3
		WHERE id = $1 AND verification_status IN ($4, $5)`,
		actionID, models.VerificationVerified, now,
		models.VerificationPending, models.VerificationAwaitingProof,
	)
	if err != nil {
		return fmt.Errorf("failed to mark action verified: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrActionAlreadyResolved
	}
	return nil
}

// applyPoints performs the ledger update under a row lock. A missing row is
// created with the first action's points and a streak of 1.
func applyPoints(ctx context.Context, tx *sql.Tx, userID int64, points int, now time.Time) (*models.RewardsLedger, error) {
	ledger := &models.RewardsLedger{UserID: userID}

	var lastActivity *time.Time
	err := tx.QueryRowContext(ctx, `
		SELECT total_points, current_level, current_streak, last_activity_date
		FROM user_rewards
		WHERE user_id = $1
		FOR UPDATE`,
		userID,
	).Scan(&ledger.TotalPoints, &ledger.CurrentLevel, &ledger.CurrentStreak, &lastActivity)

	day := now.UTC()

	if err == sql.ErrNoRows {
		ledger.TotalPoints = points
		ledger.CurrentLevel = models.LevelForPoints(points)
		ledger.CurrentStreak = 1
		ledger.LastActivityDate = &day

		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_rewards (user_id, total_points, current_level, current_streak, last_activity_date)
			VALUES ($1, $2, $3, $4, $5)`,
			userID, ledger.TotalPoints, ledger.CurrentLevel, ledger.CurrentStreak, day,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create rewards ledger: %w", err)
		}
		return ledger, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock rewards ledger: %w", err)
	}

	ledger.TotalPoints += points
	ledger.CurrentLevel = models.LevelForPoints(ledger.TotalPoints)
	ledger.CurrentStreak = models.NextStreak(ledger.CurrentStreak, lastActivity, day)
	ledger.LastActivityDate = &day

	_, err = tx.ExecContext(ctx, `
		UPDATE user_rewards
		SET total_points = $2, current_level = $3, current_streak = $4,
		    last_activity_date = $5, updated_at = NOW()
		WHERE user_id = $1`,
		userID, ledger.TotalPoints, ledger.CurrentLevel, ledger.CurrentStreak, day,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update rewards ledger: %w", err)
	}

	return ledger, nil
}

// advanceAchievements bumps progress on every badge matching the action's
// requirement type, and on every catch-all action_count badge. The
// completed flag flips exactly at the threshold and completed_at is only
// stamped on the incomplete -> complete transition. Returns the names of
// badges completed by this call.
func advanceAchievements(ctx context.Context, tx *sql.Tx, userID int64, requirementType string, now time.Time) ([]string, error) {
	statement := `
		UPDATE user_achievements ua
		SET progress = ua.progress + 1,
		    completed = (ua.progress + 1 >= b.requirement_value),
		    completed_at = CASE
		        WHEN ua.progress + 1 >= b.requirement_value AND ua.completed_at IS NULL THEN $3
		        ELSE ua.completed_at
		    END
		FROM badges b
		WHERE ua.badge_id = b.id
		  AND ua.user_id = $1
		  AND b.requirement_type = $2
		RETURNING b.name, ua.completed_at = $3`

	var completed []string

	if requirementType == models.RequirementActionCount {
		requirementType = ""
	}

	for _, reqType := range []string{requirementType, models.RequirementActionCount} {
		if reqType == "" {
			continue
		}

		names, err := collectCompletedBadges(ctx, tx, statement, userID, reqType, now)
		if err != nil {
			return nil, fmt.Errorf("failed to advance %s achievements: %w", reqType, err)
		}
		completed = append(completed, names...)
	}

	return completed, nil
}

// collectCompletedBadges runs one achievement update and returns the names
// of badges whose completed_at was stamped by it.
func collectCompletedBadges(ctx context.Context, tx *sql.Tx, statement string, userID int64, requirementType string, now time.Time) ([]string, error) {
	rows, err := tx.QueryContext(ctx, statement, userID, requirementType, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var (
			name  string
			newly sql.NullBool
		)
		if err := rows.Scan(&name, &newly); err != nil {
			return nil, err
		}
		if newly.Valid && newly.Bool {
			names = append(names, name)
		}
	}

	return names, rows.Err()
}

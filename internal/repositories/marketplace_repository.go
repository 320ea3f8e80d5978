// file: internal/repositories/marketplace_repository.go
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecotrack/internal/database"
	"ecotrack/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const rewardColumns = `
	id, partner_name, partner_logo, title, description, category,
	point_cost, level_requirement, original_value, discount_percentage,
	terms_conditions, expiry_date, stock_available, is_active, created_at`

// marketplaceRepository implements MarketplaceRepository
type marketplaceRepository struct {
	*BaseRepository
}

// NewMarketplaceRepository creates a new marketplace repository
func NewMarketplaceRepository(db *database.Manager, logger *zap.Logger) MarketplaceRepository {
	return &marketplaceRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// ListActive returns redeemable rewards, cheapest tier first.
func (r *marketplaceRepository) ListActive(ctx context.Context, now time.Time) ([]*models.MarketplaceReward, error) {
	query := `
		SELECT ` + rewardColumns + `
		FROM marketplace_rewards
		WHERE is_active = TRUE
		  AND (expiry_date IS NULL OR expiry_date > $1)
		ORDER BY level_requirement, point_cost`

	rows, err := r.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list marketplace rewards: %w", err)
	}
	defer rows.Close()

	var rewards []*models.MarketplaceReward
	for rows.Next() {
		reward, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, reward)
	}

	return rewards, rows.Err()
}

// GetByID retrieves a reward regardless of active state. Returns nil when
// none exists.
func (r *marketplaceRepository) GetByID(ctx context.Context, id int64) (*models.MarketplaceReward, error) {
	query := `
		SELECT ` + rewardColumns + `
		FROM marketplace_rewards
		WHERE id = $1`

	reward, err := scanReward(r.QueryRowContext(ctx, query, id))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return reward, nil
}

// Redeem exchanges points for a reward in a single transaction. Both the
// reward row and the ledger row are locked up front, so the stock check,
// the point check, and the subsequent writes see a consistent snapshot. Any
// failed precondition aborts with a sentinel error and nothing is written.
func (r *marketplaceRepository) Redeem(ctx context.Context, userID, rewardID int64, code string, expiresAt time.Time) (*models.Redemption, *models.MarketplaceReward, error) {
	var (
		redemption *models.Redemption
		reward     *models.MarketplaceReward
	)

	err := r.WithTransaction(ctx, func(tx *sql.Tx) error {
		locked, err := lockReward(ctx, tx, rewardID)
		if err != nil {
			return err
		}
		reward = locked

		var totalPoints, currentLevel int
		err = tx.QueryRowContext(ctx, `
			SELECT total_points, current_level
			FROM user_rewards
			WHERE user_id = $1
			FOR UPDATE`,
			userID,
		).Scan(&totalPoints, &currentLevel)
		if err == sql.ErrNoRows {
			return ErrLedgerNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock rewards ledger: %w", err)
		}

		switch {
		case totalPoints < reward.PointCost:
			return ErrInsufficientPoints
		case currentLevel < reward.LevelRequirement:
			return ErrLevelTooLow
		case reward.StockAvailable <= 0:
			return ErrOutOfStock
		}

		redemption = &models.Redemption{
			UserID:         userID,
			RewardID:       rewardID,
			PointsSpent:    reward.PointCost,
			RedemptionCode: code,
			ExpiresAt:      expiresAt,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO user_reward_redemptions
				(user_id, reward_id, points_spent, redemption_code, expires_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			userID, rewardID, reward.PointCost, code, expiresAt,
		).Scan(&redemption.ID, &redemption.CreatedAt)
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return ErrDuplicateRedemptionCode
			}
			return fmt.Errorf("failed to insert redemption: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE user_rewards
			SET total_points = total_points - $2, updated_at = NOW()
			WHERE user_id = $1`,
			userID, reward.PointCost,
		)
		if err != nil {
			return fmt.Errorf("failed to debit points: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE marketplace_rewards
			SET stock_available = stock_available - 1
			WHERE id = $1 AND stock_available > 0`,
			rewardID,
		)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if affected == 0 {
			return ErrOutOfStock
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	r.GetLogger().Info("Reward redeemed",
		zap.Int64("user_id", userID),
		zap.Int64("reward_id", rewardID),
		zap.Int("points_spent", reward.PointCost),
	)

	return redemption, reward, nil
}

// lockReward fetches the reward row under a lock. An inactive or expired
// reward is reported as not found rather than leaking its existence.
func lockReward(ctx context.Context, tx *sql.Tx, rewardID int64) (*models.MarketplaceReward, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT `+rewardColumns+`
		FROM marketplace_rewards
		WHERE id = $1 AND is_active = TRUE
		FOR UPDATE`,
		rewardID,
	)

	reward, err := scanReward(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	if reward.ExpiryDate != nil && !reward.ExpiryDate.After(time.Now().UTC()) {
		return nil, ErrRewardNotFound
	}

	return reward, nil
}

func scanReward(row rowScanner) (*models.MarketplaceReward, error) {
	var reward models.MarketplaceReward
	err := row.Scan(
		&reward.ID, &reward.PartnerName, &reward.PartnerLogo, &reward.Title,
		&reward.Description, &reward.Category, &reward.PointCost,
		&reward.LevelRequirement, &reward.OriginalValue, &reward.DiscountPercentage,
		&reward.TermsConditions, &reward.ExpiryDate, &reward.StockAvailable,
		&reward.IsActive, &reward.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan marketplace reward: %w", err)
	}
	return &reward, nil
}

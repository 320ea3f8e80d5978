// file: internal/repositories/action_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"ecotrack/internal/database"
	"ecotrack/internal/models"

	"go.uber.org/zap"
)

// actionRepository implements ActionRepository
type actionRepository struct {
	*BaseRepository
}

// NewActionRepository creates a new eco action repository
func NewActionRepository(db *database.Manager, logger *zap.Logger) ActionRepository {
	return &actionRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const actionColumns = `
	id, user_id, action_type, description, co2_impact, points_earned,
	proof_url, proof_type, verification_status, verified_at, created_at`

// Create stores a newly logged action with its initial verification status.
func (r *actionRepository) Create(ctx context.Context, action *models.EcoAction) error {
	query := `
		INSERT INTO eco_actions (
			user_id, action_type, description, co2_impact, points_earned,
			proof_url, proof_type, verification_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query,
		action.UserID, action.ActionType, action.Description,
		action.CO2Impact, action.PointsEarned,
		action.ProofURL, action.ProofType, action.VerificationStatus,
	).Scan(&action.ID, &action.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create action: %w", err)
	}

	r.GetLogger().Info("Action logged",
		zap.Int64("action_id", action.ID),
		zap.Int64("user_id", action.UserID),
		zap.String("action_type", action.ActionType),
		zap.String("verification_status", action.VerificationStatus),
	)

	return nil
}

// GetByID retrieves one action. Returns nil when it does not exist.
func (r *actionRepository) GetByID(ctx context.Context, id int64) (*models.EcoAction, error) {
	query := `SELECT` + actionColumns + `FROM eco_actions WHERE id = $1`

	action, err := scanAction(r.QueryRowContext(ctx, query, id))
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get action by ID: %w", err)
	}
	return action, nil
}

// ListByUser returns all actions for a user, newest first.
func (r *actionRepository) ListByUser(ctx context.Context, userID int64) ([]*models.EcoAction, error) {
	query := `SELECT` + actionColumns + `
		FROM eco_actions
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return r.listActions(ctx, query, userID)
}

// ListByUserForDay returns the user's actions logged during the given UTC
// day, newest first.
func (r *actionRepository) ListByUserForDay(ctx context.Context, userID int64, day time.Time) ([]*models.EcoAction, error) {
	query := `SELECT` + actionColumns + `
		FROM eco_actions
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC`

	dayStart := day.UTC().Truncate(24 * time.Hour)
	return r.listActions(ctx, query, userID, dayStart, dayStart.Add(24*time.Hour))
}

// Reject resolves a pending verification as rejected. No points are
// credited. Returns ErrActionAlreadyResolved when the action was already
// verified or rejected.
func (r *actionRepository) Reject(ctx context.Context, actionID int64) error {
	query := `
		UPDATE eco_actions
		SET verification_status = $2, verified_at = NOW()
		WHERE id = $1 AND verification_status IN ($3, $4)`

	result, err := r.ExecContext(ctx, query, actionID,
		models.VerificationRejected,
		models.VerificationPending, models.VerificationAwaitingProof,
	)
	if err != nil {
		return fmt.Errorf("failed to reject action: %w", err)
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

func (r *actionRepository) listActions(ctx context.Context, query string, args ...interface{}) ([]*models.EcoAction, error) {
	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	var actions []*models.EcoAction
	for rows.Next() {
		action, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		actions = append(actions, action)
	}

	return actions, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAction(row rowScanner) (*models.EcoAction, error) {
	var a models.EcoAction
	err := row.Scan(
		&a.ID, &a.UserID, &a.ActionType, &a.Description,
		&a.CO2Impact, &a.PointsEarned,
		&a.ProofURL, &a.ProofType,
		&a.VerificationStatus, &a.VerifiedAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

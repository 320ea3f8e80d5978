// file: internal/repositories/user_repository.go
package repositories

import (
	"context"
	"fmt"

	"ecotrack/internal/database"
	"ecotrack/internal/models"

	"go.uber.org/zap"
)

// userRepository implements UserRepository
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create provisions a new anonymous user row. EcoTrack users are created
// during onboarding and carry no profile fields.
func (r *userRepository) Create(ctx context.Context) (*models.User, error) {
	query := `INSERT INTO users DEFAULT VALUES RETURNING id, created_at`

	var user models.User
	if err := r.QueryRowContext(ctx, query).Scan(&user.ID, &user.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	r.GetLogger().Info("User created", zap.Int64("user_id", user.ID))
	return &user, nil
}

// GetByID retrieves a user by ID. Returns nil when no such user exists.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, created_at FROM users WHERE id = $1`

	var user models.User
	err := r.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

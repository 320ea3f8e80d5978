// file: internal/repositories/settings_repository.go
package repositories

import (
	"context"
	"fmt"

	"ecotrack/internal/database"
	"ecotrack/internal/models"

	"go.uber.org/zap"
)

const settingsColumns = `user_id, theme, language, notifications_enabled, privacy_profile, updated_at`

// settingsRepository implements SettingsRepository
type settingsRepository struct {
	*BaseRepository
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.Manager, logger *zap.Logger) SettingsRepository {
	return &settingsRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetOrCreate returns the user's settings, inserting the defaults on first
// read. The ON CONFLICT no-op plus re-read keeps concurrent first reads
// safe.
func (r *settingsRepository) GetOrCreate(ctx context.Context, userID int64) (*models.UserSettings, error) {
	settings, err := r.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	defaults := models.DefaultSettings(userID)
	_, err = r.ExecContext(ctx, `
		INSERT INTO user_settings (user_id, theme, language, notifications_enabled, privacy_profile)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, defaults.Theme, defaults.Language,
		defaults.NotificationsEnabled, defaults.PrivacyProfile,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	settings, err = r.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, fmt.Errorf("settings row missing after insert for user %d", userID)
	}
	return settings, nil
}

// Update applies the non-nil fields and returns the resulting row. An empty
// update is a plain read.
func (r *settingsRepository) Update(ctx context.Context, userID int64, update *SettingsUpdate) (*models.UserSettings, error) {
	if update == nil || update.IsEmpty() {
		return r.GetOrCreate(ctx, userID)
	}

	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	query := `
		UPDATE user_settings
		SET theme = COALESCE($2, theme),
		    language = COALESCE($3, language),
		    notifications_enabled = COALESCE($4, notifications_enabled),
		    privacy_profile = COALESCE($5, privacy_profile),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + settingsColumns

	var settings models.UserSettings
	err := r.QueryRowContext(ctx, query,
		userID, update.Theme, update.Language, update.Notifications, update.Privacy,
	).Scan(
		&settings.UserID, &settings.Theme, &settings.Language,
		&settings.NotificationsEnabled, &settings.PrivacyProfile, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	r.GetLogger().Debug("Settings updated", zap.Int64("user_id", userID))

	return &settings, nil
}

func (r *settingsRepository) get(ctx context.Context, userID int64) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := r.QueryRowContext(ctx, `
		SELECT `+settingsColumns+`
		FROM user_settings
		WHERE user_id = $1`,
		userID,
	).Scan(
		&settings.UserID, &settings.Theme, &settings.Language,
		&settings.NotificationsEnabled, &settings.PrivacyProfile, &settings.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

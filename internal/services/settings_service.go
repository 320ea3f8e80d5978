// file: internal/services/settings_service.go
package services

import (
	"context"

	"ecotrack/internal/models"
	"ecotrack/internal/repositories"
	"ecotrack/internal/validation"

	"go.uber.org/zap"
)

// settingsService implements SettingsService
type settingsService struct {
	settings repositories.SettingsRepository
	logger   *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(repos *repositories.Collection, logger *zap.Logger) SettingsService {
	return &settingsService{
		settings: repos.Settings,
		logger:   logger,
	}
}

// GetSettings returns the user's preferences, creating the defaults on
// first read.
func (s *settingsService) GetSettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	settings, err := s.settings.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, NewInternalError("failed to load settings")
	}
	return settings, nil
}

// UpdateSettings applies the provided fields and returns the result. A body
// with no recognized fields is rejected rather than silently ignored.
func (s *settingsService) UpdateSettings(ctx context.Context, userID int64, req *UpdateSettingsRequest) (*models.UserSettings, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid settings", err)
	}

	update := &repositories.SettingsUpdate{
		Theme:         req.Theme,
		Language:      req.Language,
		Notifications: req.Notifications,
		Privacy:       req.Privacy,
	}
	if update.IsEmpty() {
		return nil, NewValidationError("no settings fields provided", nil)
	}

	settings, err := s.settings.Update(ctx, userID, update)
	if err != nil {
		return nil, NewInternalError("failed to update settings")
	}
	return settings, nil
}

// file: internal/repositories/settings_repository_test.go
package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var settingsTestColumns = []string{
	"user_id", "theme", "language", "notifications_enabled", "privacy_profile", "updated_at",
}

func TestSettingsRepository_GetOrCreate_SeedsDefaults(t *testing.T) {
	manager, mock := newMockManager(t)

	mock.ExpectQuery("FROM user_settings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(settingsTestColumns))
	mock.ExpectExec("INSERT INTO user_settings").
		WithArgs(int64(7), "light_nature", "en", true, "public").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("FROM user_settings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(settingsTestColumns).
			AddRow(int64(7), "light_nature", "en", true, "public", time.Now()))

	repo := NewSettingsRepository(manager, zap.NewNop())
	settings, err := repo.GetOrCreate(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "light_nature", settings.Theme)
	assert.Equal(t, "en", settings.Language)
	assert.True(t, settings.NotificationsEnabled)
	assert.Equal(t, "public", settings.PrivacyProfile)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Update_PartialFields(t *testing.T) {
	manager, mock := newMockManager(t)

	mock.ExpectQuery("FROM user_settings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(settingsTestColumns).
			AddRow(int64(7), "light_nature", "en", true, "public", time.Now()))

	theme := "dark_forest"
	notifications := false
	mock.ExpectQuery("UPDATE user_settings").
		WithArgs(int64(7), "dark_forest", nil, false, nil).
		WillReturnRows(sqlmock.NewRows(settingsTestColumns).
			AddRow(int64(7), "dark_forest", "en", false, "public", time.Now()))

	repo := NewSettingsRepository(manager, zap.NewNop())
	settings, err := repo.Update(context.Background(), 7, &SettingsUpdate{
		Theme:         &theme,
		Notifications: &notifications,
	})

	require.NoError(t, err)
	assert.Equal(t, "dark_forest", settings.Theme)
	assert.Equal(t, "en", settings.Language)
	assert.False(t, settings.NotificationsEnabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_Update_EmptyIsRead(t *testing.T) {
	manager, mock := newMockManager(t)

	mock.ExpectQuery("FROM user_settings").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(settingsTestColumns).
			AddRow(int64(7), "light_nature", "en", true, "public", time.Now()))

	repo := NewSettingsRepository(manager, zap.NewNop())
	settings, err := repo.Update(context.Background(), 7, &SettingsUpdate{})

	require.NoError(t, err)
	assert.Equal(t, "light_nature", settings.Theme)
	assert.NoError(t, mock.ExpectationsWereMet())
}

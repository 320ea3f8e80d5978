// file: internal/services/service_collection_test.go
package services

import (
	"testing"
	"time"

	"ecotrack/internal/cache"
	"ecotrack/internal/config"
	"ecotrack/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewServiceCollection(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	manager := database.NewManagerFromDB(db, zap.NewNop())

	memCache, err := cache.New(nil, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { memCache.Close() })

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret-key",
			TokenExpiry: time.Hour,
			Issuer:      "ecotrack",
		},
	}

	collection, err := NewServiceCollection(cfg, manager, memCache, zap.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, collection.AssessmentService)
	assert.NotNil(t, collection.ActionService)
	assert.NotNil(t, collection.RewardsService)
	assert.NotNil(t, collection.MarketplaceService)
	assert.NotNil(t, collection.SettingsService)
	assert.NotNil(t, collection.TokenService)
	assert.NotNil(t, collection.FileService)
	assert.NotNil(t, collection.Repositories)
	assert.NotNil(t, collection.EventBus)

	assert.NoError(t, collection.Shutdown())
}

func TestNewServiceCollection_RequiresDatabase(t *testing.T) {
	memCache, err := cache.New(nil, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { memCache.Close() })

	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret-key", TokenExpiry: time.Hour},
	}

	_, err = NewServiceCollection(cfg, nil, memCache, zap.NewNop())
	assert.Error(t, err)
}

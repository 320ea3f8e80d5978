// file: internal/repositories/collection.go
package repositories

import (
	"fmt"

	"ecotrack/internal/database"

	"go.uber.org/zap"
)

// Collection holds all repository instances for dependency injection
type Collection struct {
	User        UserRepository
	Assessment  AssessmentRepository
	Action      ActionRepository
	Rewards     RewardsRepository
	Marketplace MarketplaceRepository
	Settings    SettingsRepository

	db     *database.Manager
	logger *zap.Logger
}

// NewCollection creates a new repository collection with all dependencies
func NewCollection(db *database.Manager, logger *zap.Logger) (*Collection, error) {
	if db == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	collection := &Collection{
		db:     db,
		logger: logger,
	}

	collection.User = NewUserRepository(db, logger)
	collection.Assessment = NewAssessmentRepository(db, logger)
	collection.Action = NewActionRepository(db, logger)
	collection.Rewards = NewRewardsRepository(db, logger)
	collection.Marketplace = NewMarketplaceRepository(db, logger)
	collection.Settings = NewSettingsRepository(db, logger)

	logger.Info("Repository collection initialized")

	return collection, nil
}

// file: internal/services/service_collection.go
package services

import (
	"context"
	"fmt"

	"ecotrack/internal/cache"
	"ecotrack/internal/config"
	"ecotrack/internal/database"
	"ecotrack/internal/events"
	"ecotrack/internal/repositories"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// ServiceCollection holds all services with their dependencies wired
type ServiceCollection struct {
	// Core Services
	AssessmentService  AssessmentService  `json:"-"`
	ActionService      ActionService      `json:"-"`
	RewardsService     RewardsService     `json:"-"`
	MarketplaceService MarketplaceService `json:"-"`
	SettingsService    SettingsService    `json:"-"`

	// Infrastructure Services
	TokenService TokenService `json:"-"`
	FileService  FileService  `json:"-"`

	// Infrastructure Components
	Repositories *repositories.Collection `json:"-"`
	Cache        cache.Cache              `json:"-"`
	EventBus     events.EventBus          `json:"-"`
	Logger       *zap.Logger              `json:"-"`
	Config       *config.Config           `json:"-"`
	DBManager    *database.Manager        `json:"-"`
}

// NewServiceCollection wires repositories, infrastructure and services
func NewServiceCollection(
	cfg *config.Config,
	dbManager *database.Manager,
	cacheService cache.Cache,
	logger *zap.Logger,
) (*ServiceCollection, error) {
	repos, err := repositories.NewCollection(dbManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	eventBus := events.NewInMemoryEventBus(logger)

	tokenService := NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenExpiry)

	var fileService FileService
	if cfg.Cloudinary.CloudName != "" {
		cld, err := cloudinary.NewFromParams(
			cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
		}
		fileConfig := DefaultFileConfig()
		fileConfig.Folder = cfg.Cloudinary.UploadFolder
		fileConfig.MaxProofSize = cfg.Cloudinary.MaxFileSize
		fileService = NewFileService(cld, logger, fileConfig)
	} else {
		logger.Warn("Cloudinary not configured, proof uploads disabled")
		fileService = disabledFileService{}
	}

	collection := &ServiceCollection{
		AssessmentService:  NewAssessmentService(repos, tokenService, cacheService, eventBus, logger),
		ActionService:      NewActionService(repos, fileService, cacheService, eventBus, logger),
		RewardsService:     NewRewardsService(repos, cacheService, logger),
		MarketplaceService: NewMarketplaceService(repos, cacheService, eventBus, logger),
		SettingsService:    NewSettingsService(repos, logger),
		TokenService:       tokenService,
		FileService:        fileService,
		Repositories:       repos,
		Cache:              cacheService,
		EventBus:           eventBus,
		Logger:             logger,
		Config:             cfg,
		DBManager:          dbManager,
	}

	registerEventLogging(eventBus, logger)

	return collection, nil
}

// Shutdown releases resources held by the collection
func (s *ServiceCollection) Shutdown() error {
	return s.EventBus.Close()
}

// registerEventLogging subscribes an audit log consumer to the domain
// events the services publish.
func registerEventLogging(bus events.EventBus, logger *zap.Logger) {
	audit := logger.Named("audit")

	for _, eventType := range []string{
		events.TypeFootprintCalculated,
		events.TypeActionLogged,
		events.TypeActionVerified,
		events.TypeActionRejected,
		events.TypeBadgeCompleted,
		events.TypeRewardRedeemed,
	} {
		bus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			fields := []zap.Field{
				zap.String("event_id", event.GetEventID()),
				zap.Time("occurred_at", event.GetTimestamp()),
			}
			if userID := event.GetUserID(); userID != nil {
				fields = append(fields, zap.Int64("user_id", *userID))
			}
			audit.Info(event.GetEventType(), fields...)
			return nil
		})
	}
}

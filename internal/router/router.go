// file: internal/router/router.go
package router

import (
	"net/http"

	"ecotrack/internal/handlers/api/v1/actions"
	"ecotrack/internal/handlers/api/v1/footprint"
	"ecotrack/internal/handlers/api/v1/health"
	"ecotrack/internal/handlers/api/v1/marketplace"
	"ecotrack/internal/handlers/api/v1/rewards"
	"ecotrack/internal/handlers/api/v1/settings"
	"ecotrack/internal/middleware"
	"ecotrack/internal/monitoring"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// SetupRouter configures all HTTP routes and returns the main handler
func SetupRouter(collection *services.ServiceCollection, builder *response.Builder, metrics *monitoring.Collector, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.StructuredLogging(logger))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Recovery(logger, builder))
	r.Use(middleware.RateLimit(nil, builder, logger))
	r.Use(middleware.DeviceToken(collection.TokenService, logger))

	footprintController := footprint.NewController(collection, logger, builder)
	actionsController := actions.NewController(collection, logger, builder)
	marketplaceController := marketplace.NewController(collection, logger, builder)
	rewardsController := rewards.NewController(collection, logger, builder)
	settingsController := settings.NewController(collection, logger, builder)
	healthController := health.NewController(collection, metrics, logger, builder)

	r.Get("/health", healthController.Health)
	r.Get("/health/metrics", healthController.Metrics)

	// Swagger UI, served when the generated spec is present on disk
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, req, "./docs/swagger.json")
	})

	requireUser := middleware.RequireUser(builder)

	r.Route("/carbon-footprint", func(r chi.Router) {
		// Calculation is open so first-time users can onboard; the result
		// carries their device token.
		r.Post("/calculate", footprintController.Calculate)

		r.With(requireUser).Get("/current", footprintController.GetCurrent)
	})

	r.Route("/actions", func(r chi.Router) {
		r.Use(requireUser)
		r.Post("/", actionsController.LogAction)
		r.Get("/", actionsController.ListActions)
		r.Post("/proof", actionsController.UploadProof)
		r.Post("/{id}/verify", actionsController.VerifyAction)
	})

	r.Route("/marketplace", func(r chi.Router) {
		r.Get("/", marketplaceController.ListRewards)
		r.Get("/{id}", marketplaceController.GetReward)
		r.With(requireUser).Post("/", marketplaceController.Redeem)
	})

	r.Route("/rewards", func(r chi.Router) {
		r.Get("/badges", rewardsController.ListBadges)
		r.With(requireUser).Get("/", rewardsController.GetSummary)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", settingsController.GetSettings)
		r.Put("/", settingsController.UpdateSettings)
	})

	logger.Info("Router setup completed")

	return r
}

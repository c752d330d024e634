package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tedytech/backoffice-service/internal/api/http/handlers"
	"github.com/tedytech/backoffice-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Metrics        *handlers.MetricsHandler
	Demand         *handlers.DemandHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/access", cfg.Auth.Access)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/metrics/home", cfg.Metrics.Home)
	protected.Get("/metrics/demand", cfg.Demand.Metrics)
	protected.Post("/metrics/classify", cfg.Metrics.Classify)
	protected.Post("/demand/events", cfg.Demand.LogEvent)
}

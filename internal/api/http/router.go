package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-connection/internal/api/http/handlers"
	"github.com/spec-kit/ticket-connection/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Connections    *handlers.ConnectionHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Snapshot)
	}

	requireUser := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireUser()}
	app.Post("/connections/prepare", append(requireUser, cfg.Connections.Prepare)...)
	app.Get("/itservices/:id/service-types", append(requireUser, cfg.Connections.ServiceTypes)...)
}

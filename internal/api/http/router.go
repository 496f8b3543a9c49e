package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Restaurants *handlers.RestaurantsHandler
	Authorizer  *auth.RequestAuthorizer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api", cfg.Authorizer.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/google", cfg.Auth.Google)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", auth.RequireAuthenticated(), cfg.Auth.Me)

	restaurants := api.Group("/restaurants")
	restaurants.Get("/", auth.RequireReader(), cfg.Restaurants.List)
	restaurants.Get("/name/:name", auth.RequireReader(), cfg.Restaurants.GetByName)
	restaurants.Get("/location/:location", auth.RequireReader(), cfg.Restaurants.ListByLocation)
	restaurants.Get("/:id", auth.RequireReader(), cfg.Restaurants.Get)
	restaurants.Post("/", auth.RequireAdmin(), cfg.Restaurants.Create)
	restaurants.Put("/:id", auth.RequireAdmin(), cfg.Restaurants.Update)
	restaurants.Delete("/:id", auth.RequireAdmin(), cfg.Restaurants.Delete)
}

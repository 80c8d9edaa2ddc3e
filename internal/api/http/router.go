package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/volunteer-service/internal/api/http/handlers"
	"github.com/spec-kit/volunteer-service/internal/auth"
	"github.com/spec-kit/volunteer-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Events         *handlers.EventsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/profile", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.GetProfile)
	authGroup.Put("/profile", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.UpdateProfile)

	usersGroup := api.Group("/users", cfg.AuthMiddleware.Handle)
	usersGroup.Get("/volunteers", auth.RequireAuthenticated(), cfg.Users.VolunteerDirectory)
	usersGroup.Get("/pending", auth.RequireRole(domain.UserRoleAdmin), cfg.Users.ListPending)
	usersGroup.Get("/", auth.RequireRole(domain.UserRoleAdmin), cfg.Users.List)
	usersGroup.Get("/:id", auth.RequireRole(domain.UserRoleAdmin), cfg.Users.Get)
	usersGroup.Put("/:id/status", auth.RequireRole(domain.UserRoleAdmin), cfg.Users.UpdateStatus)
	usersGroup.Put("/:id", auth.RequireRole(domain.UserRoleAdmin), cfg.Users.Update)
	usersGroup.Delete("/:id", auth.RequireRole(domain.UserRoleAdmin), cfg.Users.Delete)

	eventsGroup := api.Group("/events", cfg.AuthMiddleware.Handle)
	eventsGroup.Post("/", auth.RequireRole(domain.UserRoleAdmin), cfg.Events.Create)
	eventsGroup.Get("/", auth.RequireAuthenticated(), cfg.Events.List)
	eventsGroup.Get("/:id", auth.RequireAuthenticated(), cfg.Events.Get)
	eventsGroup.Put("/:id", auth.RequireRole(domain.UserRoleAdmin), cfg.Events.Update)
	eventsGroup.Delete("/:id", auth.RequireRole(domain.UserRoleAdmin), cfg.Events.Delete)
	eventsGroup.Post("/:id/register", auth.RequireRole(domain.UserRoleVolunteer), cfg.Events.Register)
	eventsGroup.Post("/:id/unregister", auth.RequireRole(domain.UserRoleVolunteer), cfg.Events.Unregister)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/streaming-auth/internal/api/http/handlers"
	"github.com/spec-kit/streaming-auth/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	OAuth          *handlers.OAuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	userGroup := api.Group("/user")
	userGroup.Post("/signup", cfg.Auth.Signup)
	userGroup.Post("/login", cfg.Auth.Login)
	userGroup.Post("/logout", cfg.Auth.Logout)
	userGroup.Post("/user-info", cfg.AuthMiddleware.Handle, cfg.Auth.UserInfo)

	userGroup.Get("", cfg.Users.List)
	userGroup.Get("/:id", cfg.Users.Get)
	userGroup.Put("", cfg.Users.Update)
	userGroup.Delete("/:id", cfg.Users.Delete)

	oauthGroup := api.Group("/oauth")
	oauthGroup.Get("/login", cfg.OAuth.Login)
	oauthGroup.Get("/callback", cfg.OAuth.Callback)
}

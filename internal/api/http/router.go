package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexushub/internal/api/http/handlers"
	"github.com/spec-kit/nexushub/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Sessions       *handlers.SessionHandler
	Dashboard      *handlers.DashboardHandler
	Boards         *handlers.BoardsHandler
	Chat           *handlers.ChatHandler
	Activity       *handlers.ActivityHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	requireSession := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireAuthenticated()}

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Sessions.Login)
	session := authGroup.Group("", requireSession...)
	session.Post("/logout", cfg.Sessions.Logout)
	session.Get("/me", cfg.Sessions.Me)

	dashboard := app.Group("/dashboard", requireSession...)
	dashboard.Get("", cfg.Dashboard.Dashboard)
	dashboard.Get("/tabs/:tab", cfg.Dashboard.Tab)

	boards := app.Group("/boards", requireSession...)
	boards.Patch("/bulletin/:id/pin", cfg.Boards.TogglePin)
	boards.Post("/bulletin/draft/assist", cfg.Boards.AssistBulletin)
	boards.Get("/calendar/week", cfg.Boards.Week)
	boards.Post("/calendar/slot", cfg.Boards.SelectSlot)
	boards.Post("/calendar/draft/assist", cfg.Boards.AssistCalendar)
	boards.Post("/reshipments/:id/email-draft", cfg.Boards.ReshipmentEmail)
	boards.Post("/employees/:id/chat", cfg.Chat.Open)
	cfg.Boards.Mount(boards)

	chat := app.Group("/chat", requireSession...)
	chat.Get("", cfg.Chat.Get)
	chat.Put("/input", cfg.Chat.SetInput)
	chat.Post("/messages", cfg.Chat.Send)
	chat.Post("/suggest", cfg.Chat.Suggest)
	chat.Delete("", cfg.Chat.Close)

	activity := app.Group("/activity", requireSession...)
	activity.Get("", auth.RequireAdmin(), cfg.Activity.List)
}

package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth routes
	s.echo.GET("/auth/login", s.handleLogin)
	s.echo.GET("/auth/callback", s.handleOAuthCallback)

	csrf := middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token",
		CookieName:     "_csrf",
		CookieHTTPOnly: false,
		CookieSecure:   s.config.AppEnv == "production",
	})

	s.echo.POST("/auth/logout", s.handleLogout, s.requireAuth, csrf)

	// JSON API (authenticated + CSRF protected)
	api := s.echo.Group("/api", s.requireAuth, csrf)

	api.GET("/me", s.handleMe)

	api.GET("/guilds", s.handleSyncGuilds)
	api.GET("/guilds/:id", s.handleGetGuild)
	api.PUT("/guilds/:id/settings", s.handleUpdateGuildSettings)
	api.DELETE("/guilds/:id", s.handleDeleteGuild)

	api.GET("/guilds/:id/events", s.handleListEvents)
	api.POST("/guilds/:id/events", s.handleCreateEvent)
	api.GET("/events/:id", s.handleGetEvent)
	api.PATCH("/events/:id", s.handleUpdateEvent)
	api.DELETE("/events/:id", s.handleDeleteEvent)

	api.GET("/guilds/:id/forms", s.handleListForms)
	api.POST("/guilds/:id/forms", s.handleCreateForm)
	api.GET("/forms/:id", s.handleGetForm)
	api.PATCH("/forms/:id", s.handleUpdateForm)
	api.DELETE("/forms/:id", s.handleDeleteForm)

	api.GET("/guilds/:id/giveaways", s.handleListGiveaways)
	api.POST("/guilds/:id/giveaways", s.handleCreateGiveaway)
	api.GET("/giveaways/:id", s.handleGetGiveaway)
	api.PATCH("/giveaways/:id", s.handleUpdateGiveaway)
	api.DELETE("/giveaways/:id", s.handleDeleteGiveaway)

	api.GET("/guilds/:id/streams", s.handleListStreams)
	api.POST("/guilds/:id/streams", s.handleCreateStream)
	api.GET("/streams/:id", s.handleGetStream)
	api.PATCH("/streams/:id", s.handleUpdateStream)
	api.DELETE("/streams/:id", s.handleDeleteStream)
}

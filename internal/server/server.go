package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/BubbleXIV/dashboard-new/internal/app"
	"github.com/BubbleXIV/dashboard-new/internal/config"
	"github.com/BubbleXIV/dashboard-new/internal/discord"
	apperrors "github.com/BubbleXIV/dashboard-new/internal/errors"
)

// Session keys
const (
	sessionName          = "dashboard-session"
	sessionKeyUserID     = "user_id"
	sessionKeyOAuthState = "oauth_state"
	sessionMaxAgeDays    = 7
)

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	app          *app.Service
	oauth        discord.OAuthClient
	roster       discord.RosterClient
	clock        clockwork.Clock
	sessionStore *sessions.CookieStore
}

func NewServer(cfg *config.Config, appSvc *app.Service, oauth discord.OAuthClient, roster discord.RosterClient, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * sessionMaxAgeDays,
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          appSvc,
		oauth:        oauth,
		roster:       roster,
		clock:        clock,
		sessionStore: sessionStore,
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

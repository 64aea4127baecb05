package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/BubbleXIV/dashboard-new/internal/discord"
	"github.com/BubbleXIV/dashboard-new/internal/domain"
	apperrors "github.com/BubbleXIV/dashboard-new/internal/errors"
	"github.com/BubbleXIV/dashboard-new/internal/logging"
)

const (
	oauthTimeout = 10 * time.Second

	// Refresh the Discord token when it expires within this window.
	tokenRefreshLeeway = 60 * time.Second
)

// userResponse is the public view of a user record. Tokens never leave the
// server.
type userResponse struct {
	ID            string    `json:"id"`
	DiscordID     string    `json:"discord_id"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	Avatar        string    `json:"avatar"`
	CreatedAt     time.Time `json:"created_at"`
}

func newUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:            user.ID,
		DiscordID:     user.DiscordID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		Avatar:        user.Avatar,
		CreatedAt:     user.CreatedAt,
	}
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			return c.Redirect(302, "/auth/login")
		}

		userID, ok := session.Values[sessionKeyUserID].(string)
		if !ok || userID == "" {
			return c.Redirect(302, "/auth/login")
		}

		if _, found := s.app.GetUser(c.Request().Context(), userID); !found {
			return c.Redirect(302, "/auth/login")
		}

		c.Set("userID", userID)
		return next(c)
	}
}

func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate OAuth state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *Server) handleLogin(c echo.Context) error {
	state, err := generateOAuthState()
	if err != nil {
		return apperrors.InternalError("failed to start login", err)
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		slog.Warn("Failed to get session for OAuth state", "error", err)
	}
	session.Values[sessionKeyOAuthState] = state
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to save session", err)
	}

	return c.Redirect(302, discord.AuthorizeURL(s.config.DiscordClientID, s.config.DiscordRedirectURI, state))
}

func (s *Server) handleOAuthCallback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return apperrors.ValidationError("missing code parameter")
	}

	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		return apperrors.ValidationError("invalid session")
	}
	expectedState, ok := session.Values[sessionKeyOAuthState].(string)
	if !ok || expectedState == "" {
		return apperrors.ValidationError("missing OAuth state")
	}
	if c.QueryParam("state") != expectedState {
		return apperrors.ValidationError("invalid OAuth state")
	}
	delete(session.Values, sessionKeyOAuthState)

	ctx, cancel := context.WithTimeout(c.Request().Context(), oauthTimeout)
	defer cancel()

	result, err := s.oauth.ExchangeCode(ctx, code)
	if err != nil {
		return apperrors.ExternalError("failed to authenticate with discord", err)
	}

	tokenExpiry := s.clock.Now().UTC().Add(time.Duration(result.ExpiresIn) * time.Second)
	user, err := s.app.UpsertUser(ctx, result.DiscordID, result.Username, result.Discriminator, result.Avatar, result.AccessToken, result.RefreshToken, tokenExpiry)
	if err != nil {
		return apperrors.InternalError("failed to save user", err)
	}

	session.Values[sessionKeyUserID] = user.ID
	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to save session", err)
	}

	return c.Redirect(302, "/")
}

func (s *Server) handleLogout(c echo.Context) error {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		logging.WithError(err).Warn("Failed to get session during logout")
		session, err = s.sessionStore.New(c.Request(), sessionName)
		if err != nil {
			slog.Error("Failed to create new session during logout", "error", err)
		}
	}
	session.Options.MaxAge = -1

	if err := session.Save(c.Request(), c.Response().Writer); err != nil {
		return apperrors.InternalError("failed to clear session", err)
	}

	return c.Redirect(302, "/auth/login")
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(200, newUserResponse(user))
}

// currentUser loads the authenticated user set by requireAuth.
func (s *Server) currentUser(c echo.Context) (domain.User, error) {
	userID, ok := c.Get("userID").(string)
	if !ok {
		return domain.User{}, apperrors.InternalError("invalid user ID in context", nil)
	}

	user, found := s.app.GetUser(c.Request().Context(), userID)
	if !found {
		return domain.User{}, apperrors.NotFoundError("user not found").WithField("user_id", userID)
	}
	return user, nil
}

// freshAccessToken returns a usable Discord access token for the user,
// refreshing and persisting it first when it is about to expire.
func (s *Server) freshAccessToken(ctx context.Context, user domain.User) (string, error) {
	if s.clock.Now().UTC().Add(tokenRefreshLeeway).Before(user.TokenExpiry) {
		return user.AccessToken, nil
	}

	result, err := s.oauth.Refresh(ctx, user.RefreshToken)
	if err != nil {
		return "", apperrors.ExternalError("failed to refresh discord token", err).WithField("user_id", user.ID)
	}

	tokenExpiry := s.clock.Now().UTC().Add(time.Duration(result.ExpiresIn) * time.Second)
	if _, _, err := s.app.UpdateUserTokens(ctx, user.ID, result.AccessToken, result.RefreshToken, tokenExpiry); err != nil {
		return "", apperrors.InternalError("failed to store refreshed token", err).WithField("user_id", user.ID)
	}
	return result.AccessToken, nil
}

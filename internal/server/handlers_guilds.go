package server

import (
	"github.com/labstack/echo/v4"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	apperrors "github.com/BubbleXIV/dashboard-new/internal/errors"
	"github.com/BubbleXIV/dashboard-new/internal/logging"
)

// handleSyncGuilds fetches the caller's guild roster from Discord,
// reconciles it into the store, and returns the guilds the caller
// administers.
func (s *Server) handleSyncGuilds(c echo.Context) error {
	user, err := s.currentUser(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()

	token, err := s.freshAccessToken(ctx, user)
	if err != nil {
		return err
	}

	roster, err := s.roster.FetchRoster(ctx, token)
	if err != nil {
		return apperrors.ExternalError("failed to fetch guilds from discord", err).WithField("user_id", user.ID)
	}

	guilds, err := s.app.SyncGuilds(ctx, user.DiscordID, roster)
	if err != nil {
		return apperrors.InternalError("failed to sync guilds", err).WithField("user_id", user.ID)
	}

	logging.WithUser(user.ID).Info("Guild roster synced", "roster_size", len(roster), "administered", len(guilds))
	return c.JSON(200, guilds)
}

func (s *Server) handleGetGuild(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}
	return c.JSON(200, guild)
}

// handleUpdateGuildSettings replaces the guild's settings document. Partial
// settings updates are not supported: the client always sends the full
// document.
func (s *Server) handleUpdateGuildSettings(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}

	var settings domain.GuildSettings
	if err := c.Bind(&settings); err != nil {
		return apperrors.ValidationError("invalid settings payload")
	}

	updated, _, err := s.app.UpdateGuild(c.Request().Context(), guild.ID, domain.GuildPartial{Settings: &settings})
	if err != nil {
		return apperrors.InternalError("failed to save guild settings", err).WithField("guild_id", guild.ID)
	}
	return c.JSON(200, updated)
}

func (s *Server) handleDeleteGuild(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}

	if _, err := s.app.DeleteGuild(c.Request().Context(), guild.ID); err != nil {
		return apperrors.InternalError("failed to delete guild", err).WithField("guild_id", guild.ID)
	}

	logging.WithGuild(guild.ID).Info("Guild removed from dashboard")
	return c.NoContent(204)
}

// guildFromPath resolves the :id path parameter to a stored guild.
func (s *Server) guildFromPath(c echo.Context) (domain.Guild, error) {
	id := c.Param("id")
	guild, found := s.app.GetGuild(c.Request().Context(), id)
	if !found {
		return domain.Guild{}, apperrors.NotFoundError("guild not found").WithField("guild_id", id)
	}
	return guild, nil
}

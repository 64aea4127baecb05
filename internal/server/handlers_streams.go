package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	apperrors "github.com/BubbleXIV/dashboard-new/internal/errors"
)

func (s *Server) handleListStreams(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}
	return c.JSON(200, s.app.ListStreams(c.Request().Context(), guild.ID))
}

func (s *Server) handleCreateStream(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}

	var partial domain.StreamSubscriptionPartial
	if err := c.Bind(&partial); err != nil {
		return apperrors.ValidationError("invalid stream subscription payload")
	}
	if partial.Streamer == nil || strings.TrimSpace(*partial.Streamer) == "" {
		return apperrors.ValidationError("streamer login is required")
	}
	partial.GuildID = &guild.ID

	// The poller owns the live status fields.
	partial.Live = nil
	partial.ViewerCount = nil
	partial.Game = nil
	partial.Title = nil
	partial.LastChecked = nil

	sub, err := s.app.CreateStream(c.Request().Context(), partial)
	if err != nil {
		return apperrors.InternalError("failed to create stream subscription", err).WithField("guild_id", guild.ID)
	}
	return c.JSON(201, sub)
}

func (s *Server) handleGetStream(c echo.Context) error {
	id := c.Param("id")
	sub, found := s.app.GetStream(c.Request().Context(), id)
	if !found {
		return apperrors.NotFoundError("stream subscription not found").WithField("subscription_id", id)
	}
	return c.JSON(200, sub)
}

func (s *Server) handleUpdateStream(c echo.Context) error {
	id := c.Param("id")

	var partial domain.StreamSubscriptionPartial
	if err := c.Bind(&partial); err != nil {
		return apperrors.ValidationError("invalid stream subscription payload")
	}
	if partial.Streamer != nil && strings.TrimSpace(*partial.Streamer) == "" {
		return apperrors.ValidationError("streamer login cannot be empty")
	}
	partial.GuildID = nil // records never move between guilds

	// The poller owns the live status fields.
	partial.Live = nil
	partial.ViewerCount = nil
	partial.Game = nil
	partial.Title = nil
	partial.LastChecked = nil

	sub, found, err := s.app.UpdateStream(c.Request().Context(), id, partial)
	if err != nil {
		return apperrors.InternalError("failed to update stream subscription", err).WithField("subscription_id", id)
	}
	if !found {
		return apperrors.NotFoundError("stream subscription not found").WithField("subscription_id", id)
	}
	return c.JSON(200, sub)
}

func (s *Server) handleDeleteStream(c echo.Context) error {
	id := c.Param("id")
	found, err := s.app.DeleteStream(c.Request().Context(), id)
	if err != nil {
		return apperrors.InternalError("failed to delete stream subscription", err).WithField("subscription_id", id)
	}
	if !found {
		return apperrors.NotFoundError("stream subscription not found").WithField("subscription_id", id)
	}
	return c.NoContent(204)
}

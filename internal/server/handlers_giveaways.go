package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	apperrors "github.com/BubbleXIV/dashboard-new/internal/errors"
)

func (s *Server) handleListGiveaways(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}
	return c.JSON(200, s.app.ListGiveaways(c.Request().Context(), guild.ID))
}

func (s *Server) handleCreateGiveaway(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}

	var partial domain.GiveawayPartial
	if err := c.Bind(&partial); err != nil {
		return apperrors.ValidationError("invalid giveaway payload")
	}
	if partial.Title == nil || strings.TrimSpace(*partial.Title) == "" {
		return apperrors.ValidationError("giveaway title is required")
	}
	if partial.WinnerCount != nil && *partial.WinnerCount < 1 {
		return apperrors.ValidationError("winner count must be at least 1")
	}
	partial.GuildID = &guild.ID

	giveaway, err := s.app.CreateGiveaway(c.Request().Context(), partial)
	if err != nil {
		return apperrors.InternalError("failed to create giveaway", err).WithField("guild_id", guild.ID)
	}
	return c.JSON(201, giveaway)
}

func (s *Server) handleGetGiveaway(c echo.Context) error {
	id := c.Param("id")
	giveaway, found := s.app.GetGiveaway(c.Request().Context(), id)
	if !found {
		return apperrors.NotFoundError("giveaway not found").WithField("giveaway_id", id)
	}
	return c.JSON(200, giveaway)
}

func (s *Server) handleUpdateGiveaway(c echo.Context) error {
	id := c.Param("id")

	var partial domain.GiveawayPartial
	if err := c.Bind(&partial); err != nil {
		return apperrors.ValidationError("invalid giveaway payload")
	}
	if partial.WinnerCount != nil && *partial.WinnerCount < 1 {
		return apperrors.ValidationError("winner count must be at least 1")
	}
	partial.GuildID = nil // records never move between guilds

	giveaway, found, err := s.app.UpdateGiveaway(c.Request().Context(), id, partial)
	if err != nil {
		return apperrors.InternalError("failed to update giveaway", err).WithField("giveaway_id", id)
	}
	if !found {
		return apperrors.NotFoundError("giveaway not found").WithField("giveaway_id", id)
	}
	return c.JSON(200, giveaway)
}

func (s *Server) handleDeleteGiveaway(c echo.Context) error {
	id := c.Param("id")
	found, err := s.app.DeleteGiveaway(c.Request().Context(), id)
	if err != nil {
		return apperrors.InternalError("failed to delete giveaway", err).WithField("giveaway_id", id)
	}
	if !found {
		return apperrors.NotFoundError("giveaway not found").WithField("giveaway_id", id)
	}
	return c.NoContent(204)
}

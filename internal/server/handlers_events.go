package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	apperrors "github.com/BubbleXIV/dashboard-new/internal/errors"
)

func (s *Server) handleListEvents(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}
	return c.JSON(200, s.app.ListEvents(c.Request().Context(), guild.ID))
}

func (s *Server) handleCreateEvent(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}

	var partial domain.AttendanceEventPartial
	if err := c.Bind(&partial); err != nil {
		return apperrors.ValidationError("invalid event payload")
	}
	if partial.Name == nil || strings.TrimSpace(*partial.Name) == "" {
		return apperrors.ValidationError("event name is required")
	}
	partial.GuildID = &guild.ID

	event, err := s.app.CreateEvent(c.Request().Context(), partial)
	if err != nil {
		return apperrors.InternalError("failed to create event", err).WithField("guild_id", guild.ID)
	}
	return c.JSON(201, event)
}

func (s *Server) handleGetEvent(c echo.Context) error {
	id := c.Param("id")
	event, found := s.app.GetEvent(c.Request().Context(), id)
	if !found {
		return apperrors.NotFoundError("event not found").WithField("event_id", id)
	}
	return c.JSON(200, event)
}

func (s *Server) handleUpdateEvent(c echo.Context) error {
	id := c.Param("id")

	var partial domain.AttendanceEventPartial
	if err := c.Bind(&partial); err != nil {
		return apperrors.ValidationError("invalid event payload")
	}
	partial.GuildID = nil // records never move between guilds

	event, found, err := s.app.UpdateEvent(c.Request().Context(), id, partial)
	if err != nil {
		return apperrors.InternalError("failed to update event", err).WithField("event_id", id)
	}
	if !found {
		return apperrors.NotFoundError("event not found").WithField("event_id", id)
	}
	return c.JSON(200, event)
}

func (s *Server) handleDeleteEvent(c echo.Context) error {
	id := c.Param("id")
	found, err := s.app.DeleteEvent(c.Request().Context(), id)
	if err != nil {
		return apperrors.InternalError("failed to delete event", err).WithField("event_id", id)
	}
	if !found {
		return apperrors.NotFoundError("event not found").WithField("event_id", id)
	}
	return c.NoContent(204)
}

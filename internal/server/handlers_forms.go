package server

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	apperrors "github.com/BubbleXIV/dashboard-new/internal/errors"
)

var validQuestionTypes = map[domain.QuestionType]bool{
	domain.QuestionShortText:    true,
	domain.QuestionLongText:     true,
	domain.QuestionSingleSelect: true,
	domain.QuestionMultiSelect:  true,
}

func validateQuestions(questions []domain.FormQuestion) error {
	for _, q := range questions {
		if !validQuestionTypes[q.Type] {
			return apperrors.ValidationError("unknown question type").WithField("type", string(q.Type))
		}
		if strings.TrimSpace(q.Prompt) == "" {
			return apperrors.ValidationError("question prompt is required")
		}
	}
	return nil
}

func (s *Server) handleListForms(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}
	return c.JSON(200, s.app.ListForms(c.Request().Context(), guild.ID))
}

func (s *Server) handleCreateForm(c echo.Context) error {
	guild, err := s.guildFromPath(c)
	if err != nil {
		return err
	}

	var partial domain.FormPartial
	if err := c.Bind(&partial); err != nil {
		return apperrors.ValidationError("invalid form payload")
	}
	if partial.Name == nil || strings.TrimSpace(*partial.Name) == "" {
		return apperrors.ValidationError("form name is required")
	}
	if partial.Questions != nil {
		if err := validateQuestions(*partial.Questions); err != nil {
			return err
		}
	}
	partial.GuildID = &guild.ID

	form, err := s.app.CreateForm(c.Request().Context(), partial)
	if err != nil {
		return apperrors.InternalError("failed to create form", err).WithField("guild_id", guild.ID)
	}
	return c.JSON(201, form)
}

func (s *Server) handleGetForm(c echo.Context) error {
	id := c.Param("id")
	form, found := s.app.GetForm(c.Request().Context(), id)
	if !found {
		return apperrors.NotFoundError("form not found").WithField("form_id", id)
	}
	return c.JSON(200, form)
}

func (s *Server) handleUpdateForm(c echo.Context) error {
	id := c.Param("id")

	var partial domain.FormPartial
	if err := c.Bind(&partial); err != nil {
		return apperrors.ValidationError("invalid form payload")
	}
	if partial.Questions != nil {
		if err := validateQuestions(*partial.Questions); err != nil {
			return err
		}
	}
	partial.GuildID = nil // records never move between guilds

	form, found, err := s.app.UpdateForm(c.Request().Context(), id, partial)
	if err != nil {
		return apperrors.InternalError("failed to update form", err).WithField("form_id", id)
	}
	if !found {
		return apperrors.NotFoundError("form not found").WithField("form_id", id)
	}
	return c.JSON(200, form)
}

func (s *Server) handleDeleteForm(c echo.Context) error {
	id := c.Param("id")
	found, err := s.app.DeleteForm(c.Request().Context(), id)
	if err != nil {
		return apperrors.InternalError("failed to delete form", err).WithField("form_id", id)
	}
	if !found {
		return apperrors.NotFoundError("form not found").WithField("form_id", id)
	}
	return c.NoContent(204)
}

package domain

import "time"

type QuestionType string

const (
	QuestionShortText    QuestionType = "short_text"
	QuestionLongText     QuestionType = "long_text"
	QuestionSingleSelect QuestionType = "single_select"
	QuestionMultiSelect  QuestionType = "multi_select"
)

type Form struct {
	ID          string         `json:"id"`
	GuildID     string         `json:"guild_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Questions   []FormQuestion `json:"questions"`
	Responses   []FormResponse `json:"responses"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (f Form) RecordID() string { return f.ID }

type FormQuestion struct {
	ID       string       `json:"id"`
	Type     QuestionType `json:"type"`
	Prompt   string       `json:"prompt"`
	Required bool         `json:"required"`
	Options  []string     `json:"options,omitempty"`
}

type FormResponse struct {
	UserID      string            `json:"user_id"`
	Username    string            `json:"username"`
	Answers     map[string]string `json:"answers"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

type FormPartial struct {
	GuildID     *string         `json:"guild_id,omitempty"`
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Questions   *[]FormQuestion `json:"questions,omitempty"`
	Responses   *[]FormResponse `json:"responses,omitempty"`
	Active      *bool           `json:"active,omitempty"`
}

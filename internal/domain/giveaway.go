package domain

import "time"

type Giveaway struct {
	ID          string          `json:"id"`
	GuildID     string          `json:"guild_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Prize       string          `json:"prize"`
	WinnerCount int             `json:"winner_count"`
	EndsAt      time.Time       `json:"ends_at"`
	Entries     []GiveawayEntry `json:"entries"`
	Winners     []GiveawayEntry `json:"winners"`
	ChannelID   string          `json:"channel_id"`
	MessageID   string          `json:"message_id"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (g Giveaway) RecordID() string { return g.ID }

type GiveawayEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type GiveawayPartial struct {
	GuildID     *string          `json:"guild_id,omitempty"`
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Prize       *string          `json:"prize,omitempty"`
	WinnerCount *int             `json:"winner_count,omitempty"`
	EndsAt      *time.Time       `json:"ends_at,omitempty"`
	Entries     *[]GiveawayEntry `json:"entries,omitempty"`
	Winners     *[]GiveawayEntry `json:"winners,omitempty"`
	ChannelID   *string          `json:"channel_id,omitempty"`
	MessageID   *string          `json:"message_id,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

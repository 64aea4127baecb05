package domain

import "time"

type Guild struct {
	ID          string        `json:"id"`
	DiscordID   string        `json:"discord_id"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	OwnerID     string        `json:"owner_id"`
	MemberCount int           `json:"member_count"`
	BotJoined   bool          `json:"bot_joined"`
	Settings    GuildSettings `json:"settings"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (g Guild) RecordID() string { return g.ID }

// GuildSettings is the free-form per-guild bot configuration document.
// Updates replace the whole document, never merge into it.
type GuildSettings struct {
	Prefix       string      `json:"prefix"`
	AutoDelete   bool        `json:"auto_delete"`
	DMResponses  bool        `json:"dm_responses"`
	LogChannelID string      `json:"log_channel_id"`
	LogSettings  LogSettings `json:"log_settings"`
}

type LogSettings struct {
	MemberEvents  bool `json:"member_events"`
	MessageEvents bool `json:"message_events"`
	RoleEvents    bool `json:"role_events"`
}

type GuildPartial struct {
	DiscordID   *string        `json:"discord_id,omitempty"`
	Name        *string        `json:"name,omitempty"`
	Icon        *string        `json:"icon,omitempty"`
	OwnerID     *string        `json:"owner_id,omitempty"`
	MemberCount *int           `json:"member_count,omitempty"`
	BotJoined   *bool          `json:"bot_joined,omitempty"`
	Settings    *GuildSettings `json:"settings,omitempty"`
}

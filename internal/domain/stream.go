package domain

import "time"

// StreamSubscription tracks one monitored Twitch streamer for a guild. The
// live status fields are overwritten by the poller on every check.
type StreamSubscription struct {
	ID            string    `json:"id"`
	GuildID       string    `json:"guild_id"`
	Streamer      string    `json:"streamer"`
	Live          bool      `json:"live"`
	ViewerCount   int       `json:"viewer_count"`
	Game          string    `json:"game"`
	Title         string    `json:"title"`
	LastChecked   time.Time `json:"last_checked"`
	NotifyChannel string    `json:"notify_channel"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s StreamSubscription) RecordID() string { return s.ID }

type StreamSubscriptionPartial struct {
	GuildID       *string    `json:"guild_id,omitempty"`
	Streamer      *string    `json:"streamer,omitempty"`
	Live          *bool      `json:"live,omitempty"`
	ViewerCount   *int       `json:"viewer_count,omitempty"`
	Game          *string    `json:"game,omitempty"`
	Title         *string    `json:"title,omitempty"`
	LastChecked   *time.Time `json:"last_checked,omitempty"`
	NotifyChannel *string    `json:"notify_channel,omitempty"`
}

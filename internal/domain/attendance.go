package domain

import "time"

type AttendanceEvent struct {
	ID          string      `json:"id"`
	GuildID     string      `json:"guild_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	EventDate   time.Time   `json:"event_date"`
	Recurring   bool        `json:"recurring"`
	Roles       []EventRole `json:"roles"`
	Attendees   []Attendee  `json:"attendees"`
	ChannelID   string      `json:"channel_id"`
	MessageID   string      `json:"message_id"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (e AttendanceEvent) RecordID() string { return e.ID }

// EventRole is one role-requirement slot on an attendance event.
type EventRole struct {
	Name     string `json:"name"`
	Required int    `json:"required"`
	Current  int    `json:"current"`
}

type Attendee struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AttendanceEventPartial struct {
	GuildID     *string      `json:"guild_id,omitempty"`
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	EventDate   *time.Time   `json:"event_date,omitempty"`
	Recurring   *bool        `json:"recurring,omitempty"`
	Roles       *[]EventRole `json:"roles,omitempty"`
	Attendees   *[]Attendee  `json:"attendees,omitempty"`
	ChannelID   *string      `json:"channel_id,omitempty"`
	MessageID   *string      `json:"message_id,omitempty"`
}

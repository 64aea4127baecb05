package store

import (
	"time"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
)

// This file is the default materializer: one construct function per entity
// kind turning a partial into a complete record (absent optional fields get
// type-correct defaults), and one merge function applying only the supplied
// fields of a partial onto an existing record. Both are pure; slices are
// copied so stored records never alias caller memory.

// value returns the pointee or the zero value.
func value[T any](p *T) T {
	if p != nil {
		return *p
	}
	var zero T
	return zero
}

// valueOr returns the pointee or the given default.
func valueOr[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}

// copied returns a copy of the pointed-to slice, or an empty non-nil slice.
func copied[T any](p *[]T) []T {
	if p == nil {
		return []T{}
	}
	return append([]T{}, *p...)
}

// set overwrites dst when src is supplied.
func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// setSlice overwrites dst with a copy of src when supplied.
func setSlice[T any](dst *[]T, src *[]T) {
	if src != nil {
		*dst = append([]T{}, *src...)
	}
}

func newUser(id string, now time.Time, p domain.UserPartial) domain.User {
	return domain.User{
		ID:            id,
		DiscordID:     value(p.DiscordID),
		Username:      value(p.Username),
		Discriminator: value(p.Discriminator),
		Avatar:        value(p.Avatar),
		AccessToken:   value(p.AccessToken),
		RefreshToken:  value(p.RefreshToken),
		TokenExpiry:   value(p.TokenExpiry),
		CreatedAt:     now,
	}
}

func mergeUser(u domain.User, p domain.UserPartial) domain.User {
	set(&u.DiscordID, p.DiscordID)
	set(&u.Username, p.Username)
	set(&u.Discriminator, p.Discriminator)
	set(&u.Avatar, p.Avatar)
	set(&u.AccessToken, p.AccessToken)
	set(&u.RefreshToken, p.RefreshToken)
	set(&u.TokenExpiry, p.TokenExpiry)
	return u
}

func newGuild(id string, now time.Time, p domain.GuildPartial) domain.Guild {
	return domain.Guild{
		ID:          id,
		DiscordID:   value(p.DiscordID),
		Name:        value(p.Name),
		Icon:        value(p.Icon),
		OwnerID:     value(p.OwnerID),
		MemberCount: value(p.MemberCount),
		BotJoined:   value(p.BotJoined),
		Settings:    value(p.Settings),
		CreatedAt:   now,
	}
}

func mergeGuild(g domain.Guild, p domain.GuildPartial) domain.Guild {
	set(&g.DiscordID, p.DiscordID)
	set(&g.Name, p.Name)
	set(&g.Icon, p.Icon)
	set(&g.OwnerID, p.OwnerID)
	set(&g.MemberCount, p.MemberCount)
	set(&g.BotJoined, p.BotJoined)
	// Whole-document replacement: a supplied settings document wins even if
	// some of its nested fields are zero.
	set(&g.Settings, p.Settings)
	return g
}

func newEvent(id string, now time.Time, p domain.AttendanceEventPartial) domain.AttendanceEvent {
	return domain.AttendanceEvent{
		ID:          id,
		GuildID:     value(p.GuildID),
		Name:        value(p.Name),
		Description: value(p.Description),
		EventDate:   value(p.EventDate),
		Recurring:   value(p.Recurring),
		Roles:       copied(p.Roles),
		Attendees:   copied(p.Attendees),
		ChannelID:   value(p.ChannelID),
		MessageID:   value(p.MessageID),
		CreatedAt:   now,
	}
}

func mergeEvent(e domain.AttendanceEvent, p domain.AttendanceEventPartial) domain.AttendanceEvent {
	set(&e.GuildID, p.GuildID)
	set(&e.Name, p.Name)
	set(&e.Description, p.Description)
	set(&e.EventDate, p.EventDate)
	set(&e.Recurring, p.Recurring)
	setSlice(&e.Roles, p.Roles)
	setSlice(&e.Attendees, p.Attendees)
	set(&e.ChannelID, p.ChannelID)
	set(&e.MessageID, p.MessageID)
	return e
}

func newForm(id string, now time.Time, p domain.FormPartial) domain.Form {
	return domain.Form{
		ID:          id,
		GuildID:     value(p.GuildID),
		Name:        value(p.Name),
		Description: value(p.Description),
		Questions:   copied(p.Questions),
		Responses:   copied(p.Responses),
		Active:      value(p.Active),
		CreatedAt:   now,
	}
}

func mergeForm(f domain.Form, p domain.FormPartial) domain.Form {
	set(&f.GuildID, p.GuildID)
	set(&f.Name, p.Name)
	set(&f.Description, p.Description)
	setSlice(&f.Questions, p.Questions)
	setSlice(&f.Responses, p.Responses)
	set(&f.Active, p.Active)
	return f
}

func newGiveaway(id string, now time.Time, p domain.GiveawayPartial) domain.Giveaway {
	return domain.Giveaway{
		ID:          id,
		GuildID:     value(p.GuildID),
		Title:       value(p.Title),
		Description: value(p.Description),
		Prize:       value(p.Prize),
		WinnerCount: value(p.WinnerCount),
		EndsAt:      value(p.EndsAt),
		Entries:     copied(p.Entries),
		Winners:     copied(p.Winners),
		ChannelID:   value(p.ChannelID),
		MessageID:   value(p.MessageID),
		Active:      value(p.Active),
		CreatedAt:   now,
	}
}

func mergeGiveaway(g domain.Giveaway, p domain.GiveawayPartial) domain.Giveaway {
	set(&g.GuildID, p.GuildID)
	set(&g.Title, p.Title)
	set(&g.Description, p.Description)
	set(&g.Prize, p.Prize)
	set(&g.WinnerCount, p.WinnerCount)
	set(&g.EndsAt, p.EndsAt)
	setSlice(&g.Entries, p.Entries)
	setSlice(&g.Winners, p.Winners)
	set(&g.ChannelID, p.ChannelID)
	set(&g.MessageID, p.MessageID)
	set(&g.Active, p.Active)
	return g
}

func newStream(id string, now time.Time, p domain.StreamSubscriptionPartial) domain.StreamSubscription {
	return domain.StreamSubscription{
		ID:            id,
		GuildID:       value(p.GuildID),
		Streamer:      value(p.Streamer),
		Live:          value(p.Live),
		ViewerCount:   value(p.ViewerCount),
		Game:          value(p.Game),
		Title:         value(p.Title),
		LastChecked:   valueOr(p.LastChecked, now),
		NotifyChannel: value(p.NotifyChannel),
		CreatedAt:     now,
	}
}

func mergeStream(s domain.StreamSubscription, p domain.StreamSubscriptionPartial) domain.StreamSubscription {
	set(&s.GuildID, p.GuildID)
	set(&s.Streamer, p.Streamer)
	set(&s.Live, p.Live)
	set(&s.ViewerCount, p.ViewerCount)
	set(&s.Game, p.Game)
	set(&s.Title, p.Title)
	set(&s.LastChecked, p.LastChecked)
	set(&s.NotifyChannel, p.NotifyChannel)
	return s
}

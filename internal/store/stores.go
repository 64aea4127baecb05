package store

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
)

// Stores bundles the six entity stores. One instance is constructed at
// process start and passed by handle to every consumer; there is no ambient
// singleton.
type Stores struct {
	Users     *Users
	Guilds    *Guilds
	Events    *Events
	Forms     *Forms
	Giveaways *Giveaways
	Streams   *Streams
}

func New(ids IDGenerator, clock clockwork.Clock) *Stores {
	return &Stores{
		Users:  &Users{newStore("user", ids, clock, newUser, mergeUser, nil)},
		Guilds: &Guilds{newStore("guild", ids, clock, newGuild, mergeGuild, nil)},
		Events: &Events{newStore("attendance_event", ids, clock, newEvent, mergeEvent,
			func(a, b domain.AttendanceEvent) bool { return a.EventDate.After(b.EventDate) })},
		Forms: &Forms{newStore("form", ids, clock, newForm, mergeForm,
			func(a, b domain.Form) bool { return a.CreatedAt.After(b.CreatedAt) })},
		Giveaways: &Giveaways{newStore("giveaway", ids, clock, newGiveaway, mergeGiveaway,
			func(a, b domain.Giveaway) bool { return a.CreatedAt.After(b.CreatedAt) })},
		Streams: &Streams{newStore("stream_subscription", ids, clock, newStream, mergeStream,
			func(a, b domain.StreamSubscription) bool { return a.Streamer < b.Streamer })},
	}
}

type Users struct {
	*Store[domain.User, domain.UserPartial]
}

// GetByDiscordID looks a user up by external Discord identity. First match
// wins; the Discord ID uniqueness invariant means duplicates do not occur.
func (s *Users) GetByDiscordID(_ context.Context, discordID string) (domain.User, bool) {
	return s.find(func(u domain.User) bool { return u.DiscordID == discordID })
}

type Guilds struct {
	*Store[domain.Guild, domain.GuildPartial]
}

// GetByDiscordID looks a guild up by external Discord community ID.
func (s *Guilds) GetByDiscordID(_ context.Context, discordID string) (domain.Guild, bool) {
	return s.find(func(g domain.Guild) bool { return g.DiscordID == discordID })
}

type Events struct {
	*Store[domain.AttendanceEvent, domain.AttendanceEventPartial]
}

// ListByGuild returns the guild's attendance events, soonest-scheduled last
// (descending event date). Never nil.
func (s *Events) ListByGuild(_ context.Context, guildID string) []domain.AttendanceEvent {
	return s.list(func(e domain.AttendanceEvent) bool { return e.GuildID == guildID })
}

type Forms struct {
	*Store[domain.Form, domain.FormPartial]
}

// ListByGuild returns the guild's forms, newest first.
func (s *Forms) ListByGuild(_ context.Context, guildID string) []domain.Form {
	return s.list(func(f domain.Form) bool { return f.GuildID == guildID })
}

type Giveaways struct {
	*Store[domain.Giveaway, domain.GiveawayPartial]
}

// ListByGuild returns the guild's giveaways, newest first.
func (s *Giveaways) ListByGuild(_ context.Context, guildID string) []domain.Giveaway {
	return s.list(func(g domain.Giveaway) bool { return g.GuildID == guildID })
}

type Streams struct {
	*Store[domain.StreamSubscription, domain.StreamSubscriptionPartial]
}

// ListByGuild returns the guild's stream subscriptions ordered by streamer
// username.
func (s *Streams) ListByGuild(_ context.Context, guildID string) []domain.StreamSubscription {
	return s.list(func(sub domain.StreamSubscription) bool { return sub.GuildID == guildID })
}

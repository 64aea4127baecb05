package app

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/BubbleXIV/dashboard-new/internal/crypto"
	"github.com/BubbleXIV/dashboard-new/internal/domain"
	"github.com/BubbleXIV/dashboard-new/internal/filestore"
	"github.com/BubbleXIV/dashboard-new/internal/metrics"
	"github.com/BubbleXIV/dashboard-new/internal/store"
)

// Service orchestrates the entity stores, the guild reconciler, and snapshot
// persistence. Reads go straight to the stores; every mutation is followed
// by a snapshot write of the affected collection, and a failed write is
// returned to the caller rather than swallowed or retried.
type Service struct {
	stores     *store.Stores
	files      *filestore.Store
	crypto     crypto.Service
	clock      clockwork.Clock
	reconciler *Reconciler
	syncGroup  singleflight.Group
}

func NewService(stores *store.Stores, files *filestore.Store, cryptoSvc crypto.Service, clock clockwork.Clock) *Service {
	return &Service{
		stores:     stores,
		files:      files,
		crypto:     cryptoSvc,
		clock:      clock,
		reconciler: NewReconciler(stores.Guilds, clock),
	}
}

// --- Users ---

func (s *Service) GetUser(ctx context.Context, id string) (domain.User, bool) {
	return s.stores.Users.Get(ctx, id)
}

func (s *Service) GetUserByDiscordID(ctx context.Context, discordID string) (domain.User, bool) {
	return s.stores.Users.GetByDiscordID(ctx, discordID)
}

// UpsertUser creates or updates the user record for a Discord identity.
// Called after every successful OAuth exchange.
func (s *Service) UpsertUser(ctx context.Context, discordID, username, discriminator, avatar, accessToken, refreshToken string, tokenExpiry time.Time) (domain.User, error) {
	partial := domain.UserPartial{
		DiscordID:     &discordID,
		Username:      &username,
		Discriminator: &discriminator,
		Avatar:        &avatar,
		AccessToken:   &accessToken,
		RefreshToken:  &refreshToken,
		TokenExpiry:   &tokenExpiry,
	}

	user, ok := s.stores.Users.GetByDiscordID(ctx, discordID)
	if ok {
		user, _ = s.stores.Users.Update(ctx, user.ID, partial)
	} else {
		user = s.stores.Users.Create(ctx, partial)
	}
	return user, s.persistUsers(ctx)
}

// UpdateUserTokens replaces the stored credentials after a token refresh.
func (s *Service) UpdateUserTokens(ctx context.Context, id, accessToken, refreshToken string, tokenExpiry time.Time) (domain.User, bool, error) {
	user, ok := s.stores.Users.Update(ctx, id, domain.UserPartial{
		AccessToken:  &accessToken,
		RefreshToken: &refreshToken,
		TokenExpiry:  &tokenExpiry,
	})
	if !ok {
		return domain.User{}, false, nil
	}
	return user, true, s.persistUsers(ctx)
}

// --- Guilds ---

// SyncGuilds runs roster reconciliation for the caller and persists the
// result. Concurrent syncs for the same user collapse into one run.
func (s *Service) SyncGuilds(ctx context.Context, callerDiscordID string, roster []domain.RosterEntry) ([]domain.Guild, error) {
	v, err, _ := s.syncGroup.Do(callerDiscordID, func() (any, error) {
		guilds, changed := s.reconciler.Sync(ctx, callerDiscordID, roster)
		if changed {
			if err := s.persistGuilds(ctx); err != nil {
				metrics.ReconcileRunsTotal.WithLabelValues("error").Inc()
				return nil, err
			}
		}
		metrics.ReconcileRunsTotal.WithLabelValues("ok").Inc()
		return guilds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Guild), nil
}

func (s *Service) GetGuild(ctx context.Context, id string) (domain.Guild, bool) {
	return s.stores.Guilds.Get(ctx, id)
}

func (s *Service) UpdateGuild(ctx context.Context, id string, partial domain.GuildPartial) (domain.Guild, bool, error) {
	guild, ok := s.stores.Guilds.Update(ctx, id, partial)
	if !ok {
		return domain.Guild{}, false, nil
	}
	return guild, true, s.persistGuilds(ctx)
}

// DeleteGuild removes the guild record only. Child records stay in place:
// the source system never cascaded deletes, and this layer preserves that
// behavior pending a product decision.
func (s *Service) DeleteGuild(ctx context.Context, id string) (bool, error) {
	if !s.stores.Guilds.Delete(ctx, id) {
		return false, nil
	}
	return true, s.persistGuilds(ctx)
}

// --- Attendance events ---

func (s *Service) CreateEvent(ctx context.Context, partial domain.AttendanceEventPartial) (domain.AttendanceEvent, error) {
	event := s.stores.Events.Create(ctx, partial)
	return event, s.persistEvents(ctx)
}

func (s *Service) GetEvent(ctx context.Context, id string) (domain.AttendanceEvent, bool) {
	return s.stores.Events.Get(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context, guildID string) []domain.AttendanceEvent {
	return s.stores.Events.ListByGuild(ctx, guildID)
}

func (s *Service) UpdateEvent(ctx context.Context, id string, partial domain.AttendanceEventPartial) (domain.AttendanceEvent, bool, error) {
	event, ok := s.stores.Events.Update(ctx, id, partial)
	if !ok {
		return domain.AttendanceEvent{}, false, nil
	}
	return event, true, s.persistEvents(ctx)
}

func (s *Service) DeleteEvent(ctx context.Context, id string) (bool, error) {
	if !s.stores.Events.Delete(ctx, id) {
		return false, nil
	}
	return true, s.persistEvents(ctx)
}

// --- Forms ---

func (s *Service) CreateForm(ctx context.Context, partial domain.FormPartial) (domain.Form, error) {
	form := s.stores.Forms.Create(ctx, partial)
	return form, s.persistForms(ctx)
}

func (s *Service) GetForm(ctx context.Context, id string) (domain.Form, bool) {
	return s.stores.Forms.Get(ctx, id)
}

func (s *Service) ListForms(ctx context.Context, guildID string) []domain.Form {
	return s.stores.Forms.ListByGuild(ctx, guildID)
}

func (s *Service) UpdateForm(ctx context.Context, id string, partial domain.FormPartial) (domain.Form, bool, error) {
	form, ok := s.stores.Forms.Update(ctx, id, partial)
	if !ok {
		return domain.Form{}, false, nil
	}
	return form, true, s.persistForms(ctx)
}

func (s *Service) DeleteForm(ctx context.Context, id string) (bool, error) {
	if !s.stores.Forms.Delete(ctx, id) {
		return false, nil
	}
	return true, s.persistForms(ctx)
}

// --- Giveaways ---

func (s *Service) CreateGiveaway(ctx context.Context, partial domain.GiveawayPartial) (domain.Giveaway, error) {
	giveaway := s.stores.Giveaways.Create(ctx, partial)
	return giveaway, s.persistGiveaways(ctx)
}

func (s *Service) GetGiveaway(ctx context.Context, id string) (domain.Giveaway, bool) {
	return s.stores.Giveaways.Get(ctx, id)
}

func (s *Service) ListGiveaways(ctx context.Context, guildID string) []domain.Giveaway {
	return s.stores.Giveaways.ListByGuild(ctx, guildID)
}

func (s *Service) UpdateGiveaway(ctx context.Context, id string, partial domain.GiveawayPartial) (domain.Giveaway, bool, error) {
	giveaway, ok := s.stores.Giveaways.Update(ctx, id, partial)
	if !ok {
		return domain.Giveaway{}, false, nil
	}
	return giveaway, true, s.persistGiveaways(ctx)
}

func (s *Service) DeleteGiveaway(ctx context.Context, id string) (bool, error) {
	if !s.stores.Giveaways.Delete(ctx, id) {
		return false, nil
	}
	return true, s.persistGiveaways(ctx)
}

// --- Stream subscriptions ---

func (s *Service) CreateStream(ctx context.Context, partial domain.StreamSubscriptionPartial) (domain.StreamSubscription, error) {
	sub := s.stores.Streams.Create(ctx, partial)
	return sub, s.persistStreams(ctx)
}

func (s *Service) GetStream(ctx context.Context, id string) (domain.StreamSubscription, bool) {
	return s.stores.Streams.Get(ctx, id)
}

func (s *Service) ListStreams(ctx context.Context, guildID string) []domain.StreamSubscription {
	return s.stores.Streams.ListByGuild(ctx, guildID)
}

// AllStreams returns every subscription across guilds, for the poller.
func (s *Service) AllStreams(ctx context.Context) []domain.StreamSubscription {
	return s.stores.Streams.All(ctx)
}

func (s *Service) UpdateStream(ctx context.Context, id string, partial domain.StreamSubscriptionPartial) (domain.StreamSubscription, bool, error) {
	sub, ok := s.stores.Streams.Update(ctx, id, partial)
	if !ok {
		return domain.StreamSubscription{}, false, nil
	}
	return sub, true, s.persistStreams(ctx)
}

func (s *Service) DeleteStream(ctx context.Context, id string) (bool, error) {
	if !s.stores.Streams.Delete(ctx, id) {
		return false, nil
	}
	return true, s.persistStreams(ctx)
}

// RecordStreamStatus writes one poll outcome through the store.
func (s *Service) RecordStreamStatus(ctx context.Context, id string, live bool, viewers int, game, title string) (domain.StreamSubscription, bool, error) {
	now := s.clock.Now().UTC()
	return s.UpdateStream(ctx, id, domain.StreamSubscriptionPartial{
		Live:        &live,
		ViewerCount: &viewers,
		Game:        &game,
		Title:       &title,
		LastChecked: &now,
	})
}

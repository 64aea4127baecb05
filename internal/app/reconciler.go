package app

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	"github.com/BubbleXIV/dashboard-new/internal/metrics"
	"github.com/BubbleXIV/dashboard-new/internal/store"
)

// Reconciler merges an externally reported guild roster into the locally
// persisted guild records. Entries where the caller is neither owner nor
// administrator are dropped entirely: neither returned nor persisted.
type Reconciler struct {
	guilds *store.Guilds
	clock  clockwork.Clock
}

func NewReconciler(guilds *store.Guilds, clock clockwork.Clock) *Reconciler {
	return &Reconciler{guilds: guilds, clock: clock}
}

// Sync upserts one local Guild per administered roster entry and returns the
// stored records in the filtered roster's order. An entry reporting a zero
// member count never erases a previously known non-zero count, and an update
// touches only name, icon, and member count: settings, bot-present flag,
// and creation timestamp stay as they are. Applying the same roster twice
// yields exactly one stored record per community. The boolean reports
// whether any store mutation happened.
func (r *Reconciler) Sync(ctx context.Context, callerDiscordID string, roster []domain.RosterEntry) ([]domain.Guild, bool) {
	start := r.clock.Now()
	defer func() {
		metrics.ReconcileDuration.Observe(r.clock.Since(start).Seconds())
	}()

	result := make([]domain.Guild, 0, len(roster))
	changed := false

	for _, entry := range roster {
		if !entry.Administers() {
			metrics.ReconcileGuildsTotal.WithLabelValues("skipped").Inc()
			continue
		}

		existing, ok := r.guilds.GetByDiscordID(ctx, entry.GuildID)
		if !ok {
			partial := domain.GuildPartial{
				DiscordID:   &entry.GuildID,
				Name:        &entry.Name,
				Icon:        &entry.Icon,
				MemberCount: &entry.MemberCount,
			}
			if entry.Owner {
				partial.OwnerID = &callerDiscordID
			}
			created := r.guilds.Create(ctx, partial)
			result = append(result, created)
			changed = true
			metrics.ReconcileGuildsTotal.WithLabelValues("created").Inc()
			continue
		}

		partial := domain.GuildPartial{
			Name: &entry.Name,
			Icon: &entry.Icon,
		}
		if entry.MemberCount != 0 {
			partial.MemberCount = &entry.MemberCount
		}
		updated, _ := r.guilds.Update(ctx, existing.ID, partial)
		result = append(result, updated)
		changed = true
		metrics.ReconcileGuildsTotal.WithLabelValues("updated").Inc()
	}

	return result, changed
}

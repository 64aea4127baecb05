package twitch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	"github.com/BubbleXIV/dashboard-new/internal/logging"
	"github.com/BubbleXIV/dashboard-new/internal/metrics"
	"github.com/BubbleXIV/dashboard-new/internal/platform/retry"
)

// subscriptionSource is the slice of the application service the poller uses.
type subscriptionSource interface {
	AllStreams(ctx context.Context) []domain.StreamSubscription
	RecordStreamStatus(ctx context.Context, id string, live bool, viewers int, game, title string) (domain.StreamSubscription, bool, error)
}

// Poller periodically checks the live status of every stream subscription.
type Poller struct {
	source   subscriptionSource
	client   StatusClient
	clock    clockwork.Clock
	interval time.Duration
	limiter  *rate.Limiter
	breaker  circuitbreaker.CircuitBreaker[any]
	policy   retry.Policy
	stopCh   chan struct{}
}

// NewPoller creates a stream status poller. The rate limiter stays well
// under the Helix app budget of 800 points per minute.
func NewPoller(source subscriptionSource, client StatusClient, clock clockwork.Clock, interval time.Duration) *Poller {
	return &Poller{
		source:   source,
		client:   client,
		clock:    clock,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 5),
		breaker:  newPollerBreaker(),
		policy: retry.Policy{
			MaxAttempts:      3,
			InitialBackoff:   2 * time.Second,
			RateLimitBackoff: 30 * time.Second,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				slog.Warn("Retrying stream status fetch",
					"attempt", attempt,
					"backoff", backoff,
					"error", err,
				)
			},
		},
		stopCh: make(chan struct{}),
	}
}

// newPollerBreaker builds the circuit breaker guarding Helix calls:
// three consecutive failures open the circuit, one success in half-open
// closes it again.
func newPollerBreaker() circuitbreaker.CircuitBreaker[any] {
	return circuitbreaker.NewBuilder[any]().
		WithFailureThreshold(3).
		WithDelay(2 * time.Minute).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Circuit breaker state changed",
				"component", "stream_poller",
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)
			metrics.PollerBreakerState.Set(breakerStateToFloat(e.NewState))
		}).
		Build()
}

func breakerStateToFloat(state circuitbreaker.State) float64 {
	switch state {
	case circuitbreaker.ClosedState:
		return 0
	case circuitbreaker.HalfOpenState:
		return 1
	case circuitbreaker.OpenState:
		return 2
	default:
		return -1
	}
}

// Start runs the poll loop until Stop is called or the context ends.
func (p *Poller) Start(ctx context.Context) {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Info("Stream poller started", "interval", p.interval)
	for {
		select {
		case <-ticker.Chan():
			p.poll(ctx)
		case <-p.stopCh:
			slog.Info("Stream poller stopped")
			return
		case <-ctx.Done():
			slog.Info("Stream poller context cancelled")
			return
		}
	}
}

// Stop terminates the poll loop.
func (p *Poller) Stop() {
	close(p.stopCh)
}

// poll runs a single cycle: collect the distinct streamer logins, fetch
// their live status, and write the outcome for every subscription. A
// streamer missing from the Helix response is recorded as offline.
func (p *Poller) poll(ctx context.Context) {
	subs := p.source.AllStreams(ctx)
	if len(subs) == 0 {
		metrics.PollerCyclesTotal.WithLabelValues("skipped").Inc()
		return
	}

	logins := make([]string, 0, len(subs))
	seen := make(map[string]struct{}, len(subs))
	for _, sub := range subs {
		login := strings.ToLower(sub.Streamer)
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}
		logins = append(logins, login)
	}

	statuses, err := retry.Do(ctx, p.policy, classifyPollError, func() (map[string]StreamStatus, error) {
		return p.fetch(ctx, logins)
	})
	if err != nil {
		slog.Error("Stream poll cycle failed", "streamers", len(logins), "error", err)
		metrics.PollerCyclesTotal.WithLabelValues("error").Inc()
		return
	}

	metrics.PollerStreamsChecked.Add(float64(len(logins)))

	for _, sub := range subs {
		status := statuses[strings.ToLower(sub.Streamer)]
		if _, _, err := p.source.RecordStreamStatus(ctx, sub.ID, status.Live, status.ViewerCount, status.Game, status.Title); err != nil {
			logging.WithStreamer(sub.Streamer).Error("Failed to record stream status",
				"subscription_id", sub.ID,
				"error", err,
			)
		}
	}
	metrics.PollerCyclesTotal.WithLabelValues("ok").Inc()
}

// fetch performs one rate-limited, breaker-guarded Helix call.
func (p *Poller) fetch(ctx context.Context, logins []string) (map[string]StreamStatus, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if !p.breaker.TryAcquirePermit() {
		return nil, fmt.Errorf("stream status fetch blocked: %w", circuitbreaker.ErrOpen)
	}

	statuses, err := p.client.StreamsByLogin(ctx, logins)
	if err != nil {
		p.breaker.RecordError(err)
		return nil, err
	}
	p.breaker.RecordSuccess()
	return statuses, nil
}

// classifyPollError maps fetch errors to retry actions: an open breaker or
// a dead context aborts the cycle, a rate limit waits longer, everything
// else retries with normal backoff.
func classifyPollError(err error) retry.Action {
	switch {
	case errors.Is(err, circuitbreaker.ErrOpen),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return retry.Stop
	case errors.Is(err, ErrRateLimited):
		return retry.After
	default:
		return retry.Retry
	}
}

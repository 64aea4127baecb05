package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Entity Store Metrics
var (
	// StoreOpsTotal tracks entity store operations by kind and operation
	StoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total entity store operations by entity kind and operation",
		},
		[]string{"kind", "operation"},
	)

	// StoreRecordsCurrent tracks current record count per entity kind
	StoreRecordsCurrent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_records_current",
			Help: "Current number of records per entity kind",
		},
		[]string{"kind"},
	)
)

// Guild Reconciliation Metrics
var (
	// ReconcileRunsTotal tracks reconciliation runs by result
	ReconcileRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guild_reconcile_runs_total",
			Help: "Total guild roster reconciliation runs by result (ok/error)",
		},
		[]string{"result"},
	)

	// ReconcileGuildsTotal tracks reconciled guilds by action taken
	ReconcileGuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guild_reconcile_guilds_total",
			Help: "Total guilds processed during reconciliation by action (created/updated/skipped)",
		},
		[]string{"action"},
	)

	// ReconcileDuration tracks reconciliation run duration
	ReconcileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "guild_reconcile_duration_seconds",
			Help:    "Guild roster reconciliation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)
)

// File Codec Metrics
var (
	// FileOpsTotal tracks flat-file codec operations by operation and status
	FileOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_operations_total",
			Help: "Total flat-file codec operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// FileOpDuration tracks flat-file codec operation latency
	FileOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "file_operation_duration_seconds",
			Help:    "Flat-file codec operation duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25},
		},
		[]string{"operation"},
	)
)

// Stream Poller Metrics
var (
	// PollerCyclesTotal tracks poll cycles by result
	PollerCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_poller_cycles_total",
			Help: "Total stream poller cycles by result (ok/error/skipped)",
		},
		[]string{"result"},
	)

	// PollerStreamsChecked tracks streamers checked per cycle
	PollerStreamsChecked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_poller_streams_checked_total",
			Help: "Total streamer logins checked by the stream poller",
		},
	)

	// PollerBreakerState tracks the poller circuit breaker state
	// (0=closed, 1=half-open, 2=open)
	PollerBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stream_poller_breaker_state",
			Help: "Stream poller circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)

// HTTP Request Metrics
// Note: http_errors_total{type} is provided by the internal/errors package.

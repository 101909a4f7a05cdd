package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for EntriesProcessed.
const (
	OutcomeApplied  = "applied"
	OutcomeIgnored  = "ignored"
	OutcomeRejected = "rejected"
)

// Metrics holds all Prometheus metrics of a replay run
type Metrics struct {
	// Entry metrics
	EntriesProcessed *prometheus.CounterVec
	EntriesIgnored   *prometheus.CounterVec
	DecodeErrors     prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsLocked  prometheus.Counter

	// Run metrics
	ReplayDuration    prometheus.Histogram
	LastSuccessfulRun prometheus.Gauge
	SnapshotAccounts  prometheus.Gauge
}

// New creates all replay metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Entry metrics
		EntriesProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerreplay_entries_processed_total",
				Help: "Total ledger entries processed by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		EntriesIgnored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerreplay_entries_ignored_total",
				Help: "Total ledger entries that had no effect, by reason",
			},
			[]string{"reason"},
		),
		DecodeErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerreplay_decode_errors_total",
			Help: "Total malformed input rows",
		}),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerreplay_accounts_created_total",
			Help: "Total client accounts created",
		}),
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerreplay_accounts_locked_total",
			Help: "Total client accounts locked by a chargeback",
		}),

		// Run metrics
		ReplayDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerreplay_run_duration_seconds",
			Help:    "Duration of replay runs",
			Buckets: prometheus.DefBuckets,
		}),
		LastSuccessfulRun: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerreplay_last_success_timestamp_seconds",
			Help: "Unix time of the last successful replay run",
		}),
		SnapshotAccounts: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerreplay_snapshot_accounts",
			Help: "Number of accounts in the last emitted snapshot",
		}),
	}
}

// WriteTextfile writes everything gathered by g to path in the text exposition
// format understood by the node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/ledgerfix/internal/domain"
)

// Metrics holds the repair metrics. It implements usecase.MetricsRecorder.
type Metrics struct {
	RepairRuns        *prometheus.CounterVec
	RepairDuration    *prometheus.HistogramVec
	MergedGroups      *prometheus.CounterVec
	DeletedLines      prometheus.Counter
	RewiredReferences *prometheus.CounterVec
	ConflictDeletions *prometheus.CounterVec
	BalanceMismatches prometheus.Counter
	LastRunTimestamp  prometheus.Gauge
}

// New creates the repair metrics and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RepairRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerfix_repair_runs_total",
				Help: "Total number of repair runs by outcome",
			},
			[]string{"outcome", "dry_run"},
		),
		RepairDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledgerfix_repair_duration_seconds",
				Help:    "Duration of repair runs",
				Buckets: []float64{.1, .5, 1, 5, 15, 30, 60, 300, 900, 1800},
			},
			[]string{"outcome"},
		),
		MergedGroups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerfix_groups_merged_total",
				Help: "Total number of duplicate line groups consolidated by pass",
			},
			[]string{"pass"},
		),
		DeletedLines: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerfix_lines_deleted_total",
			Help: "Total number of merged ledger lines deleted",
		}),
		RewiredReferences: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerfix_references_rewired_total",
				Help: "Total number of referencing rows pointed at a keeper line",
			},
			[]string{"table"},
		),
		ConflictDeletions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerfix_conflict_deletions_total",
				Help: "Total number of referencing rows deleted on unique-constraint conflicts",
			},
			[]string{"table"},
		),
		BalanceMismatches: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerfix_balance_discrepancies_total",
			Help: "Total number of (entry, account) balance discrepancies found",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerfix_last_run_timestamp_seconds",
			Help: "Unix time the last repair run finished",
		}),
	}
}

func (m *Metrics) RunFinished(outcome domain.RepairOutcome, dryRun bool, duration time.Duration) {
	m.RepairRuns.WithLabelValues(string(outcome), strconv.FormatBool(dryRun)).Inc()
	m.RepairDuration.WithLabelValues(string(outcome)).Observe(duration.Seconds())
	m.LastRunTimestamp.SetToCurrentTime()
}

func (m *Metrics) GroupsMerged(pass string, groups int) {
	m.MergedGroups.WithLabelValues(pass).Add(float64(groups))
}

func (m *Metrics) LinesDeleted(n int64) {
	m.DeletedLines.Add(float64(n))
}

func (m *Metrics) ReferencesRewired(table string, n int64) {
	m.RewiredReferences.WithLabelValues(table).Add(float64(n))
}

func (m *Metrics) ConflictDeleted(table string) {
	m.ConflictDeletions.WithLabelValues(table).Inc()
}

func (m *Metrics) Discrepancies(n int) {
	m.BalanceMismatches.Add(float64(n))
}

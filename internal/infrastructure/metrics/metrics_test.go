package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/ledgerfix/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)
	m.RunFinished(domain.OutcomeCompleted, false, time.Second)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecorderCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RunFinished(domain.OutcomeAbortedBalanceMismatch, true, 2*time.Second)
	m.GroupsMerged("counterpart", 3)
	m.GroupsMerged("liquidity", 1)
	m.LinesDeleted(4)
	m.ReferencesRewired("account_partial_reconcile", 2)
	m.ConflictDeleted("account_analytic_tag_account_move_line_rel")
	m.ConflictDeleted("account_analytic_tag_account_move_line_rel")
	m.Discrepancies(5)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"runs", testutil.ToFloat64(m.RepairRuns.WithLabelValues("aborted_balance_mismatch", "true")), 1},
		{"counterpart groups", testutil.ToFloat64(m.MergedGroups.WithLabelValues("counterpart")), 3},
		{"liquidity groups", testutil.ToFloat64(m.MergedGroups.WithLabelValues("liquidity")), 1},
		{"lines deleted", testutil.ToFloat64(m.DeletedLines), 4},
		{"references", testutil.ToFloat64(m.RewiredReferences.WithLabelValues("account_partial_reconcile")), 2},
		{"conflicts", testutil.ToFloat64(m.ConflictDeletions.WithLabelValues("account_analytic_tag_account_move_line_rel")), 2},
		{"discrepancies", testutil.ToFloat64(m.BalanceMismatches), 5},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

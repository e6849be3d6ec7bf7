package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/usecase"
)

var (
	_ usecase.IDGenerator     = (*SequenceIDGenerator)(nil)
	_ usecase.Retrier         = (*CountingRetrier)(nil)
	_ usecase.MetricsRecorder = (*RecordingMetrics)(nil)
	_ usecase.AuditRepository = (*MemoryAuditRepository)(nil)
)

// SequenceIDGenerator returns prefix-1, prefix-2, ...
type SequenceIDGenerator struct {
	mu     sync.Mutex
	Prefix string
	n      int
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "run"
	}
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

// CountingRetrier retries up to Attempts times while Retryable reports true.
type CountingRetrier struct {
	Attempts  int
	Retryable func(error) bool
	Calls     int
}

func (r *CountingRetrier) Retry(ctx context.Context, operation func() error) error {
	attempts := r.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		r.Calls++
		if err = operation(); err == nil {
			return nil
		}
		if r.Retryable == nil || !r.Retryable(err) {
			return err
		}
	}
	return err
}

// RecordingMetrics keeps every value passed to it.
type RecordingMetrics struct {
	mu               sync.Mutex
	Outcomes         []domain.RepairOutcome
	Groups           map[string]int
	Deleted          int64
	Rewired          map[string]int64
	Conflicts        map[string]int
	DiscrepancyCount int
}

// NewRecordingMetrics creates an empty RecordingMetrics.
func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		Groups:    make(map[string]int),
		Rewired:   make(map[string]int64),
		Conflicts: make(map[string]int),
	}
}

func (m *RecordingMetrics) RunFinished(outcome domain.RepairOutcome, dryRun bool, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes = append(m.Outcomes, outcome)
}

func (m *RecordingMetrics) GroupsMerged(pass string, groups int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Groups[pass] += groups
}

func (m *RecordingMetrics) LinesDeleted(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted += n
}

func (m *RecordingMetrics) ReferencesRewired(table string, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rewired[table] += n
}

func (m *RecordingMetrics) ConflictDeleted(table string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Conflicts[table]++
}

func (m *RecordingMetrics) Discrepancies(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DiscrepancyCount += n
}

// MemoryAuditRepository keeps audit logs in memory. Logs written with CreateTx are
// kept even if the transaction rolls back.
type MemoryAuditRepository struct {
	mu   sync.Mutex
	Logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func (r *MemoryAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if r.CreateFunc != nil {
		if err := r.CreateFunc(ctx, log); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Logs = append(r.Logs, log)
	return nil
}

func (r *MemoryAuditRepository) CreateTx(ctx context.Context, _ usecase.Transaction, log *domain.AuditLog) error {
	return r.Create(ctx, log)
}

func (r *MemoryAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.AuditLog
	for _, l := range r.Logs {
		if filter.RunID != "" && l.RunID != filter.RunID {
			continue
		}
		if filter.Action != "" && string(l.Action) != filter.Action {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// ByAction returns logs with the given action.
func (r *MemoryAuditRepository) ByAction(action domain.AuditAction) []*domain.AuditLog {
	out, _ := r.List(context.Background(), domain.AuditFilter{Action: string(action)})
	return out
}

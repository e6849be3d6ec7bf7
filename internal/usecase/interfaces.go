package usecase

import (
	"context"
	"time"

	"github.com/iho/ledgerfix/internal/domain"
)

// LineTable is the ledger-line table whose inbound foreign keys are redirected.
const LineTable = "account_move_line"

// LedgerStore defines data access for ledger lines and their classification data.
type LedgerStore interface {
	// Lock takes an exclusive lock on the ledger-line table for the transaction.
	Lock(ctx context.Context, tx Transaction) error
	LoadLedger(ctx context.Context, tx Transaction) (*domain.Ledger, error)
	SumByEntryAccount(ctx context.Context, tx Transaction) ([]domain.EntryAccountTotal, error)
	UpdateLines(ctx context.Context, tx Transaction, lines []domain.LedgerLine) error
	DeleteLines(ctx context.Context, tx Transaction, ids []int64) (int64, error)
}

// SchemaCatalog exposes the constraint metadata of the store.
type SchemaCatalog interface {
	ListForeignKeysInto(ctx context.Context, tx Transaction, table string) ([]domain.ForeignKey, error)
	ListUniqueConstraints(ctx context.Context, tx Transaction, table string) ([]domain.UniqueConstraint, error)
}

// ReferenceStore rewrites rows that reference merged ledger lines.
type ReferenceStore interface {
	// ConflictingReferences returns rows of target.ForeignKey pointing at a merged id whose
	// other unique-constraint columns already appear on a row pointing at the keeper or
	// at a smaller merged id of the same target.
	ConflictingReferences(ctx context.Context, tx Transaction, target domain.ReferenceTarget, uc domain.UniqueConstraint) ([]domain.JSON, error)
	// DeleteConflictingReferences deletes the rows ConflictingReferences would return.
	DeleteConflictingReferences(ctx context.Context, tx Transaction, target domain.ReferenceTarget, uc domain.UniqueConstraint) ([]domain.JSON, error)
	// RewriteReferences points every row referencing a merged id at the keeper.
	RewriteReferences(ctx context.Context, tx Transaction, target domain.ReferenceTarget) (int64, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// RunLock guards against concurrent repair runs across processes.
type RunLock interface {
	// Acquire returns a token when the lock was taken, or domain.ErrLockHeld.
	Acquire(ctx context.Context, ttl time.Duration) (string, error)
	Release(ctx context.Context, token string) error
}

// ResultStore keeps the most recent repair result for the admin API.
type ResultStore interface {
	SaveLast(ctx context.Context, result *domain.RepairResult, ttl time.Duration) error
	GetLast(ctx context.Context) (*domain.RepairResult, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient store errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// MetricsRecorder receives repair counters.
type MetricsRecorder interface {
	RunFinished(outcome domain.RepairOutcome, dryRun bool, duration time.Duration)
	GroupsMerged(pass string, groups int)
	LinesDeleted(n int64)
	ReferencesRewired(table string, n int64)
	ConflictDeleted(table string)
	Discrepancies(n int)
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepairState is a step of the repair state machine.
type RepairState string

const (
	StateSnapshot               RepairState = "SNAPSHOT"
	StateVerifyInitial          RepairState = "VERIFY_INITIAL"
	StateNormalizeCurrency      RepairState = "NORMALIZE_CURRENCY"
	StateConsolidateCounterpart RepairState = "CONSOLIDATE_COUNTERPART"
	StateVerify1                RepairState = "VERIFY_1"
	StateConsolidateLiquidity   RepairState = "CONSOLIDATE_LIQUIDITY"
	StateVerify2                RepairState = "VERIFY_2"
	StateCommitLive             RepairState = "COMMIT_LIVE"
	StateRedirectFK             RepairState = "REDIRECT_FK"
	StateCleanup                RepairState = "CLEANUP"
	StateDone                   RepairState = "DONE"
	StateAborted                RepairState = "ABORTED"
)

// IsLive reports whether the state mutates the live tables.
func (s RepairState) IsLive() bool {
	return s == StateCommitLive || s == StateRedirectFK
}

// RepairOutcome is the terminal classification of a run.
type RepairOutcome string

const (
	OutcomeCompleted              RepairOutcome = "completed"
	OutcomeAbortedBalanceMismatch RepairOutcome = "aborted_balance_mismatch"
	OutcomeAbortedOther           RepairOutcome = "aborted_other"
)

// BalanceDiscrepancy reports an (entry, account) whose net differs between live and snapshot.
type BalanceDiscrepancy struct {
	EntryID   int64
	AccountID int64
	Live      decimal.Decimal
	Snapshot  decimal.Decimal
}

// Difference returns snapshot minus live.
func (d BalanceDiscrepancy) Difference() decimal.Decimal {
	return d.Snapshot.Sub(d.Live)
}

// ConflictDeletion records a referencing row removed instead of redirected.
type ConflictDeletion struct {
	ForeignKey ForeignKey
	Constraint string
	MergedID   int64
	KeeperID   int64
	Row        JSON
}

// RedirectReport summarizes the foreign-key redirect phase.
type RedirectReport struct {
	ForeignKeys       []ForeignKey
	ReferencesRewired int64
	ConflictDeletions []ConflictDeletion
	LinesDeleted      int64
}

// ResidualEntry is an entry that still carries several counterpart lines on one account.
type ResidualEntry struct {
	EntryID   int64
	AccountID int64
	LineIDs   []int64
}

// RepairResult describes one repair invocation.
type RepairResult struct {
	RunID           string
	Outcome         RepairOutcome
	State           RepairState
	FailedState     RepairState
	DryRun          bool
	NormalizedLines []int64
	Decisions       []MergeDecision
	Discrepancies   []BalanceDiscrepancy
	Redirect        *RedirectReport
	Residual        []ResidualEntry
	StartedAt       time.Time
	FinishedAt      time.Time
	Error           string
}

// MergedLineCount returns the number of lines folded into keepers.
func (r *RepairResult) MergedLineCount() int {
	n := 0
	for _, d := range r.Decisions {
		n += len(d.MergedIDs)
	}
	return n
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerfix/internal/domain"
)

// RepairConfig holds repair settings resolved from configuration.
type RepairConfig struct {
	Policy       domain.ConflictPolicy
	JournalTypes []string
	Timeout      time.Duration
	LockTTL      time.Duration
	ResultTTL    time.Duration
}

// RepairDeps wires the collaborators of a RepairUseCase. Lock, Results, AuditRepo,
// Retrier and Metrics are optional.
type RepairDeps struct {
	TxManager TransactionManager
	Ledger    LedgerStore
	Catalog   SchemaCatalog
	Refs      ReferenceStore
	AuditRepo AuditRepository
	Lock      RunLock
	Results   ResultStore
	Retrier   Retrier
	IDGen     IDGenerator
	Metrics   MetricsRecorder
	Logger    zerolog.Logger
	Config    RepairConfig
}

// RunOptions tunes a single invocation.
type RunOptions struct {
	// DryRun stops after the last snapshot verification and rolls back.
	DryRun bool
	// Policy overrides the configured conflict policy when set.
	Policy *domain.ConflictPolicy
}

// RepairUseCase sequences one ledger repair run.
type RepairUseCase struct {
	deps       RepairDeps
	verifier   *BalanceVerifier
	redirector *ReferenceRedirector
	now        func() time.Time
}

// NewRepairUseCase creates a new RepairUseCase.
func NewRepairUseCase(deps RepairDeps) *RepairUseCase {
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	if deps.Config.Timeout == 0 {
		deps.Config.Timeout = DefaultRepairTimeout
	}
	if deps.Config.LockTTL == 0 {
		deps.Config.LockTTL = DefaultLockTTL
	}
	if deps.Config.ResultTTL == 0 {
		deps.Config.ResultTTL = DefaultResultTTL
	}

	return &RepairUseCase{
		deps:     deps,
		verifier: NewBalanceVerifier(deps.Logger),
		redirector: NewReferenceRedirector(
			deps.Catalog, deps.Refs, deps.Ledger, deps.AuditRepo, deps.Metrics, deps.Logger,
		),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// run carries the mutable state of one attempt.
type run struct {
	result *domain.RepairResult
	policy domain.ConflictPolicy
	logger zerolog.Logger
}

func (r *run) enter(ctx context.Context, state domain.RepairState) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w before %s: %w", domain.ErrRunAborted, state, err)
	}
	r.result.State = state
	r.logger.Info().Str("state", string(state)).Msg("repair state")
	return nil
}

// Run executes the repair. The returned result is never nil; err is non-nil exactly
// when the run did not complete.
func (uc *RepairUseCase) Run(ctx context.Context, opts RunOptions) (*domain.RepairResult, error) {
	runID := uc.deps.IDGen.Generate()
	started := uc.now()
	logger := uc.deps.Logger.With().Str("run_id", runID).Bool("dry_run", opts.DryRun).Logger()

	policy := uc.deps.Config.Policy
	if opts.Policy != nil {
		policy = *opts.Policy
	}

	result := newResult(runID, opts.DryRun, started)

	if uc.deps.Lock != nil {
		token, err := uc.deps.Lock.Acquire(ctx, uc.deps.Config.LockTTL)
		if err != nil {
			return uc.finish(ctx, result, fmt.Errorf("acquire run lock: %w", err), logger)
		}
		defer func() {
			if err := uc.deps.Lock.Release(context.WithoutCancel(ctx), token); err != nil {
				logger.Warn().Err(err).Msg("failed to release run lock")
			}
		}()
	}

	ctx, cancel := context.WithTimeout(ctx, uc.deps.Config.Timeout)
	defer cancel()

	attempt := func() error {
		result = newResult(runID, opts.DryRun, started)
		r := &run{result: result, policy: policy, logger: logger}
		return uc.attempt(ctx, r, opts)
	}

	var err error
	if uc.deps.Retrier != nil {
		err = uc.deps.Retrier.Retry(ctx, attempt)
	} else {
		err = attempt()
	}

	return uc.finish(ctx, result, err, logger)
}

func newResult(runID string, dryRun bool, started time.Time) *domain.RepairResult {
	return &domain.RepairResult{
		RunID:     runID,
		DryRun:    dryRun,
		State:     domain.StateSnapshot,
		StartedAt: started,
	}
}

func (uc *RepairUseCase) attempt(ctx context.Context, r *run, opts RunOptions) error {
	if err := r.enter(ctx, domain.StateSnapshot); err != nil {
		return err
	}

	tx, err := uc.deps.TxManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			r.logger.Warn().Err(rbErr).Msg("rollback failed")
		}
	}()

	if err := uc.deps.Ledger.Lock(ctx, tx); err != nil {
		return fmt.Errorf("lock ledger: %w", err)
	}

	ledger, err := uc.deps.Ledger.LoadLedger(ctx, tx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	snapshot := domain.NewSnapshot(ledger.Lines)
	r.logger.Info().Int("lines", snapshot.Len()).Int("entries", len(ledger.Entries)).Msg("snapshot taken")

	if err := r.enter(ctx, domain.StateVerifyInitial); err != nil {
		return err
	}
	// The table is locked and untouched until COMMIT_LIVE, so one read serves every check.
	live, err := uc.deps.Ledger.SumByEntryAccount(ctx, tx)
	if err != nil {
		return fmt.Errorf("sum live totals: %w", err)
	}
	if err := uc.verify(r, live, snapshot); err != nil {
		return err
	}

	if err := r.enter(ctx, domain.StateNormalizeCurrency); err != nil {
		return err
	}
	normalized, err := NewCurrencyNormalizer(ledger, r.logger).Normalize(snapshot)
	if err != nil {
		return fmt.Errorf("normalize currency: %w", err)
	}
	r.result.NormalizedLines = normalized

	finder := NewGroupFinder(ledger, uc.deps.Config.JournalTypes)
	consolidator := NewLineConsolidator(ledger)

	if err := r.enter(ctx, domain.StateConsolidateCounterpart); err != nil {
		return err
	}
	if err := uc.consolidate(r, finder, consolidator, snapshot, CounterpartLine, PassCounterpart); err != nil {
		return err
	}

	if err := r.enter(ctx, domain.StateVerify1); err != nil {
		return err
	}
	if err := uc.verify(r, live, snapshot); err != nil {
		return err
	}

	if err := r.enter(ctx, domain.StateConsolidateLiquidity); err != nil {
		return err
	}
	if err := uc.consolidate(r, finder, consolidator, snapshot, LiquidityLine, PassLiquidity); err != nil {
		return err
	}

	if err := r.enter(ctx, domain.StateVerify2); err != nil {
		return err
	}
	if err := uc.verify(r, live, snapshot); err != nil {
		return err
	}

	if opts.DryRun {
		r.result.Residual, err = NewResidualScanner(uc.deps.Config.JournalTypes).Scan(&domain.Ledger{
			Lines:     snapshot.Lines(),
			Entries:   ledger.Entries,
			Accounts:  ledger.Accounts,
			Companies: ledger.Companies,
			Journals:  ledger.Journals,
			Payments:  ledger.Payments,
		})
		if err != nil {
			return fmt.Errorf("scan residual duplicates: %w", err)
		}
		return r.enter(ctx, domain.StateDone)
	}

	if err := r.enter(ctx, domain.StateCommitLive); err != nil {
		return err
	}
	if err := uc.deps.Ledger.UpdateLines(ctx, tx, snapshot.Dirty()); err != nil {
		return fmt.Errorf("commit staged lines: %w", err)
	}

	if err := r.enter(ctx, domain.StateRedirectFK); err != nil {
		return err
	}
	report, err := uc.redirector.RedirectAndDelete(ctx, tx, r.result.RunID, r.result.Decisions, r.policy)
	if err != nil {
		return fmt.Errorf("redirect references: %w", err)
	}
	r.result.Redirect = report

	after, err := uc.deps.Ledger.LoadLedger(ctx, tx)
	if err != nil {
		return fmt.Errorf("reload ledger: %w", err)
	}
	r.result.Residual, err = NewResidualScanner(uc.deps.Config.JournalTypes).Scan(after)
	if err != nil {
		return fmt.Errorf("scan residual duplicates: %w", err)
	}
	if len(r.result.Residual) > 0 {
		r.logger.Warn().Int("entries", len(r.result.Residual)).Msg("entries still carry duplicate counterpart lines")
	}

	if err := r.enter(ctx, domain.StateCleanup); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true

	r.result.State = domain.StateDone
	r.logger.Info().Str("state", string(domain.StateDone)).Msg("repair state")
	return nil
}

func (uc *RepairUseCase) verify(r *run, live []domain.EntryAccountTotal, snapshot *domain.Snapshot) error {
	discrepancies := uc.verifier.Verify(live, snapshot)
	if len(discrepancies) == 0 {
		return nil
	}
	r.result.Discrepancies = discrepancies
	uc.deps.Metrics.Discrepancies(len(discrepancies))
	return fmt.Errorf("%w: %d keys at %s", domain.ErrBalanceMismatch, len(discrepancies), r.result.State)
}

func (uc *RepairUseCase) consolidate(
	r *run,
	finder *GroupFinder,
	consolidator *LineConsolidator,
	snapshot *domain.Snapshot,
	match LinePredicate,
	pass string,
) error {
	groups, err := finder.FindGroups(snapshot, match)
	if err != nil {
		return fmt.Errorf("find %s groups: %w", pass, err)
	}
	decisions, err := consolidator.Consolidate(snapshot, groups)
	if err != nil {
		return fmt.Errorf("consolidate %s groups: %w", pass, err)
	}
	r.result.Decisions = append(r.result.Decisions, decisions...)
	uc.deps.Metrics.GroupsMerged(pass, len(decisions))
	r.logger.Info().Str("pass", pass).Int("groups", len(decisions)).Msg("consolidated duplicate lines")
	return nil
}

func (uc *RepairUseCase) finish(ctx context.Context, result *domain.RepairResult, err error, logger zerolog.Logger) (*domain.RepairResult, error) {
	result.FinishedAt = uc.now()

	switch {
	case err == nil:
		result.Outcome = domain.OutcomeCompleted
	case errors.Is(err, domain.ErrBalanceMismatch):
		result.Outcome = domain.OutcomeAbortedBalanceMismatch
	default:
		result.Outcome = domain.OutcomeAbortedOther
	}
	if err != nil {
		result.FailedState = result.State
		result.State = domain.StateAborted
		result.Error = err.Error()
		logger.Error().Err(err).Str("failed_state", string(result.FailedState)).Msg("repair aborted")
	} else {
		logger.Info().
			Int("decisions", len(result.Decisions)).
			Int("merged_lines", result.MergedLineCount()).
			Int("normalized_lines", len(result.NormalizedLines)).
			Msg("repair finished")
	}

	uc.deps.Metrics.RunFinished(result.Outcome, result.DryRun, result.FinishedAt.Sub(result.StartedAt))

	bg := context.WithoutCancel(ctx)
	if uc.deps.AuditRepo != nil && !result.DryRun {
		if auditErr := uc.deps.AuditRepo.Create(bg, runAuditLog(result)); auditErr != nil {
			logger.Warn().Err(auditErr).Msg("failed to audit repair run")
		}
	}
	if uc.deps.Results != nil {
		if saveErr := uc.deps.Results.SaveLast(bg, result, uc.deps.Config.ResultTTL); saveErr != nil {
			logger.Warn().Err(saveErr).Msg("failed to cache repair result")
		}
	}

	return result, err
}

func runAuditLog(result *domain.RepairResult) *domain.AuditLog {
	log := &domain.AuditLog{
		RunID:        result.RunID,
		Action:       domain.AuditActionRunCompleted,
		ResourceType: LineTable,
		ResourceID:   result.RunID,
		AfterState: domain.JSON{
			"outcome":          string(result.Outcome),
			"decisions":        len(result.Decisions),
			"merged_lines":     result.MergedLineCount(),
			"normalized_lines": len(result.NormalizedLines),
			"residual_entries": len(result.Residual),
		},
		Status:    domain.AuditStatusSuccess,
		CreatedAt: result.FinishedAt,
	}
	if result.Outcome != domain.OutcomeCompleted {
		log.Action = domain.AuditActionRunAborted
		log.Status = domain.AuditStatusFailure
		log.ErrorMessage = result.Error
		log.AfterState["failed_state"] = string(result.FailedState)
	}
	return log
}

// Residual scans the live ledger for entries that still carry duplicate counterpart lines.
func (uc *RepairUseCase) Residual(ctx context.Context) ([]domain.ResidualEntry, error) {
	tx, err := uc.deps.TxManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	ledger, err := uc.deps.Ledger.LoadLedger(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	return NewResidualScanner(uc.deps.Config.JournalTypes).Scan(ledger)
}

// LastResult returns the most recently cached run result.
func (uc *RepairUseCase) LastResult(ctx context.Context) (*domain.RepairResult, error) {
	if uc.deps.Results == nil {
		return nil, domain.ErrResultNotFound
	}
	return uc.deps.Results.GetLast(ctx)
}

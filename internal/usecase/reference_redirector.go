package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerfix/internal/domain"
)

// ReferenceRedirector points every foreign key aimed at a merged line to its keeper,
// then deletes the merged lines from the live table.
type ReferenceRedirector struct {
	catalog   SchemaCatalog
	refs      ReferenceStore
	lines     LedgerStore
	auditRepo AuditRepository
	metrics   MetricsRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewReferenceRedirector creates a new ReferenceRedirector. auditRepo may be nil.
func NewReferenceRedirector(
	catalog SchemaCatalog,
	refs ReferenceStore,
	lines LedgerStore,
	auditRepo AuditRepository,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *ReferenceRedirector {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &ReferenceRedirector{
		catalog:   catalog,
		refs:      refs,
		lines:     lines,
		auditRepo: auditRepo,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RedirectAndDelete applies decisions inside tx. Conflicts are resolved per table with policy.
func (r *ReferenceRedirector) RedirectAndDelete(
	ctx context.Context,
	tx Transaction,
	runID string,
	decisions []domain.MergeDecision,
	policy domain.ConflictPolicy,
) (*domain.RedirectReport, error) {
	report := &domain.RedirectReport{}
	if len(decisions) == 0 {
		return report, nil
	}

	redirect, err := domain.NewReferenceRedirect(decisions)
	if err != nil {
		return nil, err
	}

	fks, err := r.catalog.ListForeignKeysInto(ctx, tx, LineTable)
	if err != nil {
		return nil, fmt.Errorf("list foreign keys into %s: %w", LineTable, err)
	}
	report.ForeignKeys = fks

	uniques := make(map[string][]domain.UniqueConstraint)

	for _, fk := range fks {
		if fk.Schema != "" {
			if err := domain.ValidateIdentifier(fk.Schema); err != nil {
				return nil, fmt.Errorf("foreign key %s: %w", fk, err)
			}
		}
		if err := domain.ValidateIdentifier(fk.Table); err != nil {
			return nil, fmt.Errorf("foreign key %s: %w", fk, err)
		}
		if err := domain.ValidateIdentifier(fk.Column); err != nil {
			return nil, fmt.Errorf("foreign key %s: %w", fk, err)
		}

		table := fk.QualifiedTable()
		all, ok := uniques[table]
		if !ok {
			all, err = r.catalog.ListUniqueConstraints(ctx, tx, table)
			if err != nil {
				return nil, fmt.Errorf("list unique constraints of %s: %w", table, err)
			}
			uniques[table] = all
		}

		var covering []domain.UniqueConstraint
		for _, uc := range all {
			if uc.Contains(fk.Column) {
				covering = append(covering, uc)
			}
		}

		strategy := policy.For(fk.Table)
		var rewired int64

		for _, d := range decisions {
			target := domain.ReferenceTarget{ForeignKey: fk, KeeperID: d.KeeperID, MergedIDs: d.MergedIDs}
			for _, id := range d.MergedIDs {
				if keeper, err := redirect.KeeperOf(id); err != nil || keeper != d.KeeperID {
					return nil, fmt.Errorf("%w: line %d under keeper %d", domain.ErrUnresolvedReference, id, d.KeeperID)
				}
			}

			for _, uc := range covering {
				deleted, err := r.resolveConflicts(ctx, tx, runID, target, uc, strategy)
				if err != nil {
					return nil, err
				}
				report.ConflictDeletions = append(report.ConflictDeletions, deleted...)
			}

			n, err := r.refs.RewriteReferences(ctx, tx, target)
			if err != nil {
				return nil, fmt.Errorf("rewrite %s to %d: %w", fk, d.KeeperID, err)
			}
			rewired += n
		}

		report.ReferencesRewired += rewired
		r.metrics.ReferencesRewired(fk.Table, rewired)
		r.logger.Info().
			Str("foreign_key", fk.String()).
			Int64("rewired", rewired).
			Msg("redirected references")
	}

	merged := redirect.MergedIDs()
	deleted, err := r.lines.DeleteLines(ctx, tx, merged)
	if err != nil {
		return nil, fmt.Errorf("delete merged lines: %w", err)
	}
	if deleted != int64(len(merged)) {
		return nil, fmt.Errorf("%w: expected to delete %d merged lines, deleted %d",
			domain.ErrUnresolvedReference, len(merged), deleted)
	}
	report.LinesDeleted = deleted
	r.metrics.LinesDeleted(deleted)

	return report, nil
}

func (r *ReferenceRedirector) resolveConflicts(
	ctx context.Context,
	tx Transaction,
	runID string,
	target domain.ReferenceTarget,
	uc domain.UniqueConstraint,
	strategy domain.ConflictStrategy,
) ([]domain.ConflictDeletion, error) {
	fk := target.ForeignKey

	if strategy == domain.ConflictFail {
		rows, err := r.refs.ConflictingReferences(ctx, tx, target, uc)
		if err != nil {
			return nil, fmt.Errorf("find conflicts on %s (%s): %w", fk, uc.Name, err)
		}
		if len(rows) > 0 {
			return nil, fmt.Errorf("%w: %d rows of %s under %s for keeper %d",
				domain.ErrConstraintConflict, len(rows), fk, uc.Name, target.KeeperID)
		}
		return nil, nil
	}

	rows, err := r.refs.DeleteConflictingReferences(ctx, tx, target, uc)
	if err != nil {
		return nil, fmt.Errorf("delete conflicts on %s (%s): %w", fk, uc.Name, err)
	}

	out := make([]domain.ConflictDeletion, 0, len(rows))
	for _, row := range rows {
		mergedID := referencedID(row, fk.Column)
		deletion := domain.ConflictDeletion{
			ForeignKey: fk,
			Constraint: uc.Name,
			MergedID:   mergedID,
			KeeperID:   target.KeeperID,
			Row:        row,
		}
		out = append(out, deletion)

		r.logger.Warn().
			Str("run_id", runID).
			Str("foreign_key", fk.String()).
			Str("constraint", uc.Name).
			Int64("merged_id", mergedID).
			Int64("keeper_id", target.KeeperID).
			Interface("row", row).
			Msg("deleted conflicting reference instead of redirecting")
		r.metrics.ConflictDeleted(fk.Table)

		if r.auditRepo == nil {
			continue
		}
		if err := r.auditRepo.CreateTx(ctx, tx, &domain.AuditLog{
			RunID:        runID,
			Action:       domain.AuditActionConflictDelete,
			ResourceType: fk.Table,
			ResourceID:   strconv.FormatInt(mergedID, 10),
			BeforeState:  row,
			AfterState:   domain.JSON{"keeper_id": target.KeeperID, "constraint": uc.Name},
			Status:       domain.AuditStatusSuccess,
			CreatedAt:    r.now(),
		}); err != nil {
			return nil, fmt.Errorf("audit conflict deletion on %s: %w", fk, err)
		}
	}

	return out, nil
}

// referencedID extracts the referencing column value from a deleted row.
func referencedID(row domain.JSON, column string) int64 {
	switch v := row[column].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		id, _ := strconv.ParseInt(v, 10, 64)
		return id
	default:
		return 0
	}
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/usecase"
)

// ReferenceRepository implements usecase.ReferenceStore with statements built per
// foreign key. Table and column names come from the catalog and are quoted.
type ReferenceRepository struct{}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository() *ReferenceRepository {
	return &ReferenceRepository{}
}

// ConflictingReferences returns the rows that would collide with a unique constraint
// once pointed at the keeper.
func (r *ReferenceRepository) ConflictingReferences(ctx context.Context, tx usecase.Transaction, target domain.ReferenceTarget, uc domain.UniqueConstraint) ([]domain.JSON, error) {
	query := "SELECT to_jsonb(main1) FROM " + tableIdent(target.ForeignKey) + " AS main1 WHERE " +
		conflictPredicate(target, uc)

	return collectRows(ctx, tx, query, target)
}

// DeleteConflictingReferences deletes the colliding rows and returns them.
func (r *ReferenceRepository) DeleteConflictingReferences(ctx context.Context, tx usecase.Transaction, target domain.ReferenceTarget, uc domain.UniqueConstraint) ([]domain.JSON, error) {
	query := "DELETE FROM " + tableIdent(target.ForeignKey) + " AS main1 WHERE " +
		conflictPredicate(target, uc) +
		" RETURNING to_jsonb(main1)"

	return collectRows(ctx, tx, query, target)
}

// RewriteReferences points every row referencing a merged line at the keeper.
func (r *ReferenceRepository) RewriteReferences(ctx context.Context, tx usecase.Transaction, target domain.ReferenceTarget) (int64, error) {
	col := quote(target.ForeignKey.Column)
	query := "UPDATE " + tableIdent(target.ForeignKey) + " SET " + col + " = $1 WHERE " + col + " = ANY($2)"

	tag, err := pgxTx(tx).Exec(ctx, query, target.KeeperID, target.MergedIDs)
	if err != nil {
		return 0, fmt.Errorf("rewrite %s: %w", target.ForeignKey, err)
	}

	return tag.RowsAffected(), nil
}

// conflictPredicate matches rows on a merged id whose other unique columns are already
// held by a row on the keeper ($1) or on a smaller merged id ($2). NULLs never match.
func conflictPredicate(target domain.ReferenceTarget, uc domain.UniqueConstraint) string {
	col := quote(target.ForeignKey.Column)
	others := uc.Others(target.ForeignKey.Column)

	var b strings.Builder
	b.WriteString("main1." + col + " = ANY($2) AND EXISTS (SELECT 1 FROM ")
	b.WriteString(tableIdent(target.ForeignKey) + " AS sub1 WHERE ")
	b.WriteString("(sub1." + col + " = $1 OR (sub1." + col + " = ANY($2) AND sub1." + col + " < main1." + col + "))")
	for _, o := range others {
		q := quote(o)
		b.WriteString(" AND sub1." + q + " = main1." + q)
	}
	b.WriteString(")")

	return b.String()
}

func collectRows(ctx context.Context, tx usecase.Transaction, query string, target domain.ReferenceTarget) ([]domain.JSON, error) {
	rows, err := pgxTx(tx).Query(ctx, query, target.KeeperID, target.MergedIDs)
	if err != nil {
		return nil, fmt.Errorf("conflicts on %s: %w", target.ForeignKey, err)
	}
	defer rows.Close()

	var out []domain.JSON
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan conflicting row: %w", err)
		}
		var row domain.JSON
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("decode conflicting row: %w", err)
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// tableIdent is the quoted, schema-qualified name of the referencing table.
func tableIdent(fk domain.ForeignKey) string {
	if fk.Schema == "" {
		return quote(fk.Table)
	}
	return pgx.Identifier{fk.Schema, fk.Table}.Sanitize()
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

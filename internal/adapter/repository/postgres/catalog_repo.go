package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/usecase"
)

const (
	// Single-column foreign keys only; composite keys cannot point at a line id alone.
	listForeignKeysQuery = `
		SELECT c.conname, n.nspname, cl.relname, a.attname
		FROM pg_constraint c
		JOIN pg_class cl ON cl.oid = c.conrelid
		JOIN pg_namespace n ON n.oid = cl.relnamespace
		JOIN pg_attribute a ON a.attrelid = c.conrelid AND a.attnum = c.conkey[1]
		WHERE c.contype = 'f'
		  AND c.confrelid = $1::regclass
		  AND array_length(c.conkey, 1) = 1
		ORDER BY n.nspname, cl.relname, a.attname, c.conname`

	// Partial and expression indexes are skipped: their uniqueness is not a plain column tuple.
	listUniqueConstraintsQuery = `
		SELECT ic.relname, array_agg(a.attname ORDER BY k.ord)::text[]
		FROM pg_index i
		JOIN pg_class ic ON ic.oid = i.indexrelid
		JOIN LATERAL unnest(i.indkey) WITH ORDINALITY AS k(attnum, ord) ON true
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = k.attnum
		WHERE i.indrelid = $1::regclass
		  AND i.indisunique
		  AND i.indpred IS NULL
		  AND i.indexprs IS NULL
		GROUP BY ic.relname
		ORDER BY ic.relname`
)

// CatalogRepository implements usecase.SchemaCatalog from the PostgreSQL system catalogs.
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// ListForeignKeysInto lists the columns that reference table.
func (r *CatalogRepository) ListForeignKeysInto(ctx context.Context, tx usecase.Transaction, table string) ([]domain.ForeignKey, error) {
	rows, err := pgxTx(tx).Query(ctx, listForeignKeysQuery, table)
	if err != nil {
		return nil, fmt.Errorf("list foreign keys into %s: %w", table, err)
	}
	defer rows.Close()

	var fks []domain.ForeignKey
	for rows.Next() {
		var fk domain.ForeignKey
		if err := rows.Scan(&fk.Constraint, &fk.Schema, &fk.Table, &fk.Column); err != nil {
			return nil, fmt.Errorf("scan foreign key: %w", err)
		}
		fks = append(fks, fk)
	}

	return fks, rows.Err()
}

// ListUniqueConstraints lists unique indexes, primary keys included, of table.
// table is a bare or schema-qualified name as returned by ForeignKey.QualifiedTable.
func (r *CatalogRepository) ListUniqueConstraints(ctx context.Context, tx usecase.Transaction, table string) ([]domain.UniqueConstraint, error) {
	rows, err := pgxTx(tx).Query(ctx, listUniqueConstraintsQuery, regclassName(table))
	if err != nil {
		return nil, fmt.Errorf("list unique constraints of %s: %w", table, err)
	}
	defer rows.Close()

	var ucs []domain.UniqueConstraint
	for rows.Next() {
		var uc domain.UniqueConstraint
		if err := rows.Scan(&uc.Name, &uc.Columns); err != nil {
			return nil, fmt.Errorf("scan unique constraint: %w", err)
		}
		ucs = append(ucs, uc)
	}

	return ucs, rows.Err()
}

// regclassName quotes each part of a possibly schema-qualified name for a ::regclass cast.
func regclassName(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// MergeGroup is a set of lines sharing (entry, account, currency) that represent
// the same ledger position. LineIDs is sorted ascending; the first id is the keeper.
type MergeGroup struct {
	EntryID    int64
	AccountID  int64
	CurrencyID int64
	LineIDs    []int64
}

// KeeperID returns the surviving line id.
func (g MergeGroup) KeeperID() int64 {
	return g.LineIDs[0]
}

// MergedIDs returns the ids folded into the keeper.
func (g MergeGroup) MergedIDs() []int64 {
	return g.LineIDs[1:]
}

// MergeDecision is the outcome of consolidating one group.
type MergeDecision struct {
	EntryID           int64
	AccountID         int64
	KeeperID          int64
	MergedIDs         []int64
	NewDebit          decimal.Decimal
	NewCredit         decimal.Decimal
	NewAmountCurrency decimal.Decimal
	NewBalance        decimal.Decimal
}

// ReferenceRedirect maps each merged line id to its keeper.
type ReferenceRedirect map[int64]int64

// NewReferenceRedirect builds the redirect map from decisions. It rejects a keeper
// listed in its own merge set, an id merged into two keepers, and an id that is both
// a keeper and merged elsewhere.
func NewReferenceRedirect(decisions []MergeDecision) (ReferenceRedirect, error) {
	redirect := make(ReferenceRedirect)
	keepers := make(map[int64]struct{}, len(decisions))

	for _, d := range decisions {
		keepers[d.KeeperID] = struct{}{}
	}

	for _, d := range decisions {
		if len(d.MergedIDs) == 0 {
			return nil, fmt.Errorf("%w: keeper %d has nothing to merge", ErrUnresolvedReference, d.KeeperID)
		}
		for _, id := range d.MergedIDs {
			if id == d.KeeperID {
				return nil, fmt.Errorf("%w: line %d is its own keeper", ErrUnresolvedReference, id)
			}
			if _, ok := keepers[id]; ok {
				return nil, fmt.Errorf("%w: line %d is both keeper and merged", ErrUnresolvedReference, id)
			}
			if prev, ok := redirect[id]; ok && prev != d.KeeperID {
				return nil, fmt.Errorf("%w: line %d merged into %d and %d", ErrUnresolvedReference, id, prev, d.KeeperID)
			}
			redirect[id] = d.KeeperID
		}
	}

	return redirect, nil
}

// KeeperOf returns the keeper for a merged id.
func (r ReferenceRedirect) KeeperOf(id int64) (int64, error) {
	keeper, ok := r[id]
	if !ok {
		return 0, fmt.Errorf("%w: line %d", ErrUnresolvedReference, id)
	}
	return keeper, nil
}

// MergedIDs returns every merged id in ascending order.
func (r ReferenceRedirect) MergedIDs() []int64 {
	ids := make([]int64, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ForeignKey is a column in some table that references the ledger-line table.
// Schema is empty when the catalog does not distinguish schemas.
type ForeignKey struct {
	Constraint string
	Schema     string
	Table      string
	Column     string
}

func (fk ForeignKey) String() string {
	return fk.QualifiedTable() + "." + fk.Column
}

// QualifiedTable returns schema.table, or the bare table without a schema.
func (fk ForeignKey) QualifiedTable() string {
	if fk.Schema == "" {
		return fk.Table
	}
	return fk.Schema + "." + fk.Table
}

// UniqueConstraint is a unique index or primary key on a referencing table.
type UniqueConstraint struct {
	Name    string
	Columns []string
}

// Contains reports whether the constraint covers column.
func (u UniqueConstraint) Contains(column string) bool {
	for _, c := range u.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Others returns the constraint columns other than column.
func (u UniqueConstraint) Others(column string) []string {
	out := make([]string, 0, len(u.Columns))
	for _, c := range u.Columns {
		if c != column {
			out = append(out, c)
		}
	}
	return out
}

// ReferenceTarget is one redirect unit: rows of FK pointing at MergedIDs move to KeeperID.
type ReferenceTarget struct {
	ForeignKey ForeignKey
	KeeperID   int64
	MergedIDs  []int64
}

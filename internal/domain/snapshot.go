package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Snapshot is the staging copy of the ledger-line table for one repair run.
// It holds value copies keyed by id and tracks which rows were rewritten or removed,
// so nothing touches the live table until the run commits.
type Snapshot struct {
	lines   map[int64]LedgerLine
	dirty   map[int64]struct{}
	deleted map[int64]struct{}
}

// NewSnapshot copies lines into a new Snapshot.
func NewSnapshot(lines []LedgerLine) *Snapshot {
	s := &Snapshot{
		lines:   make(map[int64]LedgerLine, len(lines)),
		dirty:   make(map[int64]struct{}),
		deleted: make(map[int64]struct{}),
	}
	for _, l := range lines {
		s.lines[l.ID] = l
	}
	return s
}

// Get returns the staged line with the given id.
func (s *Snapshot) Get(id int64) (LedgerLine, bool) {
	l, ok := s.lines[id]
	return l, ok
}

// Len returns the number of staged lines.
func (s *Snapshot) Len() int {
	return len(s.lines)
}

// Put replaces a staged line and marks it dirty.
func (s *Snapshot) Put(line LedgerLine) {
	s.lines[line.ID] = line
	s.dirty[line.ID] = struct{}{}
}

// Delete removes a staged line.
func (s *Snapshot) Delete(id int64) {
	if _, ok := s.lines[id]; !ok {
		return
	}
	delete(s.lines, id)
	delete(s.dirty, id)
	s.deleted[id] = struct{}{}
}

// Lines returns the staged lines ordered by id.
func (s *Snapshot) Lines() []LedgerLine {
	out := make([]LedgerLine, 0, len(s.lines))
	for _, l := range s.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Dirty returns rewritten lines that still exist, ordered by id.
func (s *Snapshot) Dirty() []LedgerLine {
	out := make([]LedgerLine, 0, len(s.dirty))
	for id := range s.dirty {
		out = append(out, s.lines[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Deleted returns removed ids in ascending order.
func (s *Snapshot) Deleted() []int64 {
	out := make([]int64, 0, len(s.deleted))
	for id := range s.deleted {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ByEntry groups staged lines by entry id, each group ordered by line id.
func (s *Snapshot) ByEntry() map[int64][]LedgerLine {
	out := make(map[int64][]LedgerLine)
	for _, l := range s.Lines() {
		out[l.EntryID] = append(out[l.EntryID], l)
	}
	return out
}

// Totals sums debit and credit per (entry, account).
func (s *Snapshot) Totals() map[EntryAccountKey]EntryAccountTotal {
	return SumByEntryAccount(s.Lines())
}

// SumByEntryAccount sums debit and credit per (entry, account).
func SumByEntryAccount(lines []LedgerLine) map[EntryAccountKey]EntryAccountTotal {
	out := make(map[EntryAccountKey]EntryAccountTotal)
	for _, l := range lines {
		key := EntryAccountKey{EntryID: l.EntryID, AccountID: l.AccountID}
		t, ok := out[key]
		if !ok {
			t = EntryAccountTotal{Key: key, Debit: decimal.Zero, Credit: decimal.Zero}
		}
		t.Debit = t.Debit.Add(l.Debit)
		t.Credit = t.Credit.Add(l.Credit)
		out[key] = t
	}
	return out
}

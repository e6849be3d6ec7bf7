package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testLine(id, entry, account int64, debit, credit int64) LedgerLine {
	return LedgerLine{
		ID:        id,
		EntryID:   entry,
		AccountID: account,
		Debit:     decimal.NewFromInt(debit),
		Credit:    decimal.NewFromInt(credit),
	}
}

func TestSnapshot_TracksChanges(t *testing.T) {
	lines := []LedgerLine{testLine(3, 1, 100, 5, 0), testLine(1, 1, 100, 0, 2), testLine(2, 2, 200, 1, 0)}
	s := NewSnapshot(lines)

	lines[0].Debit = decimal.NewFromInt(99)
	if l, _ := s.Get(3); !l.Debit.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("snapshot must copy lines, got %s", l.Debit)
	}

	l, _ := s.Get(1)
	l.Credit = decimal.NewFromInt(7)
	s.Put(l)
	s.Put(testLine(3, 1, 100, 6, 0))
	s.Delete(3)
	s.Delete(42)

	if s.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", s.Len())
	}
	dirty := s.Dirty()
	if len(dirty) != 1 || dirty[0].ID != 1 {
		t.Fatalf("expected line 1 dirty, got %+v", dirty)
	}
	if deleted := s.Deleted(); len(deleted) != 1 || deleted[0] != 3 {
		t.Fatalf("expected line 3 deleted, got %v", deleted)
	}
	if got := s.Lines(); got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("lines not ordered by id: %+v", got)
	}
	if byEntry := s.ByEntry(); len(byEntry[1]) != 1 || len(byEntry[2]) != 1 {
		t.Fatalf("unexpected grouping %+v", byEntry)
	}

	totals := s.Totals()
	if got := totals[EntryAccountKey{EntryID: 1, AccountID: 100}]; !got.Credit.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("unexpected total %+v", got)
	}
}

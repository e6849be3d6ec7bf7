package usecase

import (
	"sort"

	"github.com/iho/ledgerfix/internal/domain"
)

// ResidualScanner reports entries that still carry several counterpart lines on one
// account, regardless of currency. The scan is informational only.
type ResidualScanner struct {
	journalTypes []string
}

// NewResidualScanner creates a new ResidualScanner.
func NewResidualScanner(journalTypes []string) *ResidualScanner {
	return &ResidualScanner{journalTypes: journalTypes}
}

// Scan inspects the ledger's current lines.
func (s *ResidualScanner) Scan(ledger *domain.Ledger) ([]domain.ResidualEntry, error) {
	snapshot := domain.NewSnapshot(ledger.Lines)
	// Collapse currencies so lines the finder keeps apart still show up here.
	for _, l := range snapshot.Lines() {
		l.CurrencyID = 0
		snapshot.Put(l)
	}

	groups, err := NewGroupFinder(ledger, s.journalTypes).FindGroups(snapshot, CounterpartLine)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ResidualEntry, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.ResidualEntry{
			EntryID:   g.EntryID,
			AccountID: g.AccountID,
			LineIDs:   g.LineIDs,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EntryID != out[j].EntryID {
			return out[i].EntryID < out[j].EntryID
		}
		return out[i].AccountID < out[j].AccountID
	})

	return out, nil
}

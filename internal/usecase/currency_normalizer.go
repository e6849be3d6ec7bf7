package usecase

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerfix/internal/domain"
)

// CurrencyNormalizer rewrites posted mixed-currency entries to their header currency.
type CurrencyNormalizer struct {
	ledger *domain.Ledger
	logger zerolog.Logger
}

// NewCurrencyNormalizer creates a new CurrencyNormalizer.
func NewCurrencyNormalizer(ledger *domain.Ledger, logger zerolog.Logger) *CurrencyNormalizer {
	return &CurrencyNormalizer{ledger: ledger, logger: logger}
}

// Normalize stages the rewrite in the snapshot and returns the ids of rewritten lines.
func (n *CurrencyNormalizer) Normalize(snapshot *domain.Snapshot) ([]int64, error) {
	byEntry := snapshot.ByEntry()

	entryIDs := make([]int64, 0, len(byEntry))
	for id := range byEntry {
		entryIDs = append(entryIDs, id)
	}
	sort.Slice(entryIDs, func(i, j int) bool { return entryIDs[i] < entryIDs[j] })

	var rewritten []int64
	for _, entryID := range entryIDs {
		lines := byEntry[entryID]
		if !mixedCurrency(lines) {
			continue
		}

		ec, err := n.ledger.Context(entryID)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", entryID, err)
		}
		if !ec.Entry.IsNormalizable() {
			continue
		}

		target := ec.Entry.CurrencyID
		companyCurrency := target == ec.Company.CurrencyID

		for _, line := range lines {
			line.AmountCurrency = domain.SignedAmount(companyCurrency, line.Debit, line.Credit, line.AmountCurrency)
			line.CurrencyID = target
			snapshot.Put(line)
			rewritten = append(rewritten, line.ID)
		}

		n.logger.Debug().
			Int64("entry_id", entryID).
			Int64("currency_id", target).
			Int("lines", len(lines)).
			Msg("normalized entry currency")
	}

	return rewritten, nil
}

func mixedCurrency(lines []domain.LedgerLine) bool {
	for i := 1; i < len(lines); i++ {
		if lines[i].CurrencyID != lines[0].CurrencyID {
			return true
		}
	}
	return false
}

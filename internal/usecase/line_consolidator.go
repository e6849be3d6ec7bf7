package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerfix/internal/domain"
)

// LineConsolidator folds each merge group into its keeper line.
type LineConsolidator struct {
	ledger *domain.Ledger
}

// NewLineConsolidator creates a new LineConsolidator.
func NewLineConsolidator(ledger *domain.Ledger) *LineConsolidator {
	return &LineConsolidator{ledger: ledger}
}

// Consolidate rewrites every keeper in the snapshot with the group's net amounts and
// removes the other members from the snapshot.
func (c *LineConsolidator) Consolidate(snapshot *domain.Snapshot, groups []domain.MergeGroup) ([]domain.MergeDecision, error) {
	decisions := make([]domain.MergeDecision, 0, len(groups))

	for _, g := range groups {
		ec, err := c.ledger.Context(g.EntryID)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", g.EntryID, err)
		}

		keeper, ok := snapshot.Get(g.KeeperID())
		if !ok {
			return nil, fmt.Errorf("%w: keeper %d missing from snapshot", domain.ErrUnresolvedReference, g.KeeperID())
		}

		debit, credit, amount := decimal.Zero, decimal.Zero, decimal.Zero
		for _, id := range g.LineIDs {
			line, ok := snapshot.Get(id)
			if !ok {
				return nil, fmt.Errorf("%w: line %d missing from snapshot", domain.ErrUnresolvedReference, id)
			}
			debit = debit.Add(line.Debit)
			credit = credit.Add(line.Credit)
			amount = amount.Add(line.AmountCurrency)
		}

		newDebit := domain.Round(decimal.Max(debit.Sub(credit), decimal.Zero))
		newCredit := domain.Round(decimal.Max(credit.Sub(debit), decimal.Zero))
		companyCurrency := g.CurrencyID == ec.Company.CurrencyID

		keeper.Debit = newDebit
		keeper.Credit = newCredit
		keeper.AmountCurrency = domain.SignedAmount(companyCurrency, newDebit, newCredit, amount)
		snapshot.Put(keeper)

		merged := append([]int64(nil), g.MergedIDs()...)
		for _, id := range merged {
			snapshot.Delete(id)
		}

		decisions = append(decisions, domain.MergeDecision{
			EntryID:           g.EntryID,
			AccountID:         g.AccountID,
			KeeperID:          keeper.ID,
			MergedIDs:         merged,
			NewDebit:          newDebit,
			NewCredit:         newCredit,
			NewAmountCurrency: keeper.AmountCurrency,
			NewBalance:        newDebit.Sub(newCredit),
		})
	}

	return decisions, nil
}

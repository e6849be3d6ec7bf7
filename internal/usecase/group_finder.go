package usecase

import (
	"fmt"
	"sort"

	"github.com/iho/ledgerfix/internal/domain"
)

// LinePredicate selects lines that are candidates for consolidation.
type LinePredicate func(ledger *domain.Ledger, line domain.LedgerLine, ec *domain.EntryContext) bool

// CounterpartLine matches receivable/payable lines and lines on the company transfer account.
func CounterpartLine(ledger *domain.Ledger, line domain.LedgerLine, ec *domain.EntryContext) bool {
	if ledger.AccountType(line.AccountID).IsCounterpart() {
		return true
	}
	return ec.Company.TransferAccountID != 0 && line.AccountID == ec.Company.TransferAccountID
}

// LiquidityLine matches lines of payment entries on the journal default account, the
// company payment debit/credit accounts, a payment method account of the journal, or
// the payment method account of the entry's payment. Entries without a payment, such
// as bank statement lines, never match.
func LiquidityLine(_ *domain.Ledger, line domain.LedgerLine, ec *domain.EntryContext) bool {
	acc := line.AccountID
	if acc == 0 || ec.Payment == nil {
		return false
	}
	if acc == ec.Company.PaymentDebitAccountID || acc == ec.Company.PaymentCreditAccountID {
		return true
	}
	if ec.Journal != nil && (acc == ec.Journal.DefaultAccountID || ec.Journal.HasPaymentMethodAccount(acc)) {
		return true
	}
	return acc == ec.Payment.PaymentAccountID
}

type groupKey struct {
	entryID    int64
	accountID  int64
	currencyID int64
}

// GroupFinder finds sets of snapshot lines that occupy the same ledger position.
type GroupFinder struct {
	ledger       *domain.Ledger
	journalTypes map[string]bool
}

// NewGroupFinder creates a GroupFinder. A non-empty journalTypes restricts candidates
// to entries posted in journals of those types.
func NewGroupFinder(ledger *domain.Ledger, journalTypes []string) *GroupFinder {
	f := &GroupFinder{ledger: ledger}
	if len(journalTypes) > 0 {
		f.journalTypes = make(map[string]bool, len(journalTypes))
		for _, t := range journalTypes {
			f.journalTypes[t] = true
		}
	}
	return f
}

// FindGroups groups matching lines by (entry, account, currency) and returns the groups
// with more than one member, ordered by keeper id. Each group's ids are ascending.
func (f *GroupFinder) FindGroups(snapshot *domain.Snapshot, match LinePredicate) ([]domain.MergeGroup, error) {
	contexts := make(map[int64]*domain.EntryContext)
	members := make(map[groupKey][]int64)

	for _, line := range snapshot.Lines() {
		ec, ok := contexts[line.EntryID]
		if !ok {
			var err error
			ec, err = f.ledger.Context(line.EntryID)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line.ID, err)
			}
			contexts[line.EntryID] = ec
		}

		if !f.journalAllowed(ec) || !match(f.ledger, line, ec) {
			continue
		}

		key := groupKey{entryID: line.EntryID, accountID: line.AccountID, currencyID: line.CurrencyID}
		members[key] = append(members[key], line.ID)
	}

	groups := make([]domain.MergeGroup, 0)
	for key, ids := range members {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		groups = append(groups, domain.MergeGroup{
			EntryID:    key.entryID,
			AccountID:  key.accountID,
			CurrencyID: key.currencyID,
			LineIDs:    ids,
		})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].KeeperID() < groups[j].KeeperID() })

	return groups, nil
}

func (f *GroupFinder) journalAllowed(ec *domain.EntryContext) bool {
	if f.journalTypes == nil {
		return true
	}
	return ec.Journal != nil && f.journalTypes[ec.Journal.Type]
}

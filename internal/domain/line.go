package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerLine is one debit/credit row of a journal entry (account_move_line).
type LedgerLine struct {
	ID             int64
	EntryID        int64
	AccountID      int64
	CurrencyID     int64
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	AmountCurrency decimal.Decimal
}

// Balance returns debit minus credit.
func (l LedgerLine) Balance() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// EntryAccountKey identifies the (entry, account) position used by balance checks.
type EntryAccountKey struct {
	EntryID   int64
	AccountID int64
}

// EntryAccountTotal holds debit and credit sums for one (entry, account) key.
type EntryAccountTotal struct {
	Key    EntryAccountKey
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Net returns abs(debit - credit) rounded to cents.
func (t EntryAccountTotal) Net() decimal.Decimal {
	return Round(t.Debit.Sub(t.Credit).Abs())
}

package domain

// Ledger is the read model a repair run works from: the live lines plus the
// entries, accounts, companies, journals and payments needed to classify them.
type Ledger struct {
	Lines     []LedgerLine
	Entries   map[int64]*Entry
	Accounts  map[int64]*Account
	Companies map[int64]*Company
	Journals  map[int64]*Journal
	// Payments is keyed by entry id.
	Payments map[int64]*Payment
}

// NewLedger creates an empty Ledger with initialized lookups.
func NewLedger() *Ledger {
	return &Ledger{
		Entries:   make(map[int64]*Entry),
		Accounts:  make(map[int64]*Account),
		Companies: make(map[int64]*Company),
		Journals:  make(map[int64]*Journal),
		Payments:  make(map[int64]*Payment),
	}
}

// EntryContext bundles the entry, its company and its journal.
type EntryContext struct {
	Entry   *Entry
	Company *Company
	Journal *Journal
	Payment *Payment
}

// Context resolves the company, journal and payment of an entry.
// Journal and Payment may be nil; a missing entry or company is an error.
func (l *Ledger) Context(entryID int64) (*EntryContext, error) {
	entry, ok := l.Entries[entryID]
	if !ok {
		return nil, ErrEntryNotFound
	}
	company, ok := l.Companies[entry.CompanyID]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	return &EntryContext{
		Entry:   entry,
		Company: company,
		Journal: l.Journals[entry.JournalID],
		Payment: l.Payments[entryID],
	}, nil
}

// AccountType returns the type of an account, or AccountTypeOther when unknown.
func (l *Ledger) AccountType(accountID int64) AccountType {
	if acc, ok := l.Accounts[accountID]; ok {
		return acc.Type
	}
	return AccountTypeOther
}

package domain

// EntryState is the posting state of a journal entry.
type EntryState string

const (
	EntryStateDraft     EntryState = "draft"
	EntryStatePosted    EntryState = "posted"
	EntryStateCancelled EntryState = "cancel"
)

// Entry represents a journal entry (account_move).
type Entry struct {
	ID         int64
	CompanyID  int64
	JournalID  int64
	CurrencyID int64
	State      EntryState
}

// IsNormalizable reports whether the entry's lines may be rewritten to its header currency.
// Draft and cancelled entries are left alone.
func (e *Entry) IsNormalizable() bool {
	return e.State == EntryStatePosted
}

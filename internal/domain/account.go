package domain

// AccountType classifies an account for duplicate detection.
type AccountType string

const (
	AccountTypeReceivable AccountType = "receivable"
	AccountTypePayable    AccountType = "payable"
	AccountTypeLiquidity  AccountType = "liquidity"
	AccountTypeTransfer   AccountType = "transfer"
	AccountTypeOther      AccountType = "other"
)

// IsCounterpart reports whether lines on this account type are expected once per entry.
func (t AccountType) IsCounterpart() bool {
	return t == AccountTypeReceivable || t == AccountTypePayable
}

// Account is a chart-of-accounts row.
type Account struct {
	ID   int64
	Code string
	Type AccountType
}

// Company holds the per-company accounting configuration the repair depends on.
type Company struct {
	ID                     int64
	CurrencyID             int64
	TransferAccountID      int64
	PaymentDebitAccountID  int64
	PaymentCreditAccountID int64
}

// Journal is an accounting journal with its liquidity accounts.
type Journal struct {
	ID               int64
	CompanyID        int64
	Type             string
	DefaultAccountID int64
	// PaymentMethodAccountIDs collects inbound and outbound payment method line accounts.
	PaymentMethodAccountIDs []int64
}

// HasPaymentMethodAccount reports whether accountID is one of the journal's payment method accounts.
func (j *Journal) HasPaymentMethodAccount(accountID int64) bool {
	for _, id := range j.PaymentMethodAccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}

// Payment links an entry to the account of the payment method that produced it.
type Payment struct {
	EntryID          int64
	PaymentAccountID int64
}

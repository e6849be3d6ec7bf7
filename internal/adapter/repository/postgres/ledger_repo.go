package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/usecase"
)

const (
	lockLinesQuery = `LOCK TABLE account_move_line IN EXCLUSIVE MODE`

	// Section and note lines (display_type) have no account and no amounts.
	selectLinesQuery = `
		SELECT id, move_id, account_id, COALESCE(currency_id, 0), debit, credit, amount_currency
		FROM account_move_line
		WHERE account_id IS NOT NULL
		ORDER BY id`

	selectEntriesQuery = `
		SELECT id, company_id, journal_id, COALESCE(currency_id, 0), state
		FROM account_move`

	selectAccountsQuery = `
		SELECT id, COALESCE(code, ''), COALESCE(internal_type, 'other')
		FROM account_account`

	selectCompaniesQuery = `
		SELECT id, COALESCE(currency_id, 0), COALESCE(transfer_account_id, 0),
		       COALESCE(account_journal_payment_debit_account_id, 0),
		       COALESCE(account_journal_payment_credit_account_id, 0)
		FROM res_company`

	selectJournalsQuery = `
		SELECT id, company_id, type, COALESCE(default_account_id, 0)
		FROM account_journal`

	selectPaymentMethodAccountsQuery = `
		SELECT journal_id, payment_account_id
		FROM account_payment_method_line
		WHERE payment_account_id IS NOT NULL
		ORDER BY journal_id, payment_account_id`

	selectPaymentsQuery = `
		SELECT ap.move_id, COALESCE(pml.payment_account_id, 0)
		FROM account_payment ap
		LEFT JOIN account_payment_method_line pml ON pml.id = ap.payment_method_line_id`

	sumByEntryAccountQuery = `
		SELECT move_id, account_id, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM account_move_line
		WHERE account_id IS NOT NULL
		GROUP BY move_id, account_id
		ORDER BY move_id, account_id`

	updateLinesQuery = `
		UPDATE account_move_line AS l
		SET currency_id = u.currency_id,
		    debit = u.debit,
		    credit = u.credit,
		    balance = u.debit - u.credit,
		    amount_currency = u.amount_currency
		FROM unnest($1::bigint[], $2::bigint[], $3::numeric[], $4::numeric[], $5::numeric[])
		     AS u(id, currency_id, debit, credit, amount_currency)
		WHERE l.id = u.id`

	deleteLinesQuery = `DELETE FROM account_move_line WHERE id = ANY($1)`
)

// LedgerRepository implements usecase.LedgerStore over the Odoo accounting schema.
// Every call runs inside the caller's transaction.
type LedgerRepository struct{}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

// Lock takes an EXCLUSIVE lock on the ledger-line table; readers are not blocked.
func (r *LedgerRepository) Lock(ctx context.Context, tx usecase.Transaction) error {
	if _, err := pgxTx(tx).Exec(ctx, lockLinesQuery); err != nil {
		return fmt.Errorf("lock ledger lines: %w", err)
	}
	return nil
}

// LoadLedger reads the lines and every lookup the repair needs.
func (r *LedgerRepository) LoadLedger(ctx context.Context, tx usecase.Transaction) (*domain.Ledger, error) {
	q := pgxTx(tx)
	ledger := domain.NewLedger()

	lines, err := r.loadLines(ctx, q)
	if err != nil {
		return nil, err
	}
	ledger.Lines = lines

	if err := r.loadEntries(ctx, q, ledger); err != nil {
		return nil, err
	}
	if err := r.loadAccounts(ctx, q, ledger); err != nil {
		return nil, err
	}
	if err := r.loadCompanies(ctx, q, ledger); err != nil {
		return nil, err
	}
	if err := r.loadJournals(ctx, q, ledger); err != nil {
		return nil, err
	}
	if err := r.loadPayments(ctx, q, ledger); err != nil {
		return nil, err
	}

	return ledger, nil
}

func (r *LedgerRepository) loadLines(ctx context.Context, q pgx.Tx) ([]domain.LedgerLine, error) {
	rows, err := q.Query(ctx, selectLinesQuery)
	if err != nil {
		return nil, fmt.Errorf("load lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		var (
			l                     domain.LedgerLine
			debit, credit, amount pgtype.Numeric
		)
		if err := rows.Scan(&l.ID, &l.EntryID, &l.AccountID, &l.CurrencyID, &debit, &credit, &amount); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		if l.Debit, err = toDecimal(debit); err != nil {
			return nil, err
		}
		if l.Credit, err = toDecimal(credit); err != nil {
			return nil, err
		}
		if l.AmountCurrency, err = toDecimal(amount); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (r *LedgerRepository) loadEntries(ctx context.Context, q pgx.Tx, ledger *domain.Ledger) error {
	rows, err := q.Query(ctx, selectEntriesQuery)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e     domain.Entry
			state string
		)
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.JournalID, &e.CurrencyID, &state); err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}
		e.State = domain.EntryState(state)
		ledger.Entries[e.ID] = &e
	}

	return rows.Err()
}

func (r *LedgerRepository) loadAccounts(ctx context.Context, q pgx.Tx, ledger *domain.Ledger) error {
	rows, err := q.Query(ctx, selectAccountsQuery)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a        domain.Account
			internal string
		)
		if err := rows.Scan(&a.ID, &a.Code, &internal); err != nil {
			return fmt.Errorf("scan account: %w", err)
		}
		a.Type = accountType(internal)
		ledger.Accounts[a.ID] = &a
	}

	return rows.Err()
}

func (r *LedgerRepository) loadCompanies(ctx context.Context, q pgx.Tx, ledger *domain.Ledger) error {
	rows, err := q.Query(ctx, selectCompaniesQuery)
	if err != nil {
		return fmt.Errorf("load companies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.CurrencyID, &c.TransferAccountID, &c.PaymentDebitAccountID, &c.PaymentCreditAccountID); err != nil {
			return fmt.Errorf("scan company: %w", err)
		}
		ledger.Companies[c.ID] = &c
	}

	return rows.Err()
}

func (r *LedgerRepository) loadJournals(ctx context.Context, q pgx.Tx, ledger *domain.Ledger) error {
	rows, err := q.Query(ctx, selectJournalsQuery)
	if err != nil {
		return fmt.Errorf("load journals: %w", err)
	}

	for rows.Next() {
		var j domain.Journal
		if err := rows.Scan(&j.ID, &j.CompanyID, &j.Type, &j.DefaultAccountID); err != nil {
			rows.Close()
			return fmt.Errorf("scan journal: %w", err)
		}
		ledger.Journals[j.ID] = &j
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.Query(ctx, selectPaymentMethodAccountsQuery)
	if err != nil {
		return fmt.Errorf("load payment method accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var journalID, accountID int64
		if err := rows.Scan(&journalID, &accountID); err != nil {
			return fmt.Errorf("scan payment method account: %w", err)
		}
		if j, ok := ledger.Journals[journalID]; ok && !j.HasPaymentMethodAccount(accountID) {
			j.PaymentMethodAccountIDs = append(j.PaymentMethodAccountIDs, accountID)
		}
	}

	return rows.Err()
}

func (r *LedgerRepository) loadPayments(ctx context.Context, q pgx.Tx, ledger *domain.Ledger) error {
	rows, err := q.Query(ctx, selectPaymentsQuery)
	if err != nil {
		return fmt.Errorf("load payments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.EntryID, &p.PaymentAccountID); err != nil {
			return fmt.Errorf("scan payment: %w", err)
		}
		ledger.Payments[p.EntryID] = &p
	}

	return rows.Err()
}

// SumByEntryAccount returns live debit and credit totals per (entry, account).
func (r *LedgerRepository) SumByEntryAccount(ctx context.Context, tx usecase.Transaction) ([]domain.EntryAccountTotal, error) {
	rows, err := pgxTx(tx).Query(ctx, sumByEntryAccountQuery)
	if err != nil {
		return nil, fmt.Errorf("sum lines: %w", err)
	}
	defer rows.Close()

	var totals []domain.EntryAccountTotal
	for rows.Next() {
		var (
			t             domain.EntryAccountTotal
			debit, credit pgtype.Numeric
		)
		if err := rows.Scan(&t.Key.EntryID, &t.Key.AccountID, &debit, &credit); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		if t.Debit, err = toDecimal(debit); err != nil {
			return nil, err
		}
		if t.Credit, err = toDecimal(credit); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// UpdateLines writes rewritten lines back in one statement.
func (r *LedgerRepository) UpdateLines(ctx context.Context, tx usecase.Transaction, lines []domain.LedgerLine) error {
	if len(lines) == 0 {
		return nil
	}

	ids := make([]int64, len(lines))
	currencies := make([]int64, len(lines))
	debits := make([]pgtype.Numeric, len(lines))
	credits := make([]pgtype.Numeric, len(lines))
	amounts := make([]pgtype.Numeric, len(lines))
	for i, l := range lines {
		ids[i] = l.ID
		currencies[i] = l.CurrencyID
		debits[i] = decimalToNumeric(l.Debit)
		credits[i] = decimalToNumeric(l.Credit)
		amounts[i] = decimalToNumeric(l.AmountCurrency)
	}

	tag, err := pgxTx(tx).Exec(ctx, updateLinesQuery, ids, currencies, debits, credits, amounts)
	if err != nil {
		return fmt.Errorf("update lines: %w", err)
	}
	if tag.RowsAffected() != int64(len(lines)) {
		return fmt.Errorf("update lines: %d of %d rows matched: %w", tag.RowsAffected(), len(lines), domain.ErrUnresolvedReference)
	}

	return nil
}

// DeleteLines deletes lines by id and returns the number removed.
func (r *LedgerRepository) DeleteLines(ctx context.Context, tx usecase.Transaction, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := pgxTx(tx).Exec(ctx, deleteLinesQuery, ids)
	if err != nil {
		return 0, fmt.Errorf("delete lines: %w", err)
	}

	return tag.RowsAffected(), nil
}

func accountType(internal string) domain.AccountType {
	switch internal {
	case "receivable":
		return domain.AccountTypeReceivable
	case "payable":
		return domain.AccountTypePayable
	case "liquidity":
		return domain.AccountTypeLiquidity
	default:
		return domain.AccountTypeOther
	}
}

func toDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(n.Int.String())
	if err != nil {
		return decimal.Zero, err
	}

	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d, nil
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

package usecase_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerfix/internal/adapter/repository/memory"
	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/usecase"
	"github.com/iho/ledgerfix/internal/usecase/mocks"
)

const (
	currencyCAD int64 = 1
	currencyUSD int64 = 2
	currencyEUR int64 = 3

	accReceivable int64 = 100
	accPayable    int64 = 200
	accIncome     int64 = 300
	accBank       int64 = 500
	accPayDebit   int64 = 501
	accPayCredit  int64 = 502
	accPayMethod  int64 = 503
	accTransfer   int64 = 900

	linkTable = "reconcile_link"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(id, entry, account, currency int64, debit, credit, amount string) domain.LedgerLine {
	return domain.LedgerLine{
		ID:             id,
		EntryID:        entry,
		AccountID:      account,
		CurrencyID:     currency,
		Debit:          dec(debit),
		Credit:         dec(credit),
		AmountCurrency: dec(amount),
	}
}

// newLedgerStore builds a company in CAD with one bank journal and the chart of
// accounts used across the tests. No entries or lines are added.
func newLedgerStore() *memory.Store {
	store := memory.NewStore()
	store.AddCompany(domain.Company{
		ID:                     1,
		CurrencyID:             currencyCAD,
		TransferAccountID:      accTransfer,
		PaymentDebitAccountID:  accPayDebit,
		PaymentCreditAccountID: accPayCredit,
	})
	store.AddJournal(domain.Journal{
		ID:                      1,
		CompanyID:               1,
		Type:                    "bank",
		DefaultAccountID:        accBank,
		PaymentMethodAccountIDs: []int64{accPayMethod},
	})
	store.AddAccount(domain.Account{ID: accReceivable, Code: "1100", Type: domain.AccountTypeReceivable})
	store.AddAccount(domain.Account{ID: accPayable, Code: "2100", Type: domain.AccountTypePayable})
	store.AddAccount(domain.Account{ID: accIncome, Code: "4000", Type: domain.AccountTypeOther})
	store.AddAccount(domain.Account{ID: accBank, Code: "1010", Type: domain.AccountTypeLiquidity})
	store.AddAccount(domain.Account{ID: accTransfer, Code: "1090", Type: domain.AccountTypeTransfer})
	return store
}

func addEntry(store *memory.Store, id, currency int64, state domain.EntryState, lines ...domain.LedgerLine) {
	store.AddEntry(domain.Entry{ID: id, CompanyID: 1, JournalID: 1, CurrencyID: currency, State: state})
	for _, l := range lines {
		store.AddLine(l)
	}
}

// addReceivableTriple adds the entry whose receivable position was split over
// lines 10, 11 and 12.
func addReceivableTriple(store *memory.Store) {
	addEntry(store, 1, currencyCAD, domain.EntryStatePosted,
		line(10, 1, accReceivable, currencyCAD, "50", "0", "50"),
		line(11, 1, accReceivable, currencyCAD, "0", "20", "-20"),
		line(12, 1, accReceivable, currencyCAD, "0", "30", "-30"),
	)
}

// addLinkTable declares reconcile_link(line_id) -> account_move_line with a unique
// (line_id, statement_id) index.
func addLinkTable(store *memory.Store, rows ...memory.Row) {
	store.AddTable(linkTable,
		domain.UniqueConstraint{Name: "reconcile_link_pkey", Columns: []string{"id"}},
		domain.UniqueConstraint{Name: "reconcile_link_line_statement_key", Columns: []string{"line_id", "statement_id"}},
	)
	store.AddForeignKey(linkTable, "line_id", usecase.LineTable)
	for _, r := range rows {
		store.InsertRow(linkTable, r)
	}
}

type harness struct {
	store   *memory.Store
	audit   *mocks.MemoryAuditRepository
	metrics *mocks.RecordingMetrics
	logs    *bytes.Buffer
	deps    usecase.RepairDeps
}

func newHarness(t *testing.T, store *memory.Store) *harness {
	t.Helper()

	h := &harness{
		store:   store,
		audit:   &mocks.MemoryAuditRepository{},
		metrics: mocks.NewRecordingMetrics(),
		logs:    &bytes.Buffer{},
	}
	h.deps = usecase.RepairDeps{
		TxManager: store,
		Ledger:    store,
		Catalog:   store,
		Refs:      store,
		AuditRepo: h.audit,
		IDGen:     &mocks.SequenceIDGenerator{},
		Metrics:   h.metrics,
		Logger:    zerolog.New(h.logs),
		Config: usecase.RepairConfig{
			Policy: domain.ConflictPolicy{Default: domain.ConflictDelete},
		},
	}
	return h
}

func (h *harness) useCase() *usecase.RepairUseCase {
	return usecase.NewRepairUseCase(h.deps)
}

func requireLine(t *testing.T, store *memory.Store, id int64, debit, credit, amount string, currency int64) {
	t.Helper()
	got, ok := store.Line(id)
	if !ok {
		t.Fatalf("line %d missing", id)
	}
	if !got.Debit.Equal(dec(debit)) || !got.Credit.Equal(dec(credit)) || !got.AmountCurrency.Equal(dec(amount)) {
		t.Fatalf("line %d = %s/%s/%s, want %s/%s/%s",
			id, got.Debit, got.Credit, got.AmountCurrency, debit, credit, amount)
	}
	if got.CurrencyID != currency {
		t.Fatalf("line %d currency = %d, want %d", id, got.CurrencyID, currency)
	}
}

func requireNoLine(t *testing.T, store *memory.Store, id int64) {
	t.Helper()
	if _, ok := store.Line(id); ok {
		t.Fatalf("line %d should have been deleted", id)
	}
}

// nets returns abs(debit - credit) per (entry, account) of the committed lines.
func nets(store *memory.Store) map[domain.EntryAccountKey]string {
	out := make(map[domain.EntryAccountKey]string)
	for key, total := range domain.SumByEntryAccount(store.Lines()) {
		out[key] = total.Net().StringFixed(domain.MoneyPlaces)
	}
	return out
}

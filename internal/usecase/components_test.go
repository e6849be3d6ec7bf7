package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/usecase"
	"github.com/iho/ledgerfix/internal/usecase/mocks"
)

func testLedger() *domain.Ledger {
	ledger := domain.NewLedger()
	ledger.Companies[1] = &domain.Company{
		ID:                     1,
		CurrencyID:             currencyCAD,
		TransferAccountID:      accTransfer,
		PaymentDebitAccountID:  accPayDebit,
		PaymentCreditAccountID: accPayCredit,
	}
	ledger.Journals[1] = &domain.Journal{ID: 1, CompanyID: 1, Type: "bank", DefaultAccountID: accBank, PaymentMethodAccountIDs: []int64{accPayMethod}}
	ledger.Journals[2] = &domain.Journal{ID: 2, CompanyID: 1, Type: "sale"}
	ledger.Accounts[accReceivable] = &domain.Account{ID: accReceivable, Type: domain.AccountTypeReceivable}
	ledger.Accounts[accPayable] = &domain.Account{ID: accPayable, Type: domain.AccountTypePayable}
	ledger.Accounts[accIncome] = &domain.Account{ID: accIncome, Type: domain.AccountTypeOther}
	return ledger
}

func TestGroupFinder_Predicates(t *testing.T) {
	ledger := testLedger()
	ledger.Entries[1] = &domain.Entry{ID: 1, CompanyID: 1, JournalID: 1, CurrencyID: currencyCAD, State: domain.EntryStatePosted}
	ledger.Entries[2] = &domain.Entry{ID: 2, CompanyID: 1, JournalID: 2, CurrencyID: currencyCAD, State: domain.EntryStatePosted}
	ledger.Entries[3] = &domain.Entry{ID: 3, CompanyID: 1, JournalID: 1, CurrencyID: currencyCAD, State: domain.EntryStatePosted}
	ledger.Payments[1] = &domain.Payment{EntryID: 1}
	ledger.Payments[2] = &domain.Payment{EntryID: 2, PaymentAccountID: 777}

	lines := []domain.LedgerLine{
		line(1, 1, accTransfer, currencyCAD, "1", "0", "1"),
		line(2, 1, accTransfer, currencyCAD, "1", "0", "1"),
		line(3, 1, accIncome, currencyCAD, "1", "0", "1"),
		line(4, 1, accIncome, currencyCAD, "1", "0", "1"),
		line(5, 1, accPayMethod, currencyCAD, "1", "0", "1"),
		line(6, 1, accPayMethod, currencyCAD, "1", "0", "1"),
		line(7, 2, 777, currencyCAD, "1", "0", "1"),
		line(8, 2, 777, currencyCAD, "1", "0", "1"),
		line(9, 2, accPayable, currencyCAD, "1", "0", "1"),
		line(10, 2, accPayable, currencyUSD, "1", "0", "1"),
		line(11, 1, accPayDebit, currencyCAD, "1", "0", "1"),
		line(12, 1, accPayDebit, currencyCAD, "1", "0", "1"),
		// entry 3 has no payment: its bank lines are separate statement lines
		line(13, 3, accBank, currencyCAD, "1", "0", "1"),
		line(14, 3, accBank, currencyCAD, "0", "1", "-1"),
	}
	snapshot := domain.NewSnapshot(lines)

	cases := []struct {
		name         string
		match        usecase.LinePredicate
		journalTypes []string
		keepers      []int64
	}{
		{name: "counterpart includes transfer account", match: usecase.CounterpartLine, keepers: []int64{1}},
		{name: "liquidity covers journal, company and payment accounts", match: usecase.LiquidityLine, keepers: []int64{5, 7, 11}},
		{name: "journal filter", match: usecase.LiquidityLine, journalTypes: []string{"sale"}, keepers: []int64{7}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			groups, err := usecase.NewGroupFinder(ledger, tc.journalTypes).FindGroups(snapshot, tc.match)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(groups) != len(tc.keepers) {
				t.Fatalf("expected %d groups, got %+v", len(tc.keepers), groups)
			}
			for i, g := range groups {
				if g.KeeperID() != tc.keepers[i] || len(g.LineIDs) != 2 {
					t.Fatalf("group %d = %+v, want keeper %d", i, g, tc.keepers[i])
				}
			}
		})
	}
}

func TestGroupFinder_UnknownEntry(t *testing.T) {
	snapshot := domain.NewSnapshot([]domain.LedgerLine{line(1, 99, accReceivable, currencyCAD, "1", "0", "1")})
	_, err := usecase.NewGroupFinder(testLedger(), nil).FindGroups(snapshot, usecase.CounterpartLine)
	if !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestLineConsolidator_ForeignCurrencyKeeper(t *testing.T) {
	ledger := testLedger()
	ledger.Entries[1] = &domain.Entry{ID: 1, CompanyID: 1, JournalID: 1, CurrencyID: currencyUSD, State: domain.EntryStatePosted}

	snapshot := domain.NewSnapshot([]domain.LedgerLine{
		line(1, 1, accReceivable, currencyUSD, "10", "0", "8"),
		line(2, 1, accReceivable, currencyUSD, "0", "25.005", "-20"),
	})
	group := domain.MergeGroup{EntryID: 1, AccountID: accReceivable, CurrencyID: currencyUSD, LineIDs: []int64{1, 2}}

	decisions, err := usecase.NewLineConsolidator(ledger).Consolidate(snapshot, []domain.MergeGroup{group})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keeper, _ := snapshot.Get(1)
	if !keeper.Debit.IsZero() || !keeper.Credit.Equal(dec("15.01")) {
		t.Fatalf("unexpected keeper amounts %s/%s", keeper.Debit, keeper.Credit)
	}
	// Foreign currency: magnitude of the keeper's amount, sign of the new balance.
	if !keeper.AmountCurrency.Equal(dec("-12")) {
		t.Fatalf("unexpected amount_currency %s", keeper.AmountCurrency)
	}
	if _, ok := snapshot.Get(2); ok {
		t.Fatalf("merged line should be removed from the snapshot")
	}
	if len(decisions) != 1 || !decisions[0].NewBalance.Equal(dec("-15.01")) {
		t.Fatalf("unexpected decision %+v", decisions)
	}
	if ids := snapshot.Deleted(); len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("unexpected deleted ids %v", ids)
	}
}

func TestLineConsolidator_MissingKeeper(t *testing.T) {
	ledger := testLedger()
	ledger.Entries[1] = &domain.Entry{ID: 1, CompanyID: 1, CurrencyID: currencyCAD, State: domain.EntryStatePosted}

	snapshot := domain.NewSnapshot(nil)
	group := domain.MergeGroup{EntryID: 1, LineIDs: []int64{1, 2}}

	_, err := usecase.NewLineConsolidator(ledger).Consolidate(snapshot, []domain.MergeGroup{group})
	if !errors.Is(err, domain.ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestCurrencyNormalizer_ForeignHeader(t *testing.T) {
	ledger := testLedger()
	ledger.Entries[1] = &domain.Entry{ID: 1, CompanyID: 1, CurrencyID: currencyEUR, State: domain.EntryStatePosted}
	ledger.Entries[2] = &domain.Entry{ID: 2, CompanyID: 1, CurrencyID: currencyEUR, State: domain.EntryStateCancelled}

	snapshot := domain.NewSnapshot([]domain.LedgerLine{
		line(1, 1, accReceivable, currencyUSD, "0", "100", "80"),
		line(2, 1, accIncome, currencyEUR, "100", "0", "-30"),
		line(3, 2, accReceivable, currencyUSD, "0", "5", "-5"),
		line(4, 2, accIncome, currencyEUR, "5", "0", "4"),
	})

	rewritten, err := usecase.NewCurrencyNormalizer(ledger, zerolog.Nop()).Normalize(snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rewritten) != 2 {
		t.Fatalf("expected only the posted entry to be rewritten, got %v", rewritten)
	}

	l1, _ := snapshot.Get(1)
	if l1.CurrencyID != currencyEUR || !l1.AmountCurrency.Equal(dec("-80")) {
		t.Fatalf("line 1 = %d/%s", l1.CurrencyID, l1.AmountCurrency)
	}
	l2, _ := snapshot.Get(2)
	if !l2.AmountCurrency.Equal(dec("30")) {
		t.Fatalf("line 2 amount = %s", l2.AmountCurrency)
	}
	l3, _ := snapshot.Get(3)
	if l3.CurrencyID != currencyUSD {
		t.Fatalf("cancelled entry was rewritten")
	}
}

func TestBalanceVerifier(t *testing.T) {
	snapshot := domain.NewSnapshot([]domain.LedgerLine{
		line(1, 1, accReceivable, currencyCAD, "10", "0", "10"),
		line(2, 1, accIncome, currencyCAD, "0", "10.004", "-10"),
	})
	live := []domain.EntryAccountTotal{
		{Key: domain.EntryAccountKey{EntryID: 1, AccountID: accReceivable}, Debit: dec("6"), Credit: dec("0")},
		{Key: domain.EntryAccountKey{EntryID: 1, AccountID: accReceivable}, Debit: dec("4"), Credit: dec("0")},
		{Key: domain.EntryAccountKey{EntryID: 1, AccountID: accIncome}, Debit: dec("0"), Credit: dec("10")},
		{Key: domain.EntryAccountKey{EntryID: 2, AccountID: accIncome}, Debit: dec("1"), Credit: dec("0")},
	}

	got := usecase.NewBalanceVerifier(zerolog.Nop()).Verify(live, snapshot)
	if len(got) != 1 {
		t.Fatalf("expected one discrepancy, got %+v", got)
	}
	if got[0].EntryID != 2 || !got[0].Snapshot.IsZero() || !got[0].Difference().Equal(dec("-1")) {
		t.Fatalf("unexpected discrepancy %+v", got[0])
	}
}

func TestReferenceRedirector_RejectsUnsafeIdentifiers(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockSchemaCatalog(ctrl)
	catalog.EXPECT().ListForeignKeysInto(gomock.Any(), gomock.Any(), usecase.LineTable).
		Return([]domain.ForeignKey{{Constraint: "x_fkey", Table: `bad"table`, Column: "line_id"}}, nil)

	r := usecase.NewReferenceRedirector(catalog, mocks.NewMockReferenceStore(ctrl), mocks.NewMockLedgerStore(ctrl), nil, nil, zerolog.Nop())
	_, err := r.RedirectAndDelete(context.Background(), mocks.NewMockTransaction(ctrl), "run-1",
		[]domain.MergeDecision{{KeeperID: 1, MergedIDs: []int64{2}}}, domain.ConflictPolicy{})
	if !errors.Is(err, domain.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestReferenceRedirector_RejectsUnsafeSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockSchemaCatalog(ctrl)
	catalog.EXPECT().ListForeignKeysInto(gomock.Any(), gomock.Any(), usecase.LineTable).
		Return([]domain.ForeignKey{{Constraint: "x_fkey", Schema: "Bad", Table: "link", Column: "line_id"}}, nil)

	r := usecase.NewReferenceRedirector(catalog, mocks.NewMockReferenceStore(ctrl), mocks.NewMockLedgerStore(ctrl), nil, nil, zerolog.Nop())
	_, err := r.RedirectAndDelete(context.Background(), mocks.NewMockTransaction(ctrl), "run-1",
		[]domain.MergeDecision{{KeeperID: 1, MergedIDs: []int64{2}}}, domain.ConflictPolicy{})
	if !errors.Is(err, domain.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestReferenceRedirector_DeleteCountMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockSchemaCatalog(ctrl)
	lines := mocks.NewMockLedgerStore(ctrl)
	tx := mocks.NewMockTransaction(ctrl)

	catalog.EXPECT().ListForeignKeysInto(gomock.Any(), tx, usecase.LineTable).Return(nil, nil)
	lines.EXPECT().DeleteLines(gomock.Any(), tx, []int64{2, 3}).Return(int64(1), nil)

	r := usecase.NewReferenceRedirector(catalog, mocks.NewMockReferenceStore(ctrl), lines, nil, nil, zerolog.Nop())
	_, err := r.RedirectAndDelete(context.Background(), tx, "run-1",
		[]domain.MergeDecision{{KeeperID: 1, MergedIDs: []int64{2, 3}}}, domain.ConflictPolicy{})
	if !errors.Is(err, domain.ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestReferenceRedirector_InvalidDecisions(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := usecase.NewReferenceRedirector(mocks.NewMockSchemaCatalog(ctrl), mocks.NewMockReferenceStore(ctrl),
		mocks.NewMockLedgerStore(ctrl), nil, nil, zerolog.Nop())

	_, err := r.RedirectAndDelete(context.Background(), mocks.NewMockTransaction(ctrl), "run-1",
		[]domain.MergeDecision{
			{KeeperID: 1, MergedIDs: []int64{2}},
			{KeeperID: 3, MergedIDs: []int64{2}},
		}, domain.ConflictPolicy{})
	if !errors.Is(err, domain.ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
}

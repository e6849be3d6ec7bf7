package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/usecase"
)

// ErrTxDone is returned when a finished transaction is used again.
var ErrTxDone = errors.New("transaction already finished")

// Row is a row of a referencing table keyed by column name.
type Row map[string]any

type table struct {
	rows    []Row
	uniques []domain.UniqueConstraint
}

type state struct {
	ledger *domain.Ledger
	lines  map[int64]domain.LedgerLine
	tables map[string]*table
	fks    map[string][]domain.ForeignKey // keyed by referenced table
}

func (s *state) clone() *state {
	out := &state{
		ledger: s.ledger,
		lines:  make(map[int64]domain.LedgerLine, len(s.lines)),
		tables: make(map[string]*table, len(s.tables)),
		fks:    s.fks,
	}
	for id, l := range s.lines {
		out.lines[id] = l
	}
	for name, t := range s.tables {
		rows := make([]Row, len(t.rows))
		for i, r := range t.rows {
			rows[i] = copyRow(r)
		}
		out.tables[name] = &table{rows: rows, uniques: t.uniques}
	}
	return out
}

// Store is an in-memory relational store holding a ledger and the tables that
// reference its lines. It implements LedgerStore, SchemaCatalog, ReferenceStore
// and TransactionManager with copy-on-begin transactions.
type Store struct {
	mu      sync.Mutex
	current *state
	locks   int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		current: &state{
			ledger: domain.NewLedger(),
			lines:  make(map[int64]domain.LedgerLine),
			tables: make(map[string]*table),
			fks:    make(map[string][]domain.ForeignKey),
		},
	}
}

// AddCompany registers a company.
func (s *Store) AddCompany(c domain.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.ledger.Companies[c.ID] = &c
}

// AddJournal registers a journal.
func (s *Store) AddJournal(j domain.Journal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.ledger.Journals[j.ID] = &j
}

// AddAccount registers an account.
func (s *Store) AddAccount(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.ledger.Accounts[a.ID] = &a
}

// AddEntry registers a journal entry.
func (s *Store) AddEntry(e domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.ledger.Entries[e.ID] = &e
}

// AddPayment registers the payment behind an entry.
func (s *Store) AddPayment(p domain.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.ledger.Payments[p.EntryID] = &p
}

// AddLine inserts a ledger line.
func (s *Store) AddLine(l domain.LedgerLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.lines[l.ID] = l
}

// AddTable creates a referencing table with its unique constraints.
func (s *Store) AddTable(name string, uniques ...domain.UniqueConstraint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.tables[name] = &table{uniques: uniques}
}

// AddForeignKey declares that table.column references referenced(id).
func (s *Store) AddForeignKey(table, column, referenced string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.fks[referenced] = append(s.current.fks[referenced], domain.ForeignKey{
		Constraint: fmt.Sprintf("%s_%s_fkey", table, column),
		Table:      table,
		Column:     column,
	})
}

// InsertRow appends a row to a referencing table. It does not enforce constraints.
func (s *Store) InsertRow(name string, row Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.current.tables[name]
	if !ok {
		t = &table{}
		s.current.tables[name] = t
	}
	t.rows = append(t.rows, copyRow(row))
}

// Rows returns a copy of a table's committed rows.
func (s *Store) Rows(name string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.current.tables[name]
	if !ok {
		return nil
	}
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = copyRow(r)
	}
	return out
}

// Line returns a committed ledger line.
func (s *Store) Line(id int64) (domain.LedgerLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.current.lines[id]
	return l, ok
}

// Lines returns the committed ledger lines ordered by id.
func (s *Store) Lines() []domain.LedgerLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedLines(s.current.lines)
}

// LockCount returns how many times Lock was called.
func (s *Store) LockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locks
}

// Tx is a copy-on-begin transaction over a Store.
type Tx struct {
	store *Store
	work  *state
	done  bool
}

// Begin starts a new transaction.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Tx{store: s, work: s.current.clone()}, nil
}

// Commit publishes the transaction's changes.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.current = t.work
	t.done = true
	return nil
}

// Rollback discards the transaction's changes.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	return nil
}

func workState(tx usecase.Transaction) (*state, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, fmt.Errorf("memory store: unexpected transaction type %T", tx)
	}
	if t.done {
		return nil, ErrTxDone
	}
	return t.work, nil
}

// Lock records the lock request; transactions are already isolated copies.
func (s *Store) Lock(ctx context.Context, tx usecase.Transaction) error {
	if _, err := workState(tx); err != nil {
		return err
	}
	s.mu.Lock()
	s.locks++
	s.mu.Unlock()
	return nil
}

// LoadLedger returns the ledger as seen by tx.
func (s *Store) LoadLedger(ctx context.Context, tx usecase.Transaction) (*domain.Ledger, error) {
	w, err := workState(tx)
	if err != nil {
		return nil, err
	}
	ledger := *w.ledger
	ledger.Lines = sortedLines(w.lines)
	return &ledger, nil
}

// SumByEntryAccount sums debit and credit per (entry, account).
func (s *Store) SumByEntryAccount(ctx context.Context, tx usecase.Transaction) ([]domain.EntryAccountTotal, error) {
	w, err := workState(tx)
	if err != nil {
		return nil, err
	}
	totals := domain.SumByEntryAccount(sortedLines(w.lines))
	out := make([]domain.EntryAccountTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.EntryID != out[j].Key.EntryID {
			return out[i].Key.EntryID < out[j].Key.EntryID
		}
		return out[i].Key.AccountID < out[j].Key.AccountID
	})
	return out, nil
}

// UpdateLines overwrites existing lines.
func (s *Store) UpdateLines(ctx context.Context, tx usecase.Transaction, lines []domain.LedgerLine) error {
	w, err := workState(tx)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if _, ok := w.lines[l.ID]; !ok {
			return fmt.Errorf("update line %d: %w", l.ID, domain.ErrUnresolvedReference)
		}
		w.lines[l.ID] = l
	}
	return nil
}

// DeleteLines deletes lines by id and returns how many existed.
func (s *Store) DeleteLines(ctx context.Context, tx usecase.Transaction, ids []int64) (int64, error) {
	w, err := workState(tx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, id := range ids {
		if _, ok := w.lines[id]; ok {
			delete(w.lines, id)
			n++
		}
	}
	return n, nil
}

// ListForeignKeysInto returns the columns referencing table.
func (s *Store) ListForeignKeysInto(ctx context.Context, tx usecase.Transaction, tableName string) ([]domain.ForeignKey, error) {
	w, err := workState(tx)
	if err != nil {
		return nil, err
	}
	return append([]domain.ForeignKey(nil), w.fks[tableName]...), nil
}

// ListUniqueConstraints returns the unique constraints of table.
func (s *Store) ListUniqueConstraints(ctx context.Context, tx usecase.Transaction, tableName string) ([]domain.UniqueConstraint, error) {
	w, err := workState(tx)
	if err != nil {
		return nil, err
	}
	t, ok := w.tables[tableName]
	if !ok {
		return nil, nil
	}
	return append([]domain.UniqueConstraint(nil), t.uniques...), nil
}

// ConflictingReferences returns the rows DeleteConflictingReferences would remove.
func (s *Store) ConflictingReferences(ctx context.Context, tx usecase.Transaction, target domain.ReferenceTarget, uc domain.UniqueConstraint) ([]domain.JSON, error) {
	w, err := workState(tx)
	if err != nil {
		return nil, err
	}
	t, ok := w.tables[target.ForeignKey.Table]
	if !ok {
		return nil, nil
	}
	idx := conflictIndexes(t.rows, target, uc)
	out := make([]domain.JSON, 0, len(idx))
	for _, i := range idx {
		out = append(out, toJSON(t.rows[i]))
	}
	return out, nil
}

// DeleteConflictingReferences deletes and returns the conflicting rows.
func (s *Store) DeleteConflictingReferences(ctx context.Context, tx usecase.Transaction, target domain.ReferenceTarget, uc domain.UniqueConstraint) ([]domain.JSON, error) {
	w, err := workState(tx)
	if err != nil {
		return nil, err
	}
	t, ok := w.tables[target.ForeignKey.Table]
	if !ok {
		return nil, nil
	}
	idx := conflictIndexes(t.rows, target, uc)
	if len(idx) == 0 {
		return nil, nil
	}

	drop := make(map[int]bool, len(idx))
	out := make([]domain.JSON, 0, len(idx))
	for _, i := range idx {
		drop[i] = true
		out = append(out, toJSON(t.rows[i]))
	}
	kept := t.rows[:0:0]
	for i, r := range t.rows {
		if !drop[i] {
			kept = append(kept, r)
		}
	}
	t.rows = kept
	return out, nil
}

// RewriteReferences points rows at the keeper and returns how many changed. Like an
// UPDATE, it fails without changing anything when the result would repeat a tuple of
// one of the table's unique constraints.
func (s *Store) RewriteReferences(ctx context.Context, tx usecase.Transaction, target domain.ReferenceTarget) (int64, error) {
	w, err := workState(tx)
	if err != nil {
		return 0, err
	}
	t, ok := w.tables[target.ForeignKey.Table]
	if !ok {
		return 0, nil
	}
	merged := idSet(target.MergedIDs)
	col := target.ForeignKey.Column

	rows := make([]Row, len(t.rows))
	var n int64
	for i, r := range t.rows {
		rows[i] = r
		if id, ok := asID(r[col]); ok && merged[id] {
			rows[i] = copyRow(r)
			rows[i][col] = target.KeeperID
			n++
		}
	}

	for _, uc := range t.uniques {
		if a, b, dup := duplicateTuple(rows, uc.Columns); dup {
			return 0, fmt.Errorf("%w: rewriting %s to %d makes rows %v and %v collide on %s",
				domain.ErrConstraintConflict, target.ForeignKey, target.KeeperID, rows[a]["id"], rows[b]["id"], uc.Name)
		}
	}

	t.rows = rows
	return n, nil
}

// duplicateTuple returns the first pair of rows sharing a full tuple of columns.
func duplicateTuple(rows []Row, columns []string) (int, int, bool) {
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			if sameTuple(rows[i], rows[j], columns) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// conflictIndexes finds rows pointing at a merged id whose remaining unique columns are
// already held by a row pointing at the keeper or at a smaller merged id.
func conflictIndexes(rows []Row, target domain.ReferenceTarget, uc domain.UniqueConstraint) []int {
	col := target.ForeignKey.Column
	others := uc.Others(col)
	merged := idSet(target.MergedIDs)

	var out []int
	for i, r := range rows {
		rid, ok := asID(r[col])
		if !ok || !merged[rid] {
			continue
		}
		for j, s := range rows {
			if i == j {
				continue
			}
			sid, ok := asID(s[col])
			if !ok {
				continue
			}
			winner := sid == target.KeeperID || (merged[sid] && sid < rid)
			if winner && sameTuple(r, s, others) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// sameTuple compares columns; NULLs never match, as in a unique index.
func sameTuple(a, b Row, columns []string) bool {
	for _, c := range columns {
		av, bv := a[c], b[c]
		if av == nil || bv == nil || av != bv {
			return false
		}
	}
	return true
}

func asID(v any) (int64, bool) {
	switch id := v.(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	case int32:
		return int64(id), true
	default:
		return 0, false
	}
}

func idSet(ids []int64) map[int64]bool {
	out := make(map[int64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func copyRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func toJSON(r Row) domain.JSON {
	out := make(domain.JSON, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func sortedLines(lines map[int64]domain.LedgerLine) []domain.LedgerLine {
	out := make([]domain.LedgerLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

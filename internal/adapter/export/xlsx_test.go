package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iho/ledgerfix/internal/domain"
)

func sampleResult() *domain.RepairResult {
	return &domain.RepairResult{
		RunID:      "01J0000000000000000000000",
		Outcome:    domain.OutcomeCompleted,
		State:      domain.StateDone,
		StartedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC),
		Decisions: []domain.MergeDecision{{
			EntryID:           1,
			AccountID:         400,
			KeeperID:          10,
			MergedIDs:         []int64{11, 12},
			NewDebit:          decimal.Zero,
			NewCredit:         decimal.Zero,
			NewAmountCurrency: decimal.Zero,
			NewBalance:        decimal.Zero,
		}},
		Redirect: &domain.RedirectReport{
			ReferencesRewired: 3,
			ConflictDeletions: []domain.ConflictDeletion{{
				ForeignKey: domain.ForeignKey{Table: "tag_rel", Column: "line_id"},
				Constraint: "tag_rel_pkey",
				MergedID:   11,
				KeeperID:   10,
				Row:        domain.JSON{"line_id": float64(11), "tag_id": float64(7)},
			}},
			LinesDeleted: 2,
		},
		Residual: []domain.ResidualEntry{{EntryID: 5, AccountID: 400, LineIDs: []int64{50, 51}}},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetDecisions, SheetDiscrepancies, SheetConflicts, SheetResidual}, f.GetSheetList())

	decisions, err := f.GetRows(SheetDecisions)
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.Equal(t, "Keeper line", decisions[0][2])
	assert.Equal(t, "10", decisions[1][2])
	assert.Equal(t, "11,12", decisions[1][3])

	conflicts, err := f.GetRows(SheetConflicts)
	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "line_id=11 tag_id=7", conflicts[1][5])

	residual, err := f.GetRows(SheetResidual)
	require.NoError(t, err)
	require.Len(t, residual, 2)
	assert.Equal(t, "50,51", residual[1][2])

	discrepancies, err := f.GetRows(SheetDiscrepancies)
	require.NoError(t, err)
	assert.Len(t, discrepancies, 1)
}

func TestSummaryRowsIncludesFailure(t *testing.T) {
	r := &domain.RepairResult{
		Outcome:     domain.OutcomeAbortedBalanceMismatch,
		State:       domain.StateAborted,
		FailedState: domain.StateVerify1,
		Error:       "balance mismatch",
	}

	rows := summaryRows(r)

	var found bool
	for _, row := range rows {
		if row[0] == "Failed state" {
			found = true
			assert.Equal(t, "VERIFY_1", row[1])
		}
	}
	assert.True(t, found, "expected failed state row")
}

package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iho/ledgerfix/internal/domain"
)

const (
	SheetSummary       = "Summary"
	SheetDecisions     = "Decisions"
	SheetDiscrepancies = "Discrepancies"
	SheetConflicts     = "Conflicts"
	SheetResidual      = "Residual"
)

// WriteXLSX writes a repair result as a workbook for accountants to review a plan
// or a completed run.
func WriteXLSX(w io.Writer, result *domain.RepairResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	for _, name := range []string{SheetDecisions, SheetDiscrepancies, SheetConflicts, SheetResidual} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeRows(f, SheetSummary, summaryRows(result)); err != nil {
		return err
	}
	if err := writeRows(f, SheetDecisions, decisionRows(result.Decisions)); err != nil {
		return err
	}
	if err := writeRows(f, SheetDiscrepancies, discrepancyRows(result.Discrepancies)); err != nil {
		return err
	}
	if err := writeRows(f, SheetConflicts, conflictRows(result.Redirect)); err != nil {
		return err
	}
	if err := writeRows(f, SheetResidual, residualRows(result.Residual)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) > 0 {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}
	return nil
}

func summaryRows(r *domain.RepairResult) [][]any {
	rows := [][]any{
		{"Field", "Value"},
		{"Run ID", r.RunID},
		{"Outcome", string(r.Outcome)},
		{"Final state", string(r.State)},
		{"Dry run", r.DryRun},
		{"Started", r.StartedAt},
		{"Finished", r.FinishedAt},
		{"Normalized lines", len(r.NormalizedLines)},
		{"Groups merged", len(r.Decisions)},
		{"Lines merged", r.MergedLineCount()},
		{"Discrepancies", len(r.Discrepancies)},
		{"Residual duplicates", len(r.Residual)},
	}
	if r.FailedState != "" {
		rows = append(rows, []any{"Failed state", string(r.FailedState)})
	}
	if r.Error != "" {
		rows = append(rows, []any{"Error", r.Error})
	}
	if r.Redirect != nil {
		rows = append(rows,
			[]any{"Foreign keys", len(r.Redirect.ForeignKeys)},
			[]any{"References rewired", r.Redirect.ReferencesRewired},
			[]any{"Conflict deletions", len(r.Redirect.ConflictDeletions)},
			[]any{"Lines deleted", r.Redirect.LinesDeleted},
		)
	}
	return rows
}

func decisionRows(decisions []domain.MergeDecision) [][]any {
	rows := [][]any{{"Entry", "Account", "Keeper line", "Merged lines", "Debit", "Credit", "Amount currency", "Balance"}}
	for _, d := range decisions {
		rows = append(rows, []any{
			d.EntryID,
			d.AccountID,
			d.KeeperID,
			joinIDs(d.MergedIDs),
			d.NewDebit.InexactFloat64(),
			d.NewCredit.InexactFloat64(),
			d.NewAmountCurrency.InexactFloat64(),
			d.NewBalance.InexactFloat64(),
		})
	}
	return rows
}

func discrepancyRows(discrepancies []domain.BalanceDiscrepancy) [][]any {
	rows := [][]any{{"Entry", "Account", "Live net", "Snapshot net", "Difference"}}
	for _, d := range discrepancies {
		rows = append(rows, []any{
			d.EntryID,
			d.AccountID,
			d.Live.InexactFloat64(),
			d.Snapshot.InexactFloat64(),
			d.Difference().InexactFloat64(),
		})
	}
	return rows
}

func conflictRows(report *domain.RedirectReport) [][]any {
	rows := [][]any{{"Table", "Column", "Constraint", "Merged line", "Keeper line", "Deleted row"}}
	if report == nil {
		return rows
	}
	for _, c := range report.ConflictDeletions {
		rows = append(rows, []any{
			c.ForeignKey.Table,
			c.ForeignKey.Column,
			c.Constraint,
			c.MergedID,
			c.KeeperID,
			formatRow(c.Row),
		})
	}
	return rows
}

func residualRows(residual []domain.ResidualEntry) [][]any {
	rows := [][]any{{"Entry", "Account", "Lines"}}
	for _, r := range residual {
		rows = append(rows, []any{r.EntryID, r.AccountID, joinIDs(r.LineIDs)})
	}
	return rows
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func formatRow(row domain.JSON) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, row[k])
	}
	return strings.Join(parts, " ")
}

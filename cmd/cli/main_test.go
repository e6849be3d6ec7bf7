package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/infrastructure/auth"
)

func sampleResult() *domain.RepairResult {
	return &domain.RepairResult{
		RunID:       "01HRUN",
		Outcome:     domain.OutcomeAbortedBalanceMismatch,
		State:       domain.StateAborted,
		FailedState: domain.StateVerify1,
		Error:       "snapshot totals do not match live totals",
		Decisions: []domain.MergeDecision{
			{EntryID: 1, AccountID: 100, KeeperID: 10, MergedIDs: []int64{11, 12}},
		},
		Discrepancies: []domain.BalanceDiscrepancy{
			{EntryID: 1, AccountID: 100, Live: decimal.NewFromInt(5), Snapshot: decimal.Zero},
		},
		Residual: []domain.ResidualEntry{{EntryID: 2, AccountID: 100, LineIDs: []int64{20, 21}}},
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, sampleResult())
	out := buf.String()

	for _, want := range []string{
		"Run 01HRUN (live): aborted_balance_mismatch",
		"Failed in VERIFY_1",
		"Merge groups:     1 (2 lines merged)",
		"5.00",
		"20,21",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintResidualEmpty(t *testing.T) {
	var buf bytes.Buffer
	printResidual(&buf, nil)
	if buf.String() != "No residual duplicates.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}); err != nil {
		t.Fatal(err)
	}

	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}
}

func TestPrintAudit(t *testing.T) {
	var buf bytes.Buffer
	printAudit(&buf, []*domain.AuditLog{{
		RunID:        "01HRUN",
		Action:       domain.AuditActionConflictDelete,
		ResourceType: "account_partial_reconcile",
		ResourceID:   "11",
		Status:       domain.AuditStatusSuccess,
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	if !strings.Contains(buf.String(), "account_partial_reconcile/11") || !strings.Contains(buf.String(), "2024-01-02T03:04:05Z") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	if err := writeWorkbook(path, sampleResult()); err != nil {
		t.Fatalf("writeWorkbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if idx, _ := f.GetSheetIndex("Decisions"); idx < 0 {
		t.Fatalf("expected a Decisions sheet")
	}
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("JWT_EXPIRATION", "1h")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "token", "--user", "ops-1", "--role", "Admin"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("token: %v", err)
	}

	claims, err := auth.NewJWTManager("cli-secret", time.Hour).Verify(strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.UserID != "ops-1" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenCmdRejectsUnknownRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "token", "--user", "ops-1", "--role", "root"})
	if err := cmd.Execute(); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestTokenCmdReadsEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "ledgerfix.env")
	if err := os.WriteFile(envFile, []byte("JWT_SECRET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--env-file", envFile, "token", "--user", "u"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("token: %v", err)
	}
	if _, err := auth.NewJWTManager("from-file", time.Hour).Verify(strings.TrimSpace(out.String())); err != nil {
		t.Fatalf("expected token signed with the env file secret: %v", err)
	}
}

func TestMigrateCmdValidatesArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "sideways"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected invalid argument error")
	}
}

func TestRootCmdRegistersCommands(t *testing.T) {
	want := map[string]bool{"repair": false, "residual": false, "audit": false, "migrate": false, "token": false}
	for _, c := range newRootCmd().Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing command %s", name)
		}
	}
	if f := newRepairCmd(&rootOptions{}).Flags().Lookup("dry-run"); f == nil {
		t.Fatalf("repair is missing --dry-run")
	}
}

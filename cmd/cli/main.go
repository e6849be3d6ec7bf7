package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iho/ledgerfix/internal/adapter/export"
	"github.com/iho/ledgerfix/internal/adapter/http/dto"
	"github.com/iho/ledgerfix/internal/app"
	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/infrastructure/auth"
	"github.com/iho/ledgerfix/internal/infrastructure/config"
	"github.com/iho/ledgerfix/internal/infrastructure/logger"
	"github.com/iho/ledgerfix/internal/infrastructure/postgres"
	"github.com/iho/ledgerfix/internal/usecase"
)

// errRunIncomplete makes the process exit non-zero after the result was printed.
var errRunIncomplete = errors.New("repair did not complete")

type rootOptions struct {
	envFiles []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "ledgerfix",
		Short:         "Ledger duplicate-line repair tool",
		Long:          `Consolidates duplicate ledger lines, normalizes mixed-currency entries and redirects references to merged lines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files to load before the environment")

	rootCmd.AddCommand(
		newRepairCmd(opts),
		newResidualCmd(opts),
		newAuditCmd(opts),
		newMigrateCmd(opts),
		newTokenCmd(opts),
	)

	return rootCmd
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.LoadFrom(o.envFiles...)
}

func (o *rootOptions) app(cmd *cobra.Command, policyFile string) (*app.App, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, cmd.ErrOrStderr())
	return app.New(cmd.Context(), cfg, log, app.Options{PolicyFile: policyFile})
}

func newRepairCmd(root *rootOptions) *cobra.Command {
	var (
		dryRun     bool
		policyFile string
		xlsxPath   string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Run a repair against the live ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.app(cmd, policyFile)
			if err != nil {
				return err
			}
			defer a.Close()

			result, runErr := a.Repair.Run(cmd.Context(), usecase.RunOptions{DryRun: dryRun})

			if xlsxPath != "" {
				if err := writeWorkbook(xlsxPath, result); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(out, dto.RepairFromDomain(result)); err != nil {
					return err
				}
			} else {
				printSummary(out, result)
			}

			if runErr != nil {
				return fmt.Errorf("%w: %w", errRunIncomplete, runErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan the repair and roll back")
	cmd.Flags().StringVar(&policyFile, "policy", "", "conflict policy YAML file (overrides REPAIR_POLICY_FILE)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the result as an Excel workbook")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func newResidualCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "residual",
		Short: "List entries that still carry duplicate counterpart lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.app(cmd, "")
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := a.Repair.Residual(cmd.Context())
			if err != nil {
				return err
			}
			printResidual(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func newAuditCmd(root *rootOptions) *cobra.Command {
	var filter domain.AuditFilter

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List repair audit records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.app(cmd, "")
			if err != nil {
				return err
			}
			defer a.Close()

			logs, err := a.Audit.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			printAudit(cmd.OutOrStdout(), logs)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.RunID, "run", "", "only records of this run id")
	cmd.Flags().StringVar(&filter.Action, "action", "", "only records with this action, e.g. reference.conflict_delete")
	cmd.Flags().IntVar(&filter.Limit, "limit", 50, "maximum records to list")

	return cmd
}

func newMigrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back the ledgerfix schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, cmd.ErrOrStderr())
			m := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log)

			if args[0] == "down" {
				return m.Down()
			}
			return m.Up()
		},
	}
}

func newTokenCmd(root *rootOptions) *cobra.Command {
	var user domain.User
	var role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			user.Role = domain.Role(strings.ToLower(role))
			token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration).Generate(&user)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&user.ID, "user", "", "user id placed in the token subject")
	cmd.Flags().StringVar(&user.Email, "email", "", "user email")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleOperator), "admin, operator or viewer")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func writeWorkbook(path string, result *domain.RepairResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if err := export.WriteXLSX(f, result); err != nil {
		f.Close()
		return fmt.Errorf("write workbook: %w", err)
	}
	return f.Close()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummary(w io.Writer, r *domain.RepairResult) {
	mode := "live"
	if r.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(w, "Run %s (%s): %s\n", r.RunID, mode, r.Outcome)
	if r.Error != "" {
		fmt.Fprintf(w, "Failed in %s: %s\n", r.FailedState, r.Error)
	}
	fmt.Fprintf(w, "Normalized lines: %d\n", len(r.NormalizedLines))
	fmt.Fprintf(w, "Merge groups:     %d (%d lines merged)\n", len(r.Decisions), r.MergedLineCount())
	if r.Redirect != nil {
		fmt.Fprintf(w, "References:       %d rewired, %d conflicting rows deleted\n",
			r.Redirect.ReferencesRewired, len(r.Redirect.ConflictDeletions))
		fmt.Fprintf(w, "Lines deleted:    %d\n", r.Redirect.LinesDeleted)
	}

	if len(r.Discrepancies) > 0 {
		fmt.Fprintln(w, "\nBalance discrepancies:")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ENTRY\tACCOUNT\tLIVE\tSNAPSHOT")
		for _, d := range r.Discrepancies {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", d.EntryID, d.AccountID,
				d.Live.StringFixed(domain.MoneyPlaces), d.Snapshot.StringFixed(domain.MoneyPlaces))
		}
		tw.Flush()
	}

	if len(r.Residual) > 0 {
		fmt.Fprintln(w)
		printResidual(w, r.Residual)
	}
}

func printResidual(w io.Writer, entries []domain.ResidualEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No residual duplicates.")
		return
	}
	fmt.Fprintf(w, "Residual duplicates: %d\n", len(entries))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTRY\tACCOUNT\tLINES")
	for _, e := range entries {
		ids := make([]string, len(e.LineIDs))
		for i, id := range e.LineIDs {
			ids[i] = fmt.Sprint(id)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\n", e.EntryID, e.AccountID, strings.Join(ids, ","))
	}
	tw.Flush()
}

func printAudit(w io.Writer, logs []*domain.AuditLog) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CREATED\tRUN\tACTION\tRESOURCE\tSTATUS")
	for _, l := range logs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s/%s\t%s\n",
			l.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), l.RunID, l.Action, l.ResourceType, l.ResourceID, l.Status)
	}
	tw.Flush()
}

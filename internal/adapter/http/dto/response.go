package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerfix/internal/domain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DecisionResponse is one consolidated group.
type DecisionResponse struct {
	EntryID        int64           `json:"entry_id"`
	AccountID      int64           `json:"account_id"`
	KeeperID       int64           `json:"keeper_id"`
	MergedIDs      []int64         `json:"merged_ids"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	AmountCurrency decimal.Decimal `json:"amount_currency"`
	Balance        decimal.Decimal `json:"balance"`
}

// DiscrepancyResponse is a balance mismatch found by verification.
type DiscrepancyResponse struct {
	EntryID   int64           `json:"entry_id"`
	AccountID int64           `json:"account_id"`
	Live      decimal.Decimal `json:"live"`
	Snapshot  decimal.Decimal `json:"snapshot"`
}

// ConflictDeletionResponse is a referencing row deleted instead of redirected.
type ConflictDeletionResponse struct {
	Table      string         `json:"table"`
	Column     string         `json:"column"`
	Constraint string         `json:"constraint"`
	MergedID   int64          `json:"merged_id"`
	KeeperID   int64          `json:"keeper_id"`
	Row        map[string]any `json:"row"`
}

// RedirectResponse summarizes the foreign-key redirect.
type RedirectResponse struct {
	ForeignKeys       []string                   `json:"foreign_keys"`
	ReferencesRewired int64                      `json:"references_rewired"`
	LinesDeleted      int64                      `json:"lines_deleted"`
	ConflictDeletions []ConflictDeletionResponse `json:"conflict_deletions"`
}

// ResidualResponse is an entry still carrying duplicate counterpart lines.
type ResidualResponse struct {
	EntryID   int64   `json:"entry_id"`
	AccountID int64   `json:"account_id"`
	LineIDs   []int64 `json:"line_ids"`
}

// RepairResponse represents a repair run in API responses.
type RepairResponse struct {
	RunID           string                `json:"run_id"`
	Outcome         string                `json:"outcome"`
	State           string                `json:"state"`
	FailedState     string                `json:"failed_state,omitempty"`
	DryRun          bool                  `json:"dry_run"`
	Error           string                `json:"error,omitempty"`
	NormalizedLines []int64               `json:"normalized_lines"`
	MergedLines     int                   `json:"merged_lines"`
	Decisions       []DecisionResponse    `json:"decisions"`
	Discrepancies   []DiscrepancyResponse `json:"discrepancies"`
	Redirect        *RedirectResponse     `json:"redirect,omitempty"`
	Residual        []ResidualResponse    `json:"residual"`
	StartedAt       time.Time             `json:"started_at"`
	FinishedAt      time.Time             `json:"finished_at"`
}

// RepairFromDomain converts a repair result to a response.
func RepairFromDomain(r *domain.RepairResult) *RepairResponse {
	resp := &RepairResponse{
		RunID:           r.RunID,
		Outcome:         string(r.Outcome),
		State:           string(r.State),
		FailedState:     string(r.FailedState),
		DryRun:          r.DryRun,
		Error:           r.Error,
		NormalizedLines: nonNilIDs(r.NormalizedLines),
		MergedLines:     r.MergedLineCount(),
		Decisions:       make([]DecisionResponse, 0, len(r.Decisions)),
		Discrepancies:   make([]DiscrepancyResponse, 0, len(r.Discrepancies)),
		Residual:        ResidualFromDomain(r.Residual),
		StartedAt:       r.StartedAt,
		FinishedAt:      r.FinishedAt,
	}

	for _, d := range r.Decisions {
		resp.Decisions = append(resp.Decisions, DecisionResponse{
			EntryID:        d.EntryID,
			AccountID:      d.AccountID,
			KeeperID:       d.KeeperID,
			MergedIDs:      d.MergedIDs,
			Debit:          d.NewDebit,
			Credit:         d.NewCredit,
			AmountCurrency: d.NewAmountCurrency,
			Balance:        d.NewBalance,
		})
	}

	for _, d := range r.Discrepancies {
		resp.Discrepancies = append(resp.Discrepancies, DiscrepancyResponse{
			EntryID:   d.EntryID,
			AccountID: d.AccountID,
			Live:      d.Live,
			Snapshot:  d.Snapshot,
		})
	}

	if r.Redirect != nil {
		redirect := &RedirectResponse{
			ForeignKeys:       make([]string, 0, len(r.Redirect.ForeignKeys)),
			ReferencesRewired: r.Redirect.ReferencesRewired,
			LinesDeleted:      r.Redirect.LinesDeleted,
			ConflictDeletions: make([]ConflictDeletionResponse, 0, len(r.Redirect.ConflictDeletions)),
		}
		for _, fk := range r.Redirect.ForeignKeys {
			redirect.ForeignKeys = append(redirect.ForeignKeys, fk.String())
		}
		for _, c := range r.Redirect.ConflictDeletions {
			redirect.ConflictDeletions = append(redirect.ConflictDeletions, ConflictDeletionResponse{
				Table:      c.ForeignKey.Table,
				Column:     c.ForeignKey.Column,
				Constraint: c.Constraint,
				MergedID:   c.MergedID,
				KeeperID:   c.KeeperID,
				Row:        c.Row,
			})
		}
		resp.Redirect = redirect
	}

	return resp
}

// ResidualFromDomain converts residual entries to responses.
func ResidualFromDomain(entries []domain.ResidualEntry) []ResidualResponse {
	out := make([]ResidualResponse, len(entries))
	for i, e := range entries {
		out[i] = ResidualResponse{
			EntryID:   e.EntryID,
			AccountID: e.AccountID,
			LineIDs:   e.LineIDs,
		}
	}
	return out
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/iho/ledgerfix/internal/adapter/export"
	"github.com/iho/ledgerfix/internal/adapter/http/dto"
	"github.com/iho/ledgerfix/internal/domain"
	"github.com/iho/ledgerfix/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RepairService defines the repair operations the handler needs.
type RepairService interface {
	Run(ctx context.Context, opts usecase.RunOptions) (*domain.RepairResult, error)
	Residual(ctx context.Context) ([]domain.ResidualEntry, error)
	LastResult(ctx context.Context) (*domain.RepairResult, error)
}

// RepairHandler handles the repair admin endpoints.
type RepairHandler struct {
	service RepairService
	policy  domain.ConflictPolicy
}

// NewRepairHandler creates a new RepairHandler. policy is the configured conflict
// policy that request overrides are layered over.
func NewRepairHandler(service RepairService, policy domain.ConflictPolicy) *RepairHandler {
	return &RepairHandler{service: service, policy: policy}
}

// Plan handles POST /api/v1/repair/plan. Nothing is written to the ledger.
func (h *RepairHandler) Plan(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, true)
}

// Repair handles POST /api/v1/repair.
func (h *RepairHandler) Repair(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, false)
}

func (h *RepairHandler) run(w http.ResponseWriter, r *http.Request, dryRun bool) {
	var req dto.RepairRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	policy, err := req.Policy(h.policy)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid conflict policy", err.Error())
		return
	}

	result, err := h.service.Run(r.Context(), usecase.RunOptions{DryRun: dryRun, Policy: policy})
	if result == nil {
		writeError(w, mapDomainError(err), "repair failed", errString(err))
		return
	}

	status := http.StatusOK
	if err != nil {
		status = mapDomainError(err)
	}
	writeJSON(w, status, dto.RepairFromDomain(result))
}

// Last handles GET /api/v1/repair/last. With ?format=xlsx the result is returned
// as a workbook.
func (h *RepairHandler) Last(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.LastResult(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "no repair result", err.Error())
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ledgerfix-%s.xlsx"`, result.RunID))
		if err := export.WriteXLSX(w, result); err != nil {
			writeError(w, http.StatusInternalServerError, "export failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.RepairFromDomain(result))
}

// Residual handles GET /api/v1/repair/residual.
func (h *RepairHandler) Residual(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Residual(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "residual scan failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(entries),
		"entries": dto.ResidualFromDomain(entries),
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

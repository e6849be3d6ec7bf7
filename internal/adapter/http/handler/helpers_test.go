package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/ledgerfix/internal/adapter/http/dto"
	"github.com/iho/ledgerfix/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"no result", domain.ErrResultNotFound, http.StatusNotFound},
		{"balance mismatch", fmt.Errorf("VERIFY_1: %w", domain.ErrBalanceMismatch), http.StatusConflict},
		{"lock held", domain.ErrLockHeld, http.StatusConflict},
		{"constraint conflict", domain.ErrConstraintConflict, http.StatusConflict},
		{"bad strategy", domain.ErrInvalidConflictStrategy, http.StatusBadRequest},
		{"bad identifier", domain.ErrInvalidIdentifier, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusConflict, "repair already running", "lock held")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var body dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Error != "repair already running" || body.Message != "lock held" {
		t.Fatalf("unexpected body %+v", body)
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/ledgerfix/internal/adapter/http/dto"
	"github.com/iho/ledgerfix/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBalanceMismatch):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLockHeld):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConstraintConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidConflictStrategy):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

package domain

import "errors"

var (
	// Repair errors
	ErrBalanceMismatch     = errors.New("snapshot totals do not match live totals")
	ErrConstraintConflict  = errors.New("reference redirect would violate a unique constraint")
	ErrUnresolvedReference = errors.New("merged ledger line has no keeper")
	ErrLockHeld            = errors.New("another repair run holds the lock")
	ErrRunAborted          = errors.New("repair run aborted")

	// Lookup errors
	ErrEntryNotFound   = errors.New("entry not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrCompanyNotFound = errors.New("company not found")
	ErrResultNotFound  = errors.New("no repair result recorded")
)

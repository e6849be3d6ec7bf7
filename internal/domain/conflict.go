package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConflictStrategy is returned for an unknown strategy name.
var ErrInvalidConflictStrategy = errors.New("invalid conflict strategy")

// ConflictStrategy decides what happens to a referencing row whose redirect would
// duplicate a unique tuple already held by the keeper.
type ConflictStrategy string

const (
	// ConflictDelete removes the losing referencing row; the keeper's reference wins.
	ConflictDelete ConflictStrategy = "delete"
	// ConflictFail aborts the run.
	ConflictFail ConflictStrategy = "fail"
)

// ParseConflictStrategy parses a strategy name, defaulting empty input to ConflictDelete.
func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch ConflictStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConflictDelete:
		return ConflictDelete, nil
	case ConflictFail:
		return ConflictFail, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidConflictStrategy, s)
	}
}

// ConflictPolicy resolves the strategy for a referencing table.
type ConflictPolicy struct {
	Default ConflictStrategy
	Tables  map[string]ConflictStrategy
}

// For returns the strategy configured for table, falling back to the default.
func (p ConflictPolicy) For(table string) ConflictStrategy {
	if s, ok := p.Tables[table]; ok {
		return s
	}
	if p.Default == "" {
		return ConflictDelete
	}
	return p.Default
}

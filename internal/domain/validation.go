package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidIdentifier  = errors.New("invalid SQL identifier")
	ErrInvalidJournalType = errors.New("invalid journal type")
)

// MaxIdentifierLength is the Postgres NAMEDATALEN limit minus the terminator.
const MaxIdentifierLength = 63

var identifierRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

var validJournalTypes = map[string]bool{
	"sale": true, "purchase": true, "cash": true, "bank": true, "general": true,
}

// ValidateIdentifier checks that name is a plain lower-case Postgres identifier.
// Table names arrive from policy files and are interpolated into SQL after quoting.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIdentifier)
	}
	if len(name) > MaxIdentifierLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidIdentifier, name, MaxIdentifierLength)
	}
	if !identifierRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// ParseJournalTypes parses a comma-separated journal type list such as "bank,cash".
func ParseJournalTypes(s string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(s, ",") {
		t := strings.ToLower(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		if !validJournalTypes[t] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidJournalType, t)
		}
		out = append(out, t)
	}
	return out, nil
}

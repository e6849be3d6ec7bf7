package dto

import (
	"github.com/iho/ledgerfix/internal/domain"
)

// RepairRequest is the optional body of the repair and plan endpoints.
type RepairRequest struct {
	// ConflictStrategy overrides the configured default ("delete" or "fail").
	ConflictStrategy string `json:"conflict_strategy,omitempty"`
	// Tables overrides the strategy for individual referencing tables.
	Tables map[string]string `json:"tables,omitempty"`
}

// Policy converts the request into a conflict policy layered over base.
// It returns nil when the request overrides nothing.
func (r *RepairRequest) Policy(base domain.ConflictPolicy) (*domain.ConflictPolicy, error) {
	if r == nil || (r.ConflictStrategy == "" && len(r.Tables) == 0) {
		return nil, nil
	}

	p := domain.ConflictPolicy{
		Default: base.Default,
		Tables:  make(map[string]domain.ConflictStrategy, len(base.Tables)+len(r.Tables)),
	}
	for table, s := range base.Tables {
		p.Tables[table] = s
	}

	if r.ConflictStrategy != "" {
		s, err := domain.ParseConflictStrategy(r.ConflictStrategy)
		if err != nil {
			return nil, err
		}
		p.Default = s
	}

	for table, name := range r.Tables {
		if err := domain.ValidateIdentifier(table); err != nil {
			return nil, err
		}
		s, err := domain.ParseConflictStrategy(name)
		if err != nil {
			return nil, err
		}
		p.Tables[table] = s
	}

	return &p, nil
}

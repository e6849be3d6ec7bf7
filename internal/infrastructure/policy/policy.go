package policy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iho/ledgerfix/internal/domain"
)

// File is the on-disk shape of a conflict policy:
//
//	default: delete
//	tables:
//	  account_partial_reconcile: fail
type File struct {
	Default string            `yaml:"default"`
	Tables  map[string]string `yaml:"tables"`
}

// Load reads a policy file. An empty path yields a policy using fallback for every table.
func Load(path string, fallback domain.ConflictStrategy) (domain.ConflictPolicy, error) {
	if path == "" {
		return domain.ConflictPolicy{Default: fallback}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ConflictPolicy{}, fmt.Errorf("read conflict policy: %w", err)
	}

	p, err := Parse(data, fallback)
	if err != nil {
		return domain.ConflictPolicy{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a policy document. Unknown keys are rejected.
func Parse(data []byte, fallback domain.ConflictStrategy) (domain.ConflictPolicy, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return domain.ConflictPolicy{}, fmt.Errorf("decode conflict policy: %w", err)
	}

	p := domain.ConflictPolicy{Default: fallback}
	if f.Default != "" {
		s, err := domain.ParseConflictStrategy(f.Default)
		if err != nil {
			return domain.ConflictPolicy{}, err
		}
		p.Default = s
	}

	if len(f.Tables) > 0 {
		p.Tables = make(map[string]domain.ConflictStrategy, len(f.Tables))
	}
	for table, name := range f.Tables {
		if err := domain.ValidateIdentifier(table); err != nil {
			return domain.ConflictPolicy{}, err
		}
		s, err := domain.ParseConflictStrategy(name)
		if err != nil {
			return domain.ConflictPolicy{}, fmt.Errorf("table %s: %w", table, err)
		}
		p.Tables[table] = s
	}

	return p, nil
}

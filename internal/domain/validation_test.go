package domain

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain", input: "account_move_line"},
		{name: "leading underscore", input: "_link2"},
		{name: "empty", input: "", wantErr: true},
		{name: "upper case", input: "Link", wantErr: true},
		{name: "quote", input: `link"; drop table x; --`, wantErr: true},
		{name: "dot", input: "public.link", wantErr: true},
		{name: "too long", input: strings.Repeat("a", MaxIdentifierLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if tt.wantErr && !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("expected ErrInvalidIdentifier, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseJournalTypes(t *testing.T) {
	got, err := ParseJournalTypes(" Bank, cash ,,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"bank", "cash"}) {
		t.Fatalf("ParseJournalTypes() = %v", got)
	}

	if got, err := ParseJournalTypes(""); err != nil || got != nil {
		t.Fatalf("empty input = %v, %v", got, err)
	}

	if _, err := ParseJournalTypes("bank,loans"); !errors.Is(err, ErrInvalidJournalType) {
		t.Fatalf("expected ErrInvalidJournalType, got %v", err)
	}
}

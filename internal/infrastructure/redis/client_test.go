package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	s := miniredis.RunT(t)

	ctx := context.Background()
	client, err := NewClient(ctx, "redis://"+s.Addr()+"/2")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	if err := client.Set(ctx, "ledgerfix:ping", "1", 0).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := s.DB(2).Get("ledgerfix:ping"); got != "1" {
		t.Fatalf("expected key in db 2, got %q", got)
	}
}

func TestNewClientUnreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewClient(ctx, "redis://"+addr); err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		timeout time.Duration
		wantErr bool
	}{
		{name: "default dial timeout", url: "redis://localhost:6379", timeout: defaultDialTimeout},
		{name: "explicit dial timeout", url: "redis://localhost:6379?dial_timeout=250ms", timeout: 250 * time.Millisecond},
		{name: "bad scheme", url: "://bad-url", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := options(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("options: %v", err)
			}
			if opts.DialTimeout != tt.timeout {
				t.Fatalf("dial timeout = %s, want %s", opts.DialTimeout, tt.timeout)
			}
		})
	}
}

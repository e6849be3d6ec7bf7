package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerfix/internal/domain"
)

func TestResultCacheSaveAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewResultCache(client)
	ctx := context.Background()

	result := &domain.RepairResult{
		RunID:   "run-1",
		Outcome: domain.OutcomeCompleted,
		State:   domain.StateDone,
		Decisions: []domain.MergeDecision{{
			EntryID:   1,
			AccountID: 2,
			KeeperID:  10,
			MergedIDs: []int64{11, 12},
			NewDebit:  decimal.RequireFromString("5.00"),
			NewCredit: decimal.Zero,
		}},
	}

	if err := cache.SaveLast(ctx, result, time.Hour); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := cache.GetLast(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.RunID != "run-1" || got.MergedLineCount() != 2 {
		t.Fatalf("unexpected result %+v", got)
	}
	if !got.Decisions[0].NewDebit.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected debit 5, got %s", got.Decisions[0].NewDebit)
	}
	if ttl := mr.TTL("ledgerfix:result:last"); ttl != time.Hour {
		t.Fatalf("expected 1h ttl, got %s", ttl)
	}
}

func TestResultCacheGetMissing(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	_, err := NewResultCache(client).GetLast(context.Background())
	if !errors.Is(err, domain.ErrResultNotFound) {
		t.Fatalf("expected ErrResultNotFound, got %v", err)
	}
}

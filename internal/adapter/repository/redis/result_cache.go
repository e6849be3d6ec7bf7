package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/ledgerfix/internal/domain"
)

// ResultCache implements usecase.ResultStore using Redis.
type ResultCache struct {
	client *redis.Client
	prefix string
}

// NewResultCache creates a new ResultCache.
func NewResultCache(client *redis.Client) *ResultCache {
	return &ResultCache{
		client: client,
		prefix: "ledgerfix:result:",
	}
}

// SaveLast stores result as the most recent run.
func (c *ResultCache) SaveLast(ctx context.Context, result *domain.RepairResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode repair result: %w", err)
	}
	return c.client.Set(ctx, c.prefix+"last", data, ttl).Err()
}

// GetLast returns the most recent run, or domain.ErrResultNotFound.
func (c *ResultCache) GetLast(ctx context.Context) (*domain.RepairResult, error) {
	data, err := c.client.Get(ctx, c.prefix+"last").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}

	var result domain.RepairResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode repair result: %w", err)
	}
	return &result, nil
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iho/ledgerfix/internal/domain"
)

const runLockKey = "ledgerfix:lock:repair"

// releaseScript deletes the lock only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunLock implements usecase.RunLock with a single Redis key.
type RunLock struct {
	client *redis.Client
	key    string
}

// NewRunLock creates a new RunLock.
func NewRunLock(client *redis.Client) *RunLock {
	return &RunLock{
		client: client,
		key:    runLockKey,
	}
}

// Acquire takes the lock for ttl and returns the token needed to release it.
func (l *RunLock) Acquire(ctx context.Context, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	set, err := l.client.SetNX(ctx, l.key, token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("acquire run lock: %w", err)
	}
	if !set {
		return "", domain.ErrLockHeld
	}

	return token, nil
}

// Release drops the lock if token still owns it. Releasing an expired or
// foreign lock is a no-op.
func (l *RunLock) Release(ctx context.Context, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	return nil
}

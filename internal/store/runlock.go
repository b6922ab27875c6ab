package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const runLockKey = "jobradar:run-lock"

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// RunLock serializes whole-batch runs. Nothing transactional wraps a
// batch, so two concurrent runs would race on upserts.
type RunLock struct {
	rdb   *redis.Client
	key   string
	token string
	ttl   time.Duration
}

func NewRunLock(rdb *redis.Client, ttl time.Duration) *RunLock {
	return &RunLock{
		rdb:   rdb,
		key:   runLockKey,
		token: fmt.Sprintf("run-%d", time.Now().UnixNano()),
		ttl:   ttl,
	}
}

// Acquire takes the lock, returning false when another run holds it.
func (l *RunLock) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire run lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock if this run still owns it. The TTL covers the
// case where the process dies before releasing.
func (l *RunLock) Release(ctx context.Context) error {
	current, err := l.rdb.Get(ctx, l.key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	if current != l.token {
		return nil
	}
	return l.rdb.Del(ctx, l.key).Err()
}

package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// failScript increments the counter and starts the window on the first
// failure, in one round trip, so a counter can never be left without a TTL.
var failScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// NewRedisClient connects to redis with short timeouts.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

// RedisLimiter shares counters between every instance pointed at the same redis.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, max: maxAttempts, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := keyPrefix + key

	pipe := l.client.Pipeline()
	countCmd := pipe.Get(ctx, k)
	ttlCmd := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return false, 0, fmt.Errorf("failed to read attempts for %s: %w", key, err)
	}

	count, err := countCmd.Int()
	if errors.Is(err, redis.Nil) {
		return true, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to parse attempts for %s: %w", key, err)
	}
	if count < l.max {
		return true, 0, nil
	}

	retryAfter := ttlCmd.Val()
	if retryAfter <= 0 {
		retryAfter = l.window
	}
	return false, retryAfter, nil
}

func (l *RedisLimiter) Fail(ctx context.Context, key string) error {
	if err := failScript.Run(ctx, l.client, []string{keyPrefix + key}, l.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("failed to record attempt for %s: %w", key, err)
	}
	return nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset attempts for %s: %w", key, err)
	}
	return nil
}

// Healthy verifies redis connectivity.
func (l *RedisLimiter) Healthy(ctx context.Context) bool {
	if l == nil || l.client == nil {
		return false
	}
	return l.client.Ping(ctx).Err() == nil
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Result describes the outcome of a single Allow call.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter admits or rejects a hit for key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// RedisLimiter is a fixed-window counter (INCR + EXPIRE) shared by every API instance.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
}

// NewRedisLimiter constructs a RedisLimiter.
func NewRedisLimiter(client *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisLimiter{client: client, prefix: prefix, max: int64(max), window: window}
}

// Allow counts a hit in the current window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	winStart := time.Now().UTC().Truncate(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, strings.ReplaceAll(key, " ", "_"), winStart.Unix())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	remainingTTL := ttl.Val()
	if incr.Val() == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return Result{}, fmt.Errorf("rate limit expire %s: %w", key, err)
		}
		remainingTTL = l.window
	}

	return buildResult(incr.Val(), l.max, remainingTTL, l.window), nil
}

// MemoryLimiter is the single-process fallback used when Redis is disabled.
type MemoryLimiter struct {
	c      *gocache.Cache
	max    int64
	window time.Duration
}

// NewMemoryLimiter constructs a MemoryLimiter.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{c: gocache.New(window, window), max: int64(max), window: window}
}

// Allow counts a hit in the current window.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	_ = l.c.Add(key, int64(0), l.window)
	hits, err := l.c.IncrementInt64(key, 1)
	if err != nil {
		return Result{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	ttl := l.window
	if _, expiresAt, ok := l.c.GetWithExpiration(key); ok && !expiresAt.IsZero() {
		ttl = time.Until(expiresAt)
	}
	return buildResult(hits, l.max, ttl, l.window), nil
}

func buildResult(hits, max int64, ttl, window time.Duration) Result {
	res := Result{Allowed: hits <= max, Remaining: max - hits}
	if res.Remaining < 0 {
		res.Remaining = 0
	}
	if !res.Allowed {
		res.RetryAfter = ttl
		if res.RetryAfter <= 0 {
			res.RetryAfter = window
		}
	}
	return res
}

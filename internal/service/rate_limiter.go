package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const rateLimitKeyPrefix = "rate_limit"

// fixedWindowScript increments the counter for the current window and stamps
// the TTL on first hit. Returns {count, ttl_seconds}. Doing both in one script
// keeps INCR and EXPIRE atomic; the client switches to EVALSHA after the
// first call.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('EXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('TTL', KEYS[1])
	return {count, ttl}
`)

// RateLimiter enforces a fixed-window request limit per key, backed by Redis
// so the limit holds across instances.
type RateLimiter interface {
	// Allow reports whether the request identified by key fits in the current
	// window. When it does not, retryAfter says how long until the window
	// resets.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

type rateLimiter struct {
	client *redis.Client
	log    *logrus.Logger
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, log *logrus.Logger, limit int, window time.Duration) RateLimiter {
	return &rateLimiter{
		client: client,
		log:    log,
		limit:  limit,
		window: window,
	}
}

func (l *rateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := fmt.Sprintf("%s:%s", rateLimitKeyPrefix, key)
	windowSeconds := int(l.window.Seconds())

	result, err := fixedWindowScript.Run(ctx, l.client, []string{redisKey}, windowSeconds).Int64Slice()
	if err != nil {
		l.log.Warnf("Failed to run rate limit script: %+v", err)
		return false, 0, err
	}

	count, ttl := result[0], result[1]
	if count > int64(l.limit) {
		if ttl < 0 {
			ttl = int64(windowSeconds)
		}
		return false, time.Duration(ttl) * time.Second, nil
	}

	return true, 0, nil
}

// Package ratestore holds rate limiter stores shared across instances.
package ratestore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single Allow round trip.
const DefaultTimeout = 200 * time.Millisecond

// Options configures a RedisStore.
type Options struct {
	// Prefix is prepended to every counter key.
	Prefix string

	// Limit is the number of requests allowed per identifier per window.
	Limit int64

	// Window is the length of one counting window. Sub-second windows are
	// rounded up to one second.
	Window time.Duration

	// Timeout bounds each Redis call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// RedisStore is a fixed-window rate limiter store backed by Redis.
//
// It satisfies echo's middleware.RateLimiterStore. Redis failures are
// logged and the request is allowed.
type RedisStore struct {
	client redis.Cmdable
	opts   Options
	logger *zerolog.Logger
	now    func() time.Time
}

// NewRedisStore builds a store on top of an existing client.
func NewRedisStore(client redis.Cmdable, opts Options, logger *zerolog.Logger) *RedisStore {
	if opts.Window < time.Second {
		opts.Window = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &RedisStore{
		client: client,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Key returns the counter key for identifier in the window containing t.
func (s *RedisStore) Key(identifier string, t time.Time) string {
	bucket := t.Unix() / int64(s.opts.Window/time.Second)
	return fmt.Sprintf("%s%s:%d", s.opts.Prefix, identifier, bucket)
}

// Allow counts one request for identifier and reports whether it fits the
// current window.
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.Timeout)
	defer cancel()

	key := s.Key(identifier, s.now())

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.opts.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return count.Val() <= s.opts.Limit, nil
}

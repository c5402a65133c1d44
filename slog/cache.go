package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/c2cgpx"
)

// Ensure LoggingResponseCache implements c2cgpx.ResponseCache.
var _ c2cgpx.ResponseCache = (*LoggingResponseCache)(nil)

// LoggingResponseCache wraps a ResponseCache with logging.
// Misses are logged as hit=false rather than as errors.
type LoggingResponseCache struct {
	next   c2cgpx.ResponseCache
	logger *slog.Logger
}

// NewLoggingResponseCache creates a new LoggingResponseCache.
func NewLoggingResponseCache(next c2cgpx.ResponseCache, logger *slog.Logger) *LoggingResponseCache {
	return &LoggingResponseCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs the lookup.
func (c *LoggingResponseCache) Get(ctx context.Context, key string) (body []byte, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"key", key,
			"hit", err == nil,
			"bytes", len(body),
			"duration", time.Since(begin),
		}
		if err != nil && c2cgpx.ErrorCode(err) != c2cgpx.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		c.logger.Info("cache get", attrs...)
	}(time.Now())
	return c.next.Get(ctx, key)
}

// Set delegates to the wrapped cache and logs the write.
func (c *LoggingResponseCache) Set(ctx context.Context, key string, body []byte) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache set",
			"key", key,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Set(ctx, key, body)
}

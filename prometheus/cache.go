package prometheus

import (
	"context"

	"github.com/fwojciec/c2cgpx"
)

// Ensure ResponseCache implements c2cgpx.ResponseCache.
var _ c2cgpx.ResponseCache = (*ResponseCache)(nil)

// ResponseCache wraps a ResponseCache with lookup metrics.
type ResponseCache struct {
	next    c2cgpx.ResponseCache
	metrics *Metrics
}

// NewResponseCache creates a new instrumented ResponseCache.
func NewResponseCache(next c2cgpx.ResponseCache, m *Metrics) *ResponseCache {
	return &ResponseCache{next: next, metrics: m}
}

// Get delegates to the wrapped cache and counts the result.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := c.next.Get(ctx, key)
	switch {
	case err == nil:
		c.metrics.cacheLookups.WithLabelValues(CacheHit).Inc()
	case c2cgpx.ErrorCode(err) == c2cgpx.ENOTFOUND:
		c.metrics.cacheLookups.WithLabelValues(CacheMiss).Inc()
	default:
		c.metrics.cacheLookups.WithLabelValues(CacheError).Inc()
	}
	return body, err
}

// Set delegates to the wrapped cache.
func (c *ResponseCache) Set(ctx context.Context, key string, body []byte) error {
	return c.next.Set(ctx, key, body)
}

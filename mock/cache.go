package mock

import (
	"context"

	"github.com/fwojciec/c2cgpx"
)

var _ c2cgpx.ResponseCache = (*ResponseCache)(nil)

// ResponseCache is a mock implementation of c2cgpx.ResponseCache.
type ResponseCache struct {
	GetFn func(ctx context.Context, key string) ([]byte, error)
	SetFn func(ctx context.Context, key string, body []byte) error
}

func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.GetFn(ctx, key)
}

func (c *ResponseCache) Set(ctx context.Context, key string, body []byte) error {
	return c.SetFn(ctx, key, body)
}

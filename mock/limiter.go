package mock

import (
	"context"

	"github.com/fwojciec/c2cgpx"
)

var _ c2cgpx.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of c2cgpx.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

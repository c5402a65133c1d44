package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/c2cgpx"
)

// FetchFunc is the signature for a document fetch function.
type FetchFunc func(ctx context.Context, typ c2cgpx.DocumentType, id int64) (*c2cgpx.Document, error)

// RetryFunc is called before each retry with the attempt about to start
// and the error of the previous one.
type RetryFunc func(attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retryable reports whether a failed fetch may succeed if repeated.
// Status errors and invalid records are final.
func Retryable(err error) bool {
	return c2cgpx.ErrorCode(err) == c2cgpx.EINTERNAL
}

// FetchWithRetryDelays fetches a document, retrying retryable failures once
// per entry in delays after waiting that long.
func FetchWithRetryDelays(ctx context.Context, typ c2cgpx.DocumentType, id int64, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (*c2cgpx.Document, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		doc, err := fetch(ctx, typ, id)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || !Retryable(err) {
			break
		}

		// Check context before sleeping
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

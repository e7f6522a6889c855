package pipeline

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/pressdigest/internal/summarize"
)

const MaxRetries = 3

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	return summarize.IsRetryable(err)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter, capped
// at 30s plus jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(min(attempt, 5))) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// withRetry calls fn up to attempts times while it fails with a retryable
// error, sleeping backoff(attempt) between calls. onRetry sees each error
// that leads to another attempt.
func withRetry[T any](ctx context.Context, attempts int, backoff func(int) time.Duration, onRetry func(attempt int, err error), fn func() (T, error)) (T, error) {
	attempts = max(attempts, 1)
	var out T
	var err error
	for attempt := range attempts {
		out, err = fn()
		if err == nil || !IsRetryable(err) || attempt == attempts-1 {
			break
		}
		if onRetry != nil {
			onRetry(attempt, err)
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
	return out, err
}

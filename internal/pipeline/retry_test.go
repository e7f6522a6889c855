package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/pressdigest/internal/summarize"
)

func noWait(int) time.Duration { return 0 }

func TestWithRetry_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	_, err := withRetry(context.Background(), 3, noWait, nil, func() (int, error) {
		calls++
		return 0, errors.New("boom")
	})
	if err == nil || calls != 1 {
		t.Errorf("expected one failing call, got %d calls and err %v", calls, err)
	}
}

func TestWithRetry_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	var retried []int
	got, err := withRetry(context.Background(), 3, noWait,
		func(attempt int, _ error) { retried = append(retried, attempt) },
		func() (string, error) {
			calls++
			if calls < 3 {
				return "", &summarize.SummarizationError{StatusCode: 503, Retryable: true}
			}
			return "ok", nil
		})
	if err != nil || got != "ok" {
		t.Fatalf("expected success, got %q, %v", got, err)
	}
	if len(retried) != 2 {
		t.Errorf("expected 2 retries, got %v", retried)
	}
}

func TestWithRetry_CanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := withRetry(ctx, 3, func(int) time.Duration { return time.Hour }, nil, func() (int, error) {
		return 0, &summarize.SummarizationError{StatusCode: 429, Retryable: true}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

package query

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sooquk/dashboard/internal/domain/shared"
)

// RetryPolicy controls how failed reads are retried. Only network and
// server errors are retried; client errors fail immediately.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy retries a read up to three times
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, BaseDelay: 500 * time.Millisecond, MaxDelay: 10 * time.Second}
}

// NoRetry disables retries
var NoRetry = RetryPolicy{}

// Backoff returns the delay before retry n (0-based): base * 2^n capped at
// MaxDelay, with up to 25% jitter.
func (p RetryPolicy) Backoff(n int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	delay := p.MaxDelay
	if n < 30 {
		delay = p.BaseDelay * time.Duration(1<<uint(n))
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	if jitter := int64(delay) / 4; jitter > 0 {
		delay += time.Duration(rand.Int64N(jitter))
	}
	return delay
}

// Retryable reports whether err may succeed on a later attempt
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *shared.APIError
	return errors.As(err, &apiErr) && apiErr.Retryable()
}

func (p RetryPolicy) do(ctx context.Context, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		data, err := fn(ctx)
		if err == nil || attempt >= p.Attempts || !Retryable(err) {
			return data, err
		}
		timer := time.NewTimer(p.Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, err
		case <-timer.C:
		}
	}
}

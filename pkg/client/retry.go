package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

// ErrRequestTimeout marks a request that ran out of time, either per attempt
// or against the overall deadline.
var ErrRequestTimeout = errors.New("request timed out")

// httpStatusError is returned when the server answered with a non-2xx status.
// 4xx statuses are never retried, the request will not get better.
type httpStatusError struct {
	status int
	url    string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.status, e.url)
}

func (e *httpStatusError) retryable() bool {
	return e.status >= http.StatusInternalServerError
}

// doWithRetry runs fn up to maxAttempts times with exponential backoff.
// Client errors and context cancellation stop retrying immediately.
// Per-attempt timeouts retry like any other transient failure and come
// back as ErrRequestTimeout once the attempts run out.
func doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := retryBackoff * (1 << (attempt - 1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return ErrRequestTimeout
				}
				return ctx.Err()
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		var statusErr *httpStatusError
		if errors.As(lastErr, &statusErr) && !statusErr.retryable() {
			return lastErr
		}
		if errors.Is(lastErr, context.Canceled) {
			return lastErr
		}
		if errors.Is(lastErr, context.DeadlineExceeded) && ctx.Err() != nil {
			// The caller's deadline is gone, another attempt cannot succeed.
			return ErrRequestTimeout
		}
	}
	if errors.Is(lastErr, context.DeadlineExceeded) {
		return ErrRequestTimeout
	}
	return lastErr
}

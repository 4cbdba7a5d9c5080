package chipp

import (
	"context"
	"errors"
	"net"
	"time"
)

// retryable classifies an error as transient. Transport failures and HTTP
// 5xx/429 are worth re-attempting; everything else (other 4xx, parsing
// failures, config errors) is fatal.
func retryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return true
	}

	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode >= 500 || ae.StatusCode == 429
	}

	return false
}

// backoffDelay computes the sleep before retry attempt, 0-indexed:
// min(initial * 2^attempt, max). No jitter.
func backoffDelay(attempt int, initial, max time.Duration) time.Duration {
	d := initial
	for i := 0; i < attempt; i++ {
		if d >= max/2 {
			return max
		}
		d *= 2
	}
	if d > max {
		return max
	}
	return d
}

// sleep waits for d or until the context is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// isTimeout reports whether err is a network timeout.
func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

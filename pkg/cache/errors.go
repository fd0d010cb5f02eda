package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks backend failures caused by the connection rather than
// by the request: timeouts, refused connections, dropped sockets.
var ErrNetwork = errors.New("network error")

// ErrUnknownBackend is returned by [Open] for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as a [RetryableError]. It returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err wraps a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryDelay is the wait before the first retry. It doubles each time.
var retryDelay = 200 * time.Millisecond

// RetryWithBackoff calls fn up to 3 times. Only errors wrapped with
// [Retryable] are retried.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := retryDelay
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

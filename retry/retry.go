// Package retry polls an operation with exponential backoff until it succeeds,
// fails permanently or the context ends. The Ethereum signer uses it to wait for
// transaction receipts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAttemptsExhausted is returned when every attempt failed with a retryable error.
var ErrAttemptsExhausted = errors.New("retry: attempts exhausted")

// Config controls the backoff schedule.
type Config struct {
	MaxAttempts  int           // zero means unlimited; the context bounds the loop
	InitialDelay time.Duration // delay before the second attempt
	MaxDelay     time.Duration // upper bound of the delay
	Multiplier   float64       // growth factor applied after each attempt
}

// ReceiptPolling is the schedule used while waiting for a transaction to be mined.
var ReceiptPolling = Config{
	MaxAttempts:  0,
	InitialDelay: 500 * time.Millisecond,
	MaxDelay:     4 * time.Second,
	Multiplier:   1.5,
}

// Retryable reports whether err is transient.
type Retryable func(error) bool

// Do calls fn until it returns a nil or non-retryable error.
func Do[T any](ctx context.Context, cfg Config, retryable Retryable, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	delay := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if !retryable(err) {
			return zero, err
		}
		if cfg.MaxAttempts > 0 && attempt >= cfg.MaxAttempts {
			return zero, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempt, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}

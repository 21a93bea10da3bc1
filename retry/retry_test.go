package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errPending = errors.New("pending")
	errFatal   = errors.New("fatal")
)

func isPending(err error) bool { return errors.Is(err, errPending) }

var fast = Config{
	MaxAttempts:  5,
	InitialDelay: time.Millisecond,
	MaxDelay:     5 * time.Millisecond,
	Multiplier:   2,
}

func TestDo(t *testing.T) {
	t.Run("succeeds on first attempt", func(t *testing.T) {
		calls := 0
		got, err := Do(context.Background(), fast, isPending, func(context.Context) (string, error) {
			calls++
			return "mined", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "mined", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries retryable errors", func(t *testing.T) {
		calls := 0
		got, err := Do(context.Background(), fast, isPending, func(context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errPending
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), fast, isPending, func(context.Context) (int, error) {
			calls++
			return 0, errFatal
		})
		assert.ErrorIs(t, err, errFatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		_, err := Do(context.Background(), fast, isPending, func(context.Context) (int, error) {
			calls++
			return 0, errPending
		})
		assert.ErrorIs(t, err, ErrAttemptsExhausted)
		assert.ErrorIs(t, err, errPending)
		assert.Equal(t, fast.MaxAttempts, calls)
	})

	t.Run("unlimited attempts bounded by context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		cfg := fast
		cfg.MaxAttempts = 0
		_, err := Do(ctx, cfg, isPending, func(context.Context) (int, error) {
			return 0, errPending
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("cancelled before first attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		_, err := Do(ctx, fast, isPending, func(context.Context) (int, error) {
			calls++
			return 0, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})
}

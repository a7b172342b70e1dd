package retry_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"encargos/internal/pkg/errs"
	"encargos/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestRetrier_Do(t *testing.T) {
	t.Run("succeeds on first attempt", func(t *testing.T) {
		calls := 0
		r := retry.New(fastPolicy(), nil)

		err := r.Do(t.Context(), func(context.Context) error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors and recovers", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		calls := 0
		r := retry.New(fastPolicy(), zap.New(core))

		err := r.Do(t.Context(), func(context.Context) error {
			calls++
			if calls < 3 {
				return driver.ErrBadConn
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 2, logs.FilterMessage("retrying operation after transient error").Len())
		assert.Equal(t, 1, logs.FilterMessage("operation recovered after retries").Len())
	})

	t.Run("stops after max attempts", func(t *testing.T) {
		calls := 0
		r := retry.New(fastPolicy(), nil)

		err := r.Do(t.Context(), func(context.Context) error {
			calls++
			return driver.ErrBadConn
		})

		require.ErrorIs(t, err, driver.ErrBadConn)
		assert.Equal(t, 3, calls)
	})

	t.Run("never retries domain errors", func(t *testing.T) {
		calls := 0
		r := retry.New(fastPolicy(), nil)
		conflict := errs.NewConflictError("person", "600111222")

		err := r.Do(t.Context(), func(context.Context) error {
			calls++
			return conflict
		})

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, 1, calls)
	})

	t.Run("plain errors are permanent", func(t *testing.T) {
		calls := 0
		r := retry.New(fastPolicy(), nil)

		err := r.Do(t.Context(), func(context.Context) error {
			calls++
			return errors.New("boom")
		})

		require.EqualError(t, err, "boom")
		assert.Equal(t, 1, calls)
	})
}

func TestDoValue(t *testing.T) {
	calls := 0
	r := retry.New(fastPolicy(), nil)

	v, err := retry.DoValue(t.Context(), r, func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, driver.ErrBadConn
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestRetrier_Nil(t *testing.T) {
	var r *retry.Retrier
	calls := 0

	err := r.Do(t.Context(), func(context.Context) error {
		calls++
		return driver.ErrBadConn
	})

	require.ErrorIs(t, err, driver.ErrBadConn)
	assert.Equal(t, 1, calls)
}

// Package retry runs operations with bounded exponential backoff, retrying only
// failures that errs.IsTransient classifies as transient.
package retry

import (
	"context"
	"time"

	"encargos/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Policy bounds the retry loop. MaxAttempts counts the first call.
type Policy struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
}

// DefaultPolicy returns three attempts starting at 100ms, capped at one second.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
	}
}

// Retrier executes operations under a Policy.
type Retrier struct {
	policy Policy
	logger *zap.Logger
}

// New creates a Retrier. A nil logger disables retry logging.
func New(policy Policy, logger *zap.Logger) *Retrier {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrier{policy: policy, logger: logger}
}

// Do calls op until it succeeds, returns a non-transient error, the attempts
// are exhausted or ctx is done. The last error is returned unwrapped.
// A nil Retrier calls op once.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	if r == nil {
		return op(ctx)
	}
	attempt := 0
	started := time.Now()

	operation := func() error {
		attempt++
		err := op(ctx)
		if err == nil {
			if attempt > 1 {
				r.logger.Info("operation recovered after retries",
					zap.Int("attempts", attempt),
					zap.Duration("total_time", time.Since(started)),
				)
			}
			return nil
		}
		if !errs.IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		r.logger.Debug("retrying operation after transient error",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.policy.MaxAttempts),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
	}

	return backoff.RetryNotify(operation, r.backOff(ctx), notify)
}

func (r *Retrier) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if r.policy.InitialInterval > 0 {
		exp.InitialInterval = r.policy.InitialInterval
	}
	if r.policy.MaxInterval > 0 {
		exp.MaxInterval = r.policy.MaxInterval
	}
	exp.MaxElapsedTime = 0

	//nolint:gosec // MaxAttempts is validated to be >= 1
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(r.policy.MaxAttempts-1)), ctx)
}

// DoValue is Do for operations that produce a result.
func DoValue[T any](ctx context.Context, r *Retrier, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

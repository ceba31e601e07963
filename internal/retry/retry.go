package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/cenkalti/backoff/v4"
)

// Policy bounds the attempts of one outbound call. MaxRetries is the total number of attempts.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

type options struct {
	logger    *slog.Logger
	operation string
	stopOn    []error
	jitter    func() float64
}

type Option func(*options)

// WithLogger logs every failed attempt that is going to be retried.
func WithLogger(logger *slog.Logger, operation string) Option {
	return func(o *options) {
		o.logger = logger
		o.operation = operation
	}
}

// WithStopOn ends retrying on the given errors regardless of their classification.
func WithStopOn(errs ...error) Option {
	return func(o *options) {
		o.stopOn = append(o.stopOn, errs...)
	}
}

func WithJitter(jitter func() float64) Option {
	return func(o *options) {
		o.jitter = jitter
	}
}

// Do runs op until it succeeds, fails with a non retryable error or the attempt budget is spent.
// The error of the last attempt is returned.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	attempts := max(p.MaxRetries, 1)
	retries, err := safecast.ToUint64(attempts - 1)
	if err != nil {
		var zero T
		return zero, err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newExponentialJitter(p.BaseDelay, o.jitter), retries), ctx)

	attempt := 0
	operation := func() (T, error) {
		attempt++
		res, opErr := op(ctx)
		if opErr == nil {
			return res, nil
		}

		for _, stop := range o.stopOn {
			if errors.Is(opErr, stop) {
				return res, backoff.Permanent(opErr)
			}
		}

		if Classify(opErr) != Retryable {
			return res, backoff.Permanent(opErr)
		}

		return res, opErr
	}

	notify := func(opErr error, next time.Duration) {
		if o.logger == nil {
			return
		}
		o.logger.Warn("Retrying failed call",
			slog.String("operation", o.operation),
			slog.Int("attempt", attempt),
			slog.Int("max", attempts),
			slog.String("next", next.String()),
			slog.String("err", opErr.Error()),
		)
	}

	return backoff.RetryNotifyWithData(operation, policy, notify)
}

// Run is Do for operations without a result.
func Run(ctx context.Context, p Policy, op func(ctx context.Context) error, opts ...Option) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts...)

	return err
}

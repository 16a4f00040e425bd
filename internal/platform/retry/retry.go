package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Policy bounds how often and how patiently an operation is retried.
type Policy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxTries:        3,
		InitialInterval: 25 * time.Millisecond,
		MaxInterval:     250 * time.Millisecond,
		MaxElapsed:      2 * time.Second,
	}
}

// Immediate retries without sleeping between attempts.
func Immediate(tries uint) Policy {
	return Policy{MaxTries: tries}
}

func (p Policy) backOff() backoff.BackOff {
	if p.InitialInterval <= 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	return b
}

// Classifier reports whether an error is worth another attempt.
type Classifier func(error) bool

// Notify is called before every retry with the failed attempt number.
type Notify func(err error, attempt uint, wait time.Duration)

// Do runs op until it succeeds, fails with an error the classifier rejects,
// or the policy is exhausted. The last error is returned unchanged.
func Do(ctx context.Context, policy Policy, retryable Classifier, op func(context.Context) error, notify Notify) error {
	_, err := Value(ctx, policy, retryable, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, notify)
	return err
}

func Value[T any](ctx context.Context, policy Policy, retryable Classifier, op func(context.Context) (T, error), notify Notify) (T, error) {
	tries := policy.MaxTries
	if tries == 0 {
		tries = 1
	}

	var attempt uint
	opts := []backoff.RetryOption{
		backoff.WithBackOff(policy.backOff()),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			if notify != nil {
				notify(err, attempt, wait)
			}
		}),
	}
	if policy.MaxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(policy.MaxElapsed))
	}

	v, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		v, err := op(ctx)
		if err != nil && (retryable == nil || !retryable(err)) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, opts...)

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	return v, err
}

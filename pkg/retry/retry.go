// Package retry runs operations with bounded exponential backoff and jitter.
package retry

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultMaxRetries    uint = 3
	DefaultInitialDelay       = 300 * time.Millisecond
	DefaultBackoffFactor      = 2.0
	DefaultMaxDelay           = 10 * time.Second

	jitterLow  = 0.8
	jitterSpan = 0.4
)

type (
	// Predicate reports whether a failed attempt should be retried.
	// Attempt numbers start at 1.
	Predicate func(err error, attempt uint) bool

	// Notifier observes a scheduled retry before the backoff sleep.
	Notifier func(err error, attempt uint, delay time.Duration)

	Options struct {
		// MaxRetries is the total number of attempts, the first one included.
		MaxRetries    uint
		InitialDelay  time.Duration
		BackoffFactor float64
		MaxDelay      time.Duration
		ShouldRetry   Predicate
		OnRetry       Notifier
	}

	Option func(*Options)
)

func DefaultOptions() Options {
	return Options{
		MaxRetries:    DefaultMaxRetries,
		InitialDelay:  DefaultInitialDelay,
		BackoffFactor: DefaultBackoffFactor,
		MaxDelay:      DefaultMaxDelay,
	}
}

// Policy replaces every numeric setting and hook with the given options.
// Zero numeric fields keep their defaults.
func Policy(o Options) Option {
	return func(opts *Options) {
		if o.MaxRetries > 0 {
			opts.MaxRetries = o.MaxRetries
		}

		if o.InitialDelay > 0 {
			opts.InitialDelay = o.InitialDelay
		}

		if o.BackoffFactor > 0 {
			opts.BackoffFactor = o.BackoffFactor
		}

		if o.MaxDelay > 0 {
			opts.MaxDelay = o.MaxDelay
		}

		if o.ShouldRetry != nil {
			opts.ShouldRetry = o.ShouldRetry
		}

		if o.OnRetry != nil {
			opts.OnRetry = o.OnRetry
		}
	}
}

func WithMaxRetries(n uint) Option {
	return func(o *Options) { o.MaxRetries = n }
}

func WithInitialDelay(d time.Duration) Option {
	return func(o *Options) { o.InitialDelay = d }
}

func WithBackoffFactor(f float64) Option {
	return func(o *Options) { o.BackoffFactor = f }
}

func WithMaxDelay(d time.Duration) Option {
	return func(o *Options) { o.MaxDelay = d }
}

func WithShouldRetry(p Predicate) Option {
	return func(o *Options) { o.ShouldRetry = p }
}

func WithOnRetry(n Notifier) Option {
	return func(o *Options) { o.OnRetry = n }
}

// Do runs op until it succeeds, the attempt budget is spent, or ShouldRetry
// declines. The returned error is the last error produced by op itself.
// Cancelling ctx interrupts a pending backoff sleep.
func Do[T any](ctx context.Context, op func(context.Context) (T, error), opts ...Option) (T, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.MaxRetries == 0 {
		o.MaxRetries = 1
	}

	var attempt uint

	operation := func() (T, error) {
		attempt++

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if attempt >= o.MaxRetries {
			return result, err
		}

		if o.ShouldRetry != nil && !o.ShouldRetry(err, attempt) {
			return result, backoff.Permanent(err)
		}

		return result, err
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(NewBackOff(o)),
		backoff.WithMaxTries(o.MaxRetries),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, delay time.Duration) {
			if o.OnRetry != nil {
				o.OnRetry(err, attempt, delay)
			}
		}),
	)
	if permanent, ok := err.(*backoff.PermanentError); ok {
		err = permanent.Err
	}

	return result, err
}

// Delay is the pre-jitter wait after the given failed attempt:
// min(InitialDelay * BackoffFactor^(attempt-1), MaxDelay).
func Delay(attempt uint, o Options) time.Duration {
	if attempt == 0 {
		attempt = 1
	}

	delay := float64(o.InitialDelay) * math.Pow(o.BackoffFactor, float64(attempt-1))
	if o.MaxDelay > 0 && delay > float64(o.MaxDelay) {
		return o.MaxDelay
	}

	return time.Duration(delay)
}

// Jitter scales d by a factor in [0.8, 1.2]. r must lie in [0, 1).
func Jitter(d time.Duration, r float64) time.Duration {
	return time.Duration(float64(d) * (jitterLow + r*jitterSpan))
}

// ExponentialJitter is a backoff.BackOff producing Delay with Jitter applied.
type ExponentialJitter struct {
	opts    Options
	attempt uint
	random  func() float64
}

func NewBackOff(o Options) *ExponentialJitter {
	return &ExponentialJitter{opts: o, random: rand.Float64}
}

func (b *ExponentialJitter) NextBackOff() time.Duration {
	b.attempt++

	return Jitter(Delay(b.attempt, b.opts), b.random())
}

func (b *ExponentialJitter) Reset() {
	b.attempt = 0
}

// AnyOf is satisfied when at least one of the error predicates holds.
func AnyOf(preds ...func(error) bool) Predicate {
	return func(err error, _ uint) bool {
		for _, pred := range preds {
			if pred(err) {
				return true
			}
		}

		return false
	}
}

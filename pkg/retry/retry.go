// Package retry runs an operation again with exponential backoff and jitter.
// It is used where a dependency may still be starting up, such as the
// datastore at process start. The loop itself is retry-go; this package
// keeps the backoff formula and the option set the rest of the code uses.
package retry

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	retrygo "github.com/avast/retry-go/v4"
)

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return retrygo.Unrecoverable(err)
}

// IsPermanent checks if an error was marked with Permanent.
func IsPermanent(err error) bool {
	return err != nil && !retrygo.IsRecoverable(err)
}

// Config holds retry configuration.
type Config struct {
	// MaxAttempts counts the first attempt too.
	MaxAttempts int

	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Multiplier grows the delay after each attempt.
	Multiplier float64

	// JitterFactor spreads each delay by ±factor (0 disables jitter).
	JitterFactor float64

	// OnRetry is called before sleeping; attempt is the one that just failed.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultConfig returns the settings used by New without options.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// Option is a functional option for configuring retries.
type Option func(*Config)

// WithMaxAttempts sets the maximum number of attempts.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxAttempts = n
		}
	}
}

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.InitialDelay = d
		}
	}
}

// WithMaxDelay caps the delay between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.MaxDelay = d
		}
	}
}

// WithJitter sets the jitter factor (0.0 to 1.0).
func WithJitter(j float64) Option {
	return func(c *Config) {
		if j >= 0 && j <= 1.0 {
			c.JitterFactor = j
		}
	}
}

// WithOnRetry sets a callback run before each retry.
func WithOnRetry(fn func(attempt int, err error, delay time.Duration)) Option {
	return func(c *Config) {
		c.OnRetry = fn
	}
}

// Retrier runs operations with the configured backoff.
type Retrier struct {
	config Config
}

// New creates a Retrier.
func New(opts ...Option) *Retrier {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Retrier{config: config}
}

// Do runs operation until it succeeds, returns a Permanent error, the attempts
// run out or ctx is done. Only the last operation error is returned.
func (r *Retrier) Do(ctx context.Context, operation func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	attempt := 0
	return retrygo.Do(
		func() error {
			attempt++
			return operation(ctx)
		},
		r.options(ctx, &attempt)...,
	)
}

// options maps Config onto retry-go. attempt is advanced by the caller's
// wrapped operation, so the delay always matches the attempt that just failed.
func (r *Retrier) options(ctx context.Context, attempt *int) []retrygo.Option {
	return []retrygo.Option{
		retrygo.Context(ctx),
		retrygo.Attempts(uint(r.config.MaxAttempts)),
		retrygo.LastErrorOnly(true),
		retrygo.DelayType(func(_ uint, err error, _ *retrygo.Config) time.Duration {
			d := r.delay(*attempt)
			if r.config.OnRetry != nil {
				r.config.OnRetry(*attempt, err, d)
			}
			return d
		}),
	}
}

// delay is InitialDelay * Multiplier^(attempt-1), capped and jittered.
func (r *Retrier) delay(attempt int) time.Duration {
	d := float64(r.config.InitialDelay) * math.Pow(r.config.Multiplier, float64(attempt-1))
	if d > float64(r.config.MaxDelay) {
		d = float64(r.config.MaxDelay)
	}

	if r.config.JitterFactor > 0 {
		d += d * r.config.JitterFactor * (rand.Float64()*2 - 1)
	}
	if d < 0 {
		d = 0
	}
	return time.Duration(d)
}

// DoWithData is Do for operations that return a value.
func DoWithData[T any](ctx context.Context, r *Retrier, operation func(ctx context.Context) (T, error)) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	attempt := 0
	return retrygo.DoWithData(
		func() (T, error) {
			attempt++
			return operation(ctx)
		},
		r.options(ctx, &attempt)...,
	)
}

// DatastoreRetrier is tuned for opening the database at startup.
func DatastoreRetrier(onRetry func(attempt int, err error, delay time.Duration)) *Retrier {
	return New(
		WithMaxAttempts(4),
		WithInitialDelay(250*time.Millisecond),
		WithMaxDelay(2*time.Second),
		WithJitter(0.1),
		WithOnRetry(onRetry),
	)
}

package retry

import (
	"math"
	"math/rand"
	"time"

	"github.com/vvka-141/pgseed/pkg/pgseed"
)

// ExponentialBackoff waits initialDelay * multiplier^attempt, capped at
// maxDelay, then scaled by a random factor in [1-jitter, 1+jitter).
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int
	jitter       float64
	jitterFunc   func() float64
}

// BackoffOption configures an ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.initialDelay = d }
}

func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.maxDelay = d }
}

func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// WithJitter sets the relative jitter; 0 disables it.
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitter = j }
}

// WithJitterFunc replaces the random source; f must return values in [0,1).
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitterFunc = f }
}

// NewExponentialBackoff creates a strategy allowing maxAttempts retries
// (negative means unlimited). Defaults: 100ms initial delay, 30s cap,
// multiplier 2, jitter 0.1.
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: 100 * time.Millisecond,
		maxDelay:     30 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
		jitterFunc:   rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewDefaultBackoff returns the strategy used for database connections.
func NewDefaultBackoff() *ExponentialBackoff {
	return NewExponentialBackoff(pgseed.DefaultRetryMaxAttempts,
		WithInitialDelay(pgseed.DefaultRetryInitialDelay),
		WithMaxDelay(pgseed.DefaultRetryMaxDelay),
	)
}

// NextDelay returns the wait before retry number attempt (0-based).
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	ms := float64(b.initialDelay.Milliseconds()) * math.Pow(b.multiplier, float64(attempt))
	if capMs := float64(b.maxDelay.Milliseconds()); ms > capMs {
		ms = capMs
	}

	if b.jitter > 0 {
		offset := b.jitterFunc()*2 - 1 // [0,1) -> [-1,1)
		ms *= 1 + b.jitter*offset
	}

	return time.Duration(ms) * time.Millisecond
}

func (b *ExponentialBackoff) MaxAttempts() int { return b.maxAttempts }

func (b *ExponentialBackoff) InitialDelay() time.Duration { return b.initialDelay }

func (b *ExponentialBackoff) MaxDelay() time.Duration { return b.maxDelay }

func (b *ExponentialBackoff) Multiplier() float64 { return b.multiplier }

func (b *ExponentialBackoff) Jitter() float64 { return b.jitter }

var _ pgseed.BackoffStrategy = (*ExponentialBackoff)(nil)

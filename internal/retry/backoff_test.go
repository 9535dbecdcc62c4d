package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/pgseed/pkg/pgseed"
)

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3)

	assert.Equal(t, 3, b.MaxAttempts())
	assert.Equal(t, 100*time.Millisecond, b.InitialDelay())
	assert.Equal(t, 30*time.Second, b.MaxDelay())
	assert.Equal(t, 2.0, b.Multiplier())
	assert.Equal(t, 0.1, b.Jitter())
}

func TestExponentialBackoff_NextDelayWithoutJitter(t *testing.T) {
	b := NewExponentialBackoff(10, WithJitter(0), WithMaxDelay(time.Second))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, time.Second},
		{20, time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.NextDelay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	low := NewExponentialBackoff(1, WithJitter(0.1), WithJitterFunc(func() float64 { return 0 }))
	high := NewExponentialBackoff(1, WithJitter(0.1), WithJitterFunc(func() float64 { return 0.999999 }))
	mid := NewExponentialBackoff(1, WithJitter(0.1), WithJitterFunc(func() float64 { return 0.5 }))

	assert.Equal(t, 90*time.Millisecond, low.NextDelay(0))
	assert.Equal(t, 100*time.Millisecond, mid.NextDelay(0))
	assert.InDelta(t, float64(110*time.Millisecond), float64(high.NextDelay(0)), float64(time.Millisecond))
}

func TestExponentialBackoff_CustomMultiplier(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(10*time.Millisecond),
		WithMultiplier(3),
		WithJitter(0),
	)

	assert.Equal(t, 90*time.Millisecond, b.NextDelay(2))
}

func TestNewDefaultBackoff(t *testing.T) {
	b := NewDefaultBackoff()

	assert.Equal(t, pgseed.DefaultRetryMaxAttempts, b.MaxAttempts())
	assert.Equal(t, pgseed.DefaultRetryInitialDelay, b.InitialDelay())
	assert.Equal(t, pgseed.DefaultRetryMaxDelay, b.MaxDelay())
}

package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter(t *testing.T) {
	l := NewLimiter(10, 2)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow(), "burst allows a second token")
	assert.False(t, l.Allow(), "burst exhausted")

	time.Sleep(150 * time.Millisecond)
	assert.True(t, l.Allow(), "token refilled")
}

func TestLimiter_Delay(t *testing.T) {
	l := NewLimiter(1, 1)
	assert.Zero(t, l.Delay(), "a full bucket has no delay")

	require.True(t, l.Allow())
	d := l.Delay()
	assert.Greater(t, d, 500*time.Millisecond)
	assert.LessOrEqual(t, d, time.Second)
	assert.False(t, l.Allow(), "Delay must not consume or refund tokens")
}

func TestLimiter_NonPositiveRateIsUnlimited(t *testing.T) {
	l := NewLimiter(0, 0)
	for range 100 {
		require.True(t, l.Allow())
	}
	assert.Zero(t, l.Delay())
}

func TestLimiterRegistry(t *testing.T) {
	reg := NewLimiterRegistry(100, 10, 100*time.Millisecond)
	defer reg.Close()

	l1 := reg.Get("10.0.0.1")
	l2 := reg.Get("10.0.0.2")
	assert.NotSame(t, l1, l2)
	assert.Same(t, l1, reg.Get("10.0.0.1"))
	assert.Equal(t, 2, reg.Len())

	time.Sleep(250 * time.Millisecond)
	assert.NotSame(t, l1, reg.Get("10.0.0.1"), "idle limiter should be replaced")
}

func TestLimiterRegistry_CloseTwice(t *testing.T) {
	reg := NewLimiterRegistry(1, 1, time.Second)
	reg.Close()
	reg.Close()
}

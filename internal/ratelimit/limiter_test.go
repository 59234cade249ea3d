package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait_AllowsWithinBudget(t *testing.T) {
	m := NewManager(100, 100)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		require.NoError(t, m.Wait(ctx, "example.com"))
	}
}

func TestWait_CancelledContext(t *testing.T) {
	m := NewManager(0.001, 0.001) // effectively frozen buckets
	_ = m.Wait(context.Background(), "example.com") // drain the burst token

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := m.Wait(ctx, "example.com")
	assert.Error(t, err)
}

func TestLimiterFor_ReusesDomainBucket(t *testing.T) {
	m := NewManager(100, 5)
	a := m.limiterFor("some-domain.org")
	b := m.limiterFor("some-domain.org")
	assert.Same(t, a, b)

	gmail := m.limiterFor("gmail.com")
	assert.NotSame(t, a, gmail)
}

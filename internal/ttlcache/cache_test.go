package ttlcache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrFill_CachesValue(t *testing.T) {
	c := New[string](time.Minute)
	var calls int32

	fill := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	v, err := c.GetOrFill("k", fill)
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = c.GetOrFill("k", fill)
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call should hit the cache")
}

func TestGetOrFill_RefreshesAfterExpiry(t *testing.T) {
	clock := time.Now()
	c := NewWithClock[int](time.Minute, func() time.Time { return clock })

	calls := 0
	fill := func() (int, error) {
		calls++
		return calls, nil
	}

	v, _ := c.GetOrFill("k", fill)
	assert.Equal(t, 1, v)

	clock = clock.Add(2 * time.Minute)
	v, _ = c.GetOrFill("k", fill)
	assert.Equal(t, 2, v, "expired entry should be refilled")
}

func TestGetOrFill_CachesErrors(t *testing.T) {
	c := New[string](time.Minute)
	calls := 0
	boom := errors.New("boom")

	_, err := c.GetOrFill("k", func() (string, error) { calls++; return "", boom })
	assert.ErrorIs(t, err, boom)
	_, err = c.GetOrFill("k", func() (string, error) { calls++; return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "negative result is cached for the TTL too")
}

func TestGetOrFill_Singleflight(t *testing.T) {
	c := New[string](time.Minute)
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	slowFill := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.GetOrFill("k", slowFill)
	}()
	<-started

	for i := 1; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.GetOrFill("k", func() (string, error) {
				atomic.AddInt32(&calls, 1)
				return "duplicate", nil
			})
		}(i)
	}

	time.Sleep(20 * time.Millisecond) // let waiters block on the in-flight entry
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestGetAndPut(t *testing.T) {
	c := New[int](time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("k", 42)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	c.Clear()
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestGet_ExpiredEntry(t *testing.T) {
	clock := time.Now()
	c := NewWithClock[int](time.Minute, func() time.Time { return clock })

	c.Put("k", 1)
	clock = clock.Add(2 * time.Minute)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

package resultcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaainil/vivid-valid/types"
)

func TestMemory_RoundTrip(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "user@example.com")
	assert.False(t, ok)

	want := &types.ValidationResult{Email: "user@example.com", Score: 90, Status: types.StatusValid}
	c.Put(ctx, "user@example.com", want)

	got, ok := c.Get(ctx, "user@example.com")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryCache(t *testing.T) *MemoryCache {
	t.Helper()
	c, err := NewMemoryCache(MemoryConfig{Capacity: 100, Shards: 4})
	require.NoError(t, err)
	return c
}

func TestMemoryCacheGetSetRemove(t *testing.T) {
	ctx := context.Background()
	c := newTestMemoryCache(t)

	_, ok, err := c.Get(ctx, "book:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "book:1", `{"title":"A"}`, time.Minute))
	v, ok, err := c.Get(ctx, "book:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"title":"A"}`, v)

	require.NoError(t, c.Set(ctx, "book:1", `{"title":"B"}`, time.Minute))
	v, _, _ = c.Get(ctx, "book:1")
	assert.Equal(t, `{"title":"B"}`, v)

	require.NoError(t, c.Remove(ctx, "book:1"))
	require.NoError(t, c.Remove(ctx, "book:1"))
	_, ok, _ = c.Get(ctx, "book:1")
	assert.False(t, ok)
}

func TestMemoryCacheSetAcrossTTLsReplaces(t *testing.T) {
	ctx := context.Background()
	c := newTestMemoryCache(t)

	require.NoError(t, c.Set(ctx, "k", "old", time.Minute))
	require.NoError(t, c.Set(ctx, "k", "new", 2*time.Minute))

	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", v)
	assert.Equal(t, 1, c.Size())
}

func TestMemoryCacheExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	c := newTestMemoryCache(t)

	require.NoError(t, c.Set(ctx, "author:1", "x", 50*time.Millisecond))
	_, ok, _ := c.Get(ctx, "author:1")
	require.True(t, ok)

	time.Sleep(120 * time.Millisecond)

	_, ok, err := c.Get(ctx, "author:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestMemoryCache(t)
	_, _, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Set(ctx, "k", "v", time.Minute), context.Canceled)
}

func TestMemoryConfigValidate(t *testing.T) {
	_, err := NewMemoryCache(MemoryConfig{Capacity: 0, Shards: 1})
	assert.Error(t, err)

	_, err = NewMemoryCache(MemoryConfig{Capacity: 10, Shards: 1, EvictionPercentage: 101})
	assert.Error(t, err)
}

package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chungjai123/food-bot/internal/ports/cache"
)

func TestCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCacheSetNX(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	ok, err := c.SetNX(ctx, "cooldown:1", "1", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "cooldown:1", "1", 10*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(11 * time.Second)
	ok, err = c.SetNX(ctx, "cooldown:1", "1", 10*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCacheDeleteAndPurge(t *testing.T) {
	ctx := context.Background()
	c := NewCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "a", "1", time.Second))
	require.NoError(t, c.Set(ctx, "b", "2", 0))
	require.NoError(t, c.Set(ctx, "c", "3", time.Hour))
	require.NoError(t, c.Delete(ctx, "c"))

	now = now.Add(time.Minute)
	assert.Equal(t, 1, c.Purge())

	got, err := c.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string]("test", DefaultExpiration, DefaultCleanupInterval)

	_, found := c.Get(ctx, "missing")
	require.False(t, found)

	c.Set(ctx, "key", "value", time.Minute)
	v, found := c.Get(ctx, "key")
	require.True(t, found)
	require.Equal(t, "value", v)
}

func TestInMemoryCacheManager_GetOrLoad(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[int]("test", DefaultExpiration, DefaultCleanupInterval)

	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrLoad(ctx, "answer", time.Minute, load)
	require.NoError(t, err)
	require.Equal(t, 42, v)

	// Second call hits the cache.
	v, err = c.GetOrLoad(ctx, "answer", time.Minute, load)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, 1, calls)
}

func TestInMemoryCacheManager_GetOrLoad_Error(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[int]("test", DefaultExpiration, DefaultCleanupInterval)

	loadErr := errors.New("load failed")
	_, err := c.GetOrLoad(ctx, "key", time.Minute, func(context.Context) (int, error) {
		return 0, loadErr
	})
	require.ErrorIs(t, err, loadErr)

	// Failed loads are not cached.
	_, found := c.Get(ctx, "key")
	require.False(t, found)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string]("test", DefaultExpiration, DefaultCleanupInterval)

	c.Set(ctx, "a", "1", time.Minute)
	c.Set(ctx, "b", "2", time.Minute)

	require.NoError(t, c.Delete(ctx, "a"))
	_, found := c.Get(ctx, "a")
	require.False(t, found)

	require.NoError(t, c.Flush(ctx))
	_, found = c.Get(ctx, "b")
	require.False(t, found)
}

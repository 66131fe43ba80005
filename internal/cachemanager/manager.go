package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed TTL cache.
type CacheManager[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
	// GetOrLoad returns the cached value or loads, caches and returns it.
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) (V, error)) (V, error)
	Delete(ctx context.Context, keys ...string) error
	Flush(ctx context.Context) error
}

// Package cache stores JSON encoded values in a local layer in front of an
// optional remote store.
package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/matst80/car-finder/pkg/common/jsoncompat"
)

// Cache reads the local layer first and fills it from the remote store.
type Cache struct {
	local    *MemoryStore
	remote   Store
	localTTL time.Duration
}

// NewCache creates a cache in front of remote. A nil remote gives a purely
// local cache.
func NewCache(remote Store, localTTL time.Duration) *Cache {
	if localTTL <= 0 {
		localTTL = time.Minute
	}
	return &Cache{local: NewMemoryStore(), remote: remote, localTTL: localTTL}
}

func (c *Cache) Get(ctx context.Context, key string, out any) error {
	data, err := c.local.Get(ctx, key)
	if err == nil {
		return jsoncompat.Unmarshal(data, out)
	}
	if c.remote == nil {
		return ErrMiss
	}
	data, err = c.remote.Get(ctx, key)
	if err != nil {
		return err
	}
	if err = jsoncompat.Unmarshal(data, out); err != nil {
		return err
	}
	return c.local.Set(ctx, key, data, c.localTTL)
}

func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := jsoncompat.Marshal(value)
	if err != nil {
		return err
	}
	_ = c.local.Set(ctx, key, data, min(expiration, c.localTTL))
	if c.remote == nil {
		return nil
	}
	return c.remote.Set(ctx, key, data, expiration)
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	_ = c.local.Del(ctx, keys...)
	if c.remote == nil {
		return nil
	}
	return c.remote.Del(ctx, keys...)
}

// Helper loads typed values through the cache.
type Helper[T any] struct {
	Cache *Cache
}

func NewHelper[T any](cache *Cache) *Helper[T] {
	return &Helper[T]{Cache: cache}
}

// Handle returns the cached value for key, or calls fn and caches its result.
// Failing cache reads and writes are logged, they never fail the call.
func (h *Helper[T]) Handle(ctx context.Context, key string, expiration time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	if h == nil || h.Cache == nil {
		return fn(ctx)
	}
	err := h.Cache.Get(ctx, key, &out)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ErrMiss) {
		log.Printf("cache read %s failed: %v", key, err)
	}
	out, err = fn(ctx)
	if err != nil {
		return out, err
	}
	if err := h.Cache.Set(ctx, key, out, expiration); err != nil {
		log.Printf("cache write %s failed: %v", key, err)
	}
	return out, nil
}

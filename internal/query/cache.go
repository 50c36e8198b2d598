package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sonatafm/podium/internal/shared"
)

// Cache deduplicates and caches platform reads.
type Cache struct {
	store  Store
	logger *log.Logger

	mu       sync.Mutex
	inFlight map[string]*flight
}

// flight is one shared in-progress fetch. Followers wait on done and read
// value/err afterwards.
type flight struct {
	done  chan struct{}
	value []byte
	err   error
}

// NewCache creates a cache over the given backend store.
func NewCache(store Store, logger *log.Logger) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Cache{
		store:    store,
		logger:   logger,
		inFlight: make(map[string]*flight),
	}
}

// Fetch returns the cached value for key, or runs fetch exactly once per
// concurrent set of identical keys and caches the result for the resource's
// freshness window.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	keyStr := key.String()

	if raw, ok, err := c.store.Get(ctx, keyStr); err != nil {
		// A broken backend degrades to fetching; reads must keep working.
		c.logger.Warn("cache read failed", "key", keyStr, "err", err)
	} else if ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
		c.logger.Warn("cache entry corrupt, refetching", "key", keyStr)
	}

	c.mu.Lock()
	if f, ok := c.inFlight[keyStr]; ok {
		c.mu.Unlock()
		select {
		case <-f.done:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
		if f.err != nil {
			return zero, f.err
		}
		var value T
		if err := json.Unmarshal(f.value, &value); err != nil {
			return zero, fmt.Errorf("failed to decode shared fetch result: %w", err)
		}
		return value, nil
	}

	f := &flight{done: make(chan struct{})}
	c.inFlight[keyStr] = f
	c.mu.Unlock()

	value, err := fetch(ctx)
	if err == nil {
		if raw, mErr := json.Marshal(value); mErr != nil {
			err = fmt.Errorf("failed to encode fetch result: %w", mErr)
		} else {
			f.value = raw
			if sErr := c.store.Set(ctx, keyStr, raw, key.Resource.Freshness()); sErr != nil {
				c.logger.Warn("cache write failed", "key", keyStr, "err", sErr)
			}
		}
	}
	f.err = err

	c.mu.Lock()
	delete(c.inFlight, keyStr)
	c.mu.Unlock()
	close(f.done)

	if err != nil {
		return zero, err
	}
	return value, nil
}

// Put eagerly writes a value into its cache slot, used by mutations to update
// open detail views without waiting for a refetch.
func (c *Cache) Put(ctx context.Context, key Key, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	return c.store.Set(ctx, key.String(), raw, key.Resource.Freshness())
}

// Invalidate drops every cached read of the resource's key family and of its
// dependent families. The next read of any dropped key refetches.
func (c *Cache) Invalidate(ctx context.Context, resource Resource) error {
	if err := c.store.DeletePrefix(ctx, prefix(resource)); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", resource, err)
	}
	for _, dep := range resource.Dependents() {
		if err := c.store.DeletePrefix(ctx, prefix(dep)); err != nil {
			return fmt.Errorf("failed to invalidate dependent %s: %w", dep, err)
		}
	}
	return nil
}

// Forget drops a single cached key.
func (c *Cache) Forget(ctx context.Context, key Key) error {
	return c.store.Delete(ctx, key.String())
}

package query

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sonatafm/podium/internal/notify"
	"github.com/sonatafm/podium/internal/shared"
)

// Mutator runs platform writes and keeps the cache and toast queue in sync.
//
// A successful mutation invalidates the resource's key family (and its
// dependents) and resolves the loading toast to success. A failed mutation
// leaves the cache untouched, resolves the toast to error, and returns the
// error. There is no optimistic write: the cache only ever holds
// server-confirmed state.
type Mutator struct {
	cache  *Cache
	toasts *notify.Center
	logger *log.Logger
}

// NewMutator creates a mutator over the given cache and toast center.
func NewMutator(cache *Cache, toasts *notify.Center, logger *log.Logger) *Mutator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Mutator{cache: cache, toasts: toasts, logger: logger}
}

// Cache exposes the underlying cache for read wiring.
func (m *Mutator) Cache() *Cache { return m.cache }

// begin pushes the loading toast; settle resolves it and handles
// invalidation. Mutations running without a toast center still invalidate.
func (m *Mutator) begin(label string) string {
	if m.toasts == nil {
		return ""
	}
	return m.toasts.Push(notify.LevelLoading, label+"...")
}

func (m *Mutator) settle(ctx context.Context, resource Resource, label, toastID string, err error) {
	if err != nil {
		m.logger.Error("mutation failed", "resource", resource, "op", label, "err", err)
		if m.toasts != nil {
			m.toasts.Resolve(toastID, notify.LevelError, fmt.Sprintf("%s failed: %v", label, err))
		}
		return
	}

	if invErr := m.cache.Invalidate(ctx, resource); invErr != nil {
		m.logger.Warn("invalidation failed", "resource", resource, "err", invErr)
	}
	if m.toasts != nil {
		m.toasts.Resolve(toastID, notify.LevelSuccess, label+" succeeded")
	}
}

// Mutate runs a write returning a result entity. On success the resource
// family is invalidated.
func Mutate[T any](ctx context.Context, m *Mutator, resource Resource, label string, fn func(context.Context) (T, error)) (T, error) {
	toastID := m.begin(label)
	value, err := fn(ctx)
	m.settle(ctx, resource, label, toastID, err)
	return value, err
}

// MutateItem runs a write returning a single entity and, on success, eagerly
// writes it into the entity's single-item cache slot so open detail views
// update without a refetch.
func MutateItem[T any](ctx context.Context, m *Mutator, resource Resource, label string, itemID func(T) string, fn func(context.Context) (T, error)) (T, error) {
	value, err := Mutate(ctx, m, resource, label, fn)
	if err != nil {
		return value, err
	}

	if id := itemID(value); id != "" {
		if putErr := m.cache.Put(ctx, ItemKey(resource, id), value); putErr != nil {
			m.logger.Warn("eager cache write failed", "resource", resource, "id", id, "err", putErr)
		}
	}
	return value, nil
}

// Delete runs a deletion. On success the entity's item slot is dropped along
// with the resource family, so open detail views fall through to a not-found
// read instead of serving the deleted entity.
func (m *Mutator) Delete(ctx context.Context, resource Resource, label, id string, fn func(context.Context) error) error {
	toastID := m.begin(label)
	err := fn(ctx)
	m.settle(ctx, resource, label, toastID, err)
	if err != nil {
		return err
	}

	if fErr := m.cache.Forget(ctx, ItemKey(resource, id)); fErr != nil {
		m.logger.Warn("item cache drop failed", "resource", resource, "id", id, "err", fErr)
	}
	return nil
}

package query

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Set And Get", func(t *testing.T) {
		store := newTestRedisStore(t)

		require.NoError(t, store.Set(ctx, "songs|page=1", []byte(`{"count":1}`), time.Minute))

		value, ok, err := store.Get(ctx, "songs|page=1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"count":1}`, string(value))
	})

	t.Run("Get Miss", func(t *testing.T) {
		store := newTestRedisStore(t)

		_, ok, err := store.Get(ctx, "albums")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete", func(t *testing.T) {
		store := newTestRedisStore(t)

		require.NoError(t, store.Set(ctx, "users|id=u1", []byte("{}"), time.Minute))
		require.NoError(t, store.Delete(ctx, "users|id=u1"))

		_, ok, err := store.Get(ctx, "users|id=u1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("DeletePrefix Removes Family Only", func(t *testing.T) {
		store := newTestRedisStore(t)

		require.NoError(t, store.Set(ctx, "albums", []byte("{}"), time.Minute))
		require.NoError(t, store.Set(ctx, "albums|page=2", []byte("{}"), time.Minute))
		require.NoError(t, store.Set(ctx, "albums|id=al1", []byte("{}"), time.Minute))
		require.NoError(t, store.Set(ctx, "users|id=u1", []byte("{}"), time.Minute))

		require.NoError(t, store.DeletePrefix(ctx, "albums"))

		for _, key := range []string{"albums", "albums|page=2", "albums|id=al1"} {
			_, ok, err := store.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok, "expected %s to be deleted", key)
		}

		_, ok, err := store.Get(ctx, "users|id=u1")
		require.NoError(t, err)
		assert.True(t, ok, "expected other families to survive")
	})

	t.Run("TTL Expiry", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		store := NewRedisStore(client)

		require.NoError(t, store.Set(ctx, "live", []byte("{}"), 30*time.Second))

		mr.FastForward(time.Minute)

		_, ok, err := store.Get(ctx, "live")
		require.NoError(t, err)
		assert.False(t, ok, "expected entry to expire")
	})

	t.Run("Works Behind Cache", func(t *testing.T) {
		store := newTestRedisStore(t)
		cache := NewCache(store, nil)

		calls := 0
		fetch := func(context.Context) (string, error) {
			calls++
			return "cached", nil
		}

		key := ListKey(ResourceGenres, nil)
		for i := 0; i < 3; i++ {
			value, err := Fetch(ctx, cache, key, fetch)
			require.NoError(t, err)
			assert.Equal(t, "cached", value)
		}
		assert.Equal(t, 1, calls)
	})
}

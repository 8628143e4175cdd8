package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievelabs/sieve/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreGetSet(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("k1"), []byte("v1"), 0))

	value, err := store.Get(ctx, []byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)

	_, err = store.Get(ctx, []byte("missing"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("k1"), []byte("v1"), 0))
	require.NoError(t, store.Delete(ctx, []byte("k1"), []byte("never-existed")))

	_, err := store.Get(ctx, []byte("k1"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreScan(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("scache:1"), []byte("a"), 0))
	require.NoError(t, store.Set(ctx, []byte("scache:2"), []byte("b"), 0))
	require.NoError(t, store.Set(ctx, []byte("fbk:1"), []byte("c"), 0))

	seen := make(map[string]string)
	err := store.Scan(ctx, []byte("scache:"), func(key, value []byte) error {
		seen[string(key)] = string(value)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"scache:1": "a", "scache:2": "b"}, seen)
}

func TestStoreScanCancelled(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("k1"), []byte("v1"), 0))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err := store.Scan(cancelled, []byte("k"), func(key, value []byte) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStoreDeletePrefix(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, []byte("scache:1"), []byte("a"), 0))
	require.NoError(t, store.Set(ctx, []byte("scache:2"), []byte("b"), 0))
	require.NoError(t, store.Set(ctx, []byte("fbk:1"), []byte("c"), 0))

	require.NoError(t, store.DeletePrefix(ctx, []byte("scache:")))

	_, err := store.Get(ctx, []byte("scache:1"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	value, err := store.Get(ctx, []byte("fbk:1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), value)
}

func TestStoreClose(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	assert.False(t, store.IsClosed())
	require.NoError(t, store.Close())
	assert.True(t, store.IsClosed())
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	storedAt := time.Now()

	require.NoError(t, store.Put(ctx, "stats", []byte("a"), storedAt))

	payload, at, ok := store.Get(ctx, "stats")
	require.True(t, ok)
	assert.Equal(t, []byte("a"), payload)
	assert.True(t, at.Equal(storedAt))
}

func TestMemoryStore_Miss(t *testing.T) {
	store := NewMemoryStore()
	_, _, ok := store.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestMemoryStore_OverwriteInPlace(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "stats", []byte("old"), time.Now().Add(-time.Hour)))
	later := time.Now()
	require.NoError(t, store.Put(ctx, "stats", []byte("new"), later))

	payload, at, ok := store.Get(ctx, "stats")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), payload)
	assert.True(t, at.Equal(later))
}

func TestMemoryStore_KeyIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "stats", []byte("s"), time.Now()))
	require.NoError(t, store.Put(ctx, "price-history", []byte("h"), time.Now()))

	payload, _, ok := store.Get(ctx, "stats")
	require.True(t, ok)
	assert.Equal(t, []byte("s"), payload)

	payload, _, ok = store.Get(ctx, "price-history")
	require.True(t, ok)
	assert.Equal(t, []byte("h"), payload)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "stats", []byte("abc"), time.Now()))

	payload, _, _ := store.Get(ctx, "stats")
	payload[0] = 'X'

	again, _, _ := store.Get(ctx, "stats")
	assert.Equal(t, []byte("abc"), again)
}

func TestFresh(t *testing.T) {
	ttl := 300 * time.Second
	storedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		now   time.Time
		fresh bool
	}{
		{"one second old", storedAt.Add(time.Second), true},
		{"just inside the TTL", storedAt.Add(299 * time.Second), true},
		{"exactly at the TTL", storedAt.Add(300 * time.Second), false},
		{"just past the TTL", storedAt.Add(301 * time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fresh, Fresh(storedAt, tt.now, ttl))
		})
	}
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_GetHit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	storedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectGet("crypticker:stats").SetVal(`{"market_price_usd":42000}`)
	mock.ExpectGet("crypticker:stats:cached_at").SetVal(storedAt.Format(time.RFC3339Nano))

	store := NewRedisStore(rdb)
	payload, at, ok := store.Get(context.Background(), "crypticker:stats")

	require.True(t, ok)
	assert.Equal(t, []byte(`{"market_price_usd":42000}`), payload)
	assert.True(t, at.Equal(storedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("crypticker:stats").RedisNil()

	store := NewRedisStore(rdb)
	_, _, ok := store.Get(context.Background(), "crypticker:stats")
	assert.False(t, ok)
}

func TestRedisStore_GetCorruptTimestamp(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("crypticker:stats").SetVal(`{"market_price_usd":42000}`)
	mock.ExpectGet("crypticker:stats:cached_at").SetVal("not a time")

	store := NewRedisStore(rdb)
	_, _, ok := store.Get(context.Background(), "crypticker:stats")
	// A broken timestamp degrades to a miss, never an error
	assert.False(t, ok)
}

func TestRedisStore_GetMissingTimestampKey(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("crypticker:stats").SetVal(`{}`)
	mock.ExpectGet("crypticker:stats:cached_at").RedisNil()

	store := NewRedisStore(rdb)
	_, _, ok := store.Get(context.Background(), "crypticker:stats")
	assert.False(t, ok)
}

func TestRedisStore_Put(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	storedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"market_price_usd":42000}`)

	mock.ExpectSet("crypticker:stats", payload, 0).SetVal("OK")
	mock.ExpectSet("crypticker:stats:cached_at", storedAt.Format(time.RFC3339Nano), 0).SetVal("OK")

	store := NewRedisStore(rdb)
	err := store.Put(context.Background(), "crypticker:stats", payload, storedAt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

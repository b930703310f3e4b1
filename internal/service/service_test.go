package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/crypticker/internal/cache"
	"github.com/yourorg/crypticker/internal/fetch"
	"github.com/yourorg/crypticker/internal/model"
)

type fakeFetcher struct {
	stats        model.Stats
	points       []model.PricePoint
	statsErr     error
	historyErr   error
	statsCalls   int
	historyCalls int
}

func (f *fakeFetcher) FetchStats(ctx context.Context) (model.Stats, error) {
	f.statsCalls++
	if f.statsErr != nil {
		return model.Stats{}, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeFetcher) FetchPriceHistory(ctx context.Context) ([]model.PricePoint, error) {
	f.historyCalls++
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.points, nil
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestService returns a service with a controllable clock.
func newTestService(f *fakeFetcher) (*BitcoinService, *time.Time) {
	now := baseTime
	svc := New(f, cache.NewMemoryStore(), Options{})
	svc.now = func() time.Time { return now }
	return svc, &now
}

func TestGetStats_FreshCacheSkipsNetwork(t *testing.T) {
	f := &fakeFetcher{stats: model.Stats{MarketPriceUSD: 42000.5, Time: time.Unix(1700000000, 0)}}
	svc, now := newTestService(f)
	ctx := context.Background()

	first, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.statsCalls)

	// Just inside the TTL: served from cache, no fetch
	*now = baseTime.Add(299 * time.Second)
	second, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.statsCalls)
	assert.Equal(t, first.MarketPriceUSD, second.MarketPriceUSD)
	assert.True(t, first.Time.Equal(second.Time))

	// Past the TTL: fetched again
	*now = baseTime.Add(301 * time.Second)
	_, err = svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.statsCalls)
}

func TestGetStats_IdempotentFreshReads(t *testing.T) {
	f := &fakeFetcher{stats: model.Stats{MarketPriceUSD: 39500.25, Time: time.Unix(1700000000, 0)}}
	svc, _ := newTestService(f)
	ctx := context.Background()

	_, err := svc.GetStats(ctx)
	require.NoError(t, err)

	a, err := svc.GetStats(ctx)
	require.NoError(t, err)
	b, err := svc.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, f.statsCalls)
	assert.Equal(t, a.MarketPriceUSD, b.MarketPriceUSD)
	assert.True(t, a.Time.Equal(b.Time))
}

func TestGetStats_NetworkErrorLeavesCacheUntouched(t *testing.T) {
	f := &fakeFetcher{statsErr: fetch.ErrNetwork}
	store := cache.NewMemoryStore()
	svc := New(f, store, Options{})
	ctx := context.Background()

	_, err := svc.GetStats(ctx)
	assert.ErrorIs(t, err, fetch.ErrNetwork)

	_, _, ok := store.Get(ctx, "crypticker:stats")
	assert.False(t, ok)
}

func TestGetStats_StaleEntrySurvivesFailedRefetch(t *testing.T) {
	f := &fakeFetcher{stats: model.Stats{MarketPriceUSD: 42000, Time: time.Unix(1700000000, 0)}}
	svc, now := newTestService(f)
	ctx := context.Background()

	_, err := svc.GetStats(ctx)
	require.NoError(t, err)

	// Entry goes stale, then the upstream starts failing
	*now = baseTime.Add(10 * time.Minute)
	f.statsErr = fetch.ErrNetwork
	_, err = svc.GetStats(ctx)
	assert.ErrorIs(t, err, fetch.ErrNetwork)

	// The stale payload is still there for the next attempt
	payload, _, ok := svc.store.Get(ctx, "crypticker:stats")
	require.True(t, ok)
	assert.Contains(t, string(payload), "42000")
}

func TestGetStats_InvalidDataNotCached(t *testing.T) {
	f := &fakeFetcher{stats: model.Stats{MarketPriceUSD: -5, Time: time.Unix(1700000000, 0)}}
	store := cache.NewMemoryStore()
	svc := New(f, store, Options{})
	ctx := context.Background()

	_, err := svc.GetStats(ctx)
	assert.ErrorIs(t, err, fetch.ErrMalformedResponse)

	_, _, ok := store.Get(ctx, "crypticker:stats")
	assert.False(t, ok)
}

func TestGetStats_CorruptCachePayloadRefetches(t *testing.T) {
	f := &fakeFetcher{stats: model.Stats{MarketPriceUSD: 42000, Time: time.Unix(1700000000, 0)}}
	svc, _ := newTestService(f)
	ctx := context.Background()

	require.NoError(t, svc.store.Put(ctx, "crypticker:stats", []byte("not json"), baseTime))

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42000.0, stats.MarketPriceUSD)
	assert.Equal(t, 1, f.statsCalls)
}

func TestGetPriceHistory_CachedIndependentlyOfStats(t *testing.T) {
	f := &fakeFetcher{
		stats: model.Stats{MarketPriceUSD: 42000, Time: time.Unix(1700000000, 0)},
		points: []model.PricePoint{
			{Value: 100, Time: time.Unix(1700000000, 0)},
			{Value: 110, Time: time.Unix(1700086400, 0)},
		},
	}
	svc, _ := newTestService(f)
	ctx := context.Background()

	_, err := svc.GetStats(ctx)
	require.NoError(t, err)
	points, err := svc.GetPriceHistory(ctx)
	require.NoError(t, err)
	require.Len(t, points, 2)

	// Each endpoint writes its own key
	_, _, ok := svc.store.Get(ctx, "crypticker:stats")
	assert.True(t, ok)
	_, _, ok = svc.store.Get(ctx, "crypticker:price-history")
	assert.True(t, ok)

	// A fresh history read does not refetch and keeps ascending order
	again, err := svc.GetPriceHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.historyCalls)
	require.Len(t, again, 2)
	assert.True(t, again[0].Time.Before(again[1].Time))
}

func TestGetPriceHistory_ErrorSurfaces(t *testing.T) {
	wrapped := errors.New("decode exploded")
	f := &fakeFetcher{historyErr: wrapped}
	svc, _ := newTestService(f)

	_, err := svc.GetPriceHistory(context.Background())
	assert.ErrorIs(t, err, wrapped)
}

func TestNew_Defaults(t *testing.T) {
	svc := New(&fakeFetcher{}, cache.NewMemoryStore(), Options{})
	assert.Equal(t, 5*time.Minute, svc.ttl)
	assert.Equal(t, "crypticker", svc.namespace)
}

// Package service implements the cache-aside data service for Bitcoin price data.
//
// Both operations follow the same algorithm: consult the cache and return a
// fresh entry immediately, otherwise fetch from the network, decode, validate,
// write back to the cache and return. Transport or decode failures surface to
// the caller and leave the cache untouched; an existing stale entry stays in
// place for the next attempt. Concurrent callers each trigger their own fetch,
// there is no request coalescing.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/crypticker/internal/cache"
	"github.com/yourorg/crypticker/internal/fetch"
	"github.com/yourorg/crypticker/internal/model"
	"github.com/yourorg/crypticker/internal/otel"
	"github.com/yourorg/crypticker/internal/validation"
)

// Logical cache keys; the only two the service ever writes.
const (
	statsKey        = "stats"
	priceHistoryKey = "price-history"
)

// Fetcher retrieves price data from the upstream API.
type Fetcher interface {
	FetchStats(ctx context.Context) (model.Stats, error)
	FetchPriceHistory(ctx context.Context) ([]model.PricePoint, error)
}

// Options configures a BitcoinService.
type Options struct {
	// TTL is how long a cached payload stays fresh; defaults to 5 minutes
	TTL time.Duration

	// Namespace prefixes cache keys; defaults to "crypticker"
	Namespace string

	// Validation bounds applied after decoding
	Validation validation.Options
}

// BitcoinService orchestrates cache lookup, network fetch, decode and cache
// write for the two blockchain.info endpoints.
type BitcoinService struct {
	fetcher   Fetcher
	store     cache.Store
	ttl       time.Duration
	namespace string
	checks    validation.Options

	// now is swapped out in tests
	now func() time.Time
}

// New creates a BitcoinService backed by the given fetcher and cache store.
func New(fetcher Fetcher, store cache.Store, opts Options) *BitcoinService {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.Namespace == "" {
		opts.Namespace = "crypticker"
	}
	if opts.Validation == (validation.Options{}) {
		opts.Validation = validation.DefaultOptions()
	}
	return &BitcoinService{
		fetcher:   fetcher,
		store:     store,
		ttl:       opts.TTL,
		namespace: opts.Namespace,
		checks:    opts.Validation,
		now:       time.Now,
	}
}

// GetStats returns the current network statistics, served from cache when the
// entry is younger than the TTL.
func (s *BitcoinService) GetStats(ctx context.Context) (model.Stats, error) {
	ctx, span := otel.Tracer().Start(ctx, "service.GetStats")
	defer span.End()

	var cached model.Stats
	if s.readCache(ctx, statsKey, &cached) {
		return cached, nil
	}

	stats, err := s.fetchStats(ctx)
	if err != nil {
		otel.RecordError(ctx, err)
		return model.Stats{}, err
	}

	s.writeCache(ctx, statsKey, stats)
	return stats, nil
}

// GetPriceHistory returns the 30-day price series, ascending by time, served
// from cache when the entry is younger than the TTL.
func (s *BitcoinService) GetPriceHistory(ctx context.Context) ([]model.PricePoint, error) {
	ctx, span := otel.Tracer().Start(ctx, "service.GetPriceHistory")
	defer span.End()

	var cached []model.PricePoint
	if s.readCache(ctx, priceHistoryKey, &cached) {
		return cached, nil
	}

	points, err := s.fetchPriceHistory(ctx)
	if err != nil {
		otel.RecordError(ctx, err)
		return nil, err
	}

	s.writeCache(ctx, priceHistoryKey, points)
	return points, nil
}

func (s *BitcoinService) fetchStats(ctx context.Context) (model.Stats, error) {
	start := s.now()
	stats, err := s.fetcher.FetchStats(ctx)
	fetchDuration.WithLabelValues(statsKey).Observe(time.Since(start).Seconds())
	if err != nil {
		fetchesTotal.WithLabelValues(statsKey, "error").Inc()
		return model.Stats{}, fmt.Errorf("fetching stats: %w", err)
	}
	if err := validation.Stats(stats, s.checks); err != nil {
		fetchesTotal.WithLabelValues(statsKey, "invalid").Inc()
		return model.Stats{}, fmt.Errorf("%w: %v", fetch.ErrMalformedResponse, err)
	}
	fetchesTotal.WithLabelValues(statsKey, "success").Inc()
	return stats, nil
}

func (s *BitcoinService) fetchPriceHistory(ctx context.Context) ([]model.PricePoint, error) {
	start := s.now()
	points, err := s.fetcher.FetchPriceHistory(ctx)
	fetchDuration.WithLabelValues(priceHistoryKey).Observe(time.Since(start).Seconds())
	if err != nil {
		fetchesTotal.WithLabelValues(priceHistoryKey, "error").Inc()
		return nil, fmt.Errorf("fetching price history: %w", err)
	}
	if err := validation.History(points, s.checks); err != nil {
		fetchesTotal.WithLabelValues(priceHistoryKey, "invalid").Inc()
		return nil, fmt.Errorf("%w: %v", fetch.ErrMalformedResponse, err)
	}
	fetchesTotal.WithLabelValues(priceHistoryKey, "success").Inc()
	return points, nil
}

// readCache loads a fresh cache entry into out. Any miss, stale entry or
// undecodable payload counts as a miss.
func (s *BitcoinService) readCache(ctx context.Context, key string, out interface{}) bool {
	payload, storedAt, ok := s.store.Get(ctx, s.cacheKey(key))
	if ok && cache.Fresh(storedAt, s.now(), s.ttl) {
		if err := json.Unmarshal(payload, out); err == nil {
			cacheHits.WithLabelValues(key).Inc()
			return true
		}
		logrus.Debugf("cache payload corrupt for %s, refetching", key)
	}
	cacheMisses.WithLabelValues(key).Inc()
	return false
}

// writeCache stores a fetched value, best effort.
func (s *BitcoinService) writeCache(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		logrus.Warnf("cache marshal failed for %s: %v", key, err)
		return
	}
	if err := s.store.Put(ctx, s.cacheKey(key), payload, s.now()); err != nil {
		logrus.Warnf("cache write failed for %s: %v", key, err)
	}
}

func (s *BitcoinService) cacheKey(key string) string {
	return s.namespace + ":" + key
}

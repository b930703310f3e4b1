package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypticker_cache_hits_total",
		Help: "Total number of fresh cache hits",
	}, []string{"endpoint"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypticker_cache_misses_total",
		Help: "Total number of cache misses (absent, stale or corrupt)",
	}, []string{"endpoint"})

	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crypticker_fetches_total",
		Help: "Total number of upstream fetches",
	}, []string{"endpoint", "status"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "crypticker_fetch_duration_seconds",
		Help:    "Upstream fetch duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

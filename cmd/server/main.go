// Package main is the entry point for the crypticker server, a small JSON API
// serving the current Bitcoin price, its 30-day history and the change versus
// yesterday, fetched from blockchain.info and cached with a short TTL.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourorg/crypticker/internal/cache"
	"github.com/yourorg/crypticker/internal/config"
	"github.com/yourorg/crypticker/internal/fetch"
	"github.com/yourorg/crypticker/internal/otel"
	"github.com/yourorg/crypticker/internal/service"
)

// startTime records when the service was initialized for uptime reporting
var startTime = time.Now()

// serverMetrics holds Prometheus metrics for the HTTP layer
type serverMetrics struct {
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// registerMetrics sets up Prometheus metrics collection
func registerMetrics() *serverMetrics {
	m := &serverMetrics{
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crypticker_requests_total",
				Help: "Total number of API requests processed",
			},
			[]string{"endpoint", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crypticker_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
	}

	prometheus.MustRegister(m.requestCounter, m.requestDuration)
	return m
}

// main is the entry point for the application
func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	setupLogging()

	cfg := config.Load()

	shutdownTracer := otel.InitTracer(cfg.OtelEndpoint)
	defer shutdownTracer()

	store := newStore(cfg)

	client := fetch.NewClient(fetch.Options{
		StatsURL:        cfg.StatsURL,
		PriceHistoryURL: cfg.PriceHistoryURL,
		Timeout:         cfg.RequestTimeout,
		RetryMax:        cfg.RetryMax,
	})

	svc := service.New(client, store, service.Options{
		TTL:       cfg.CacheTTL,
		Namespace: cfg.CacheNamespace,
	})

	server := NewServer(cfg, svc)
	server.Start()
}

// newStore picks the cache backend: Redis when configured, otherwise the
// in-process store.
func newStore(cfg config.Config) cache.Store {
	if cfg.RedisAddr == "" {
		logrus.Info("Redis not configured, using in-process cache")
		return cache.NewMemoryStore()
	}

	rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logrus.Warnf("Falling back to in-process cache: %v", err)
		return cache.NewMemoryStore()
	}
	return cache.NewRedisStore(rdb)
}

// setupLogging configures the logging for the application
func setupLogging() {
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// Server is the HTTP API in front of the price service.
type Server struct {
	cfg     config.Config
	svc     *service.BitcoinService
	loc     *time.Location
	limiter *rate.Limiter
	metrics *serverMetrics
	server  *http.Server
}

// NewServer creates a new server instance
func NewServer(cfg config.Config, svc *service.BitcoinService) *Server {
	s := &Server{
		cfg:     cfg,
		svc:     svc,
		loc:     cfg.Location(),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		metrics: registerMetrics(),
	}

	logrus.WithFields(logrus.Fields{
		"port":      cfg.Port,
		"cache_ttl": cfg.CacheTTL,
		"stats_url": cfg.StatsURL,
		"time_zone": s.loc.String(),
	}).Info("Server initialized")

	return s
}

// Start begins the HTTP server and sets up graceful shutdown
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/price", s.limited("price", s.handlePrice))
	mux.HandleFunc("/api/history", s.limited("history", s.handleHistory))
	mux.HandleFunc("/api/summary", s.limited("summary", s.handleSummary))
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	mux.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("Server starting on port %s", s.cfg.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}

	logrus.Info("Server stopped")
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/crypticker/internal/display"
	"github.com/yourorg/crypticker/internal/fetch"
	"github.com/yourorg/crypticker/internal/history"
	"github.com/yourorg/crypticker/internal/model"
)

// priceResponse is the /api/price body.
type priceResponse struct {
	MarketPriceUSD float64 `json:"market_price_usd"`
	Label          string  `json:"label"`
	Time           int64   `json:"time"`
}

// historyPoint mirrors the upstream chart convention: x epoch seconds, y price.
type historyPoint struct {
	X int64   `json:"x"`
	Y float64 `json:"y"`
}

// historyResponse is the /api/history body.
type historyResponse struct {
	Values []historyPoint `json:"values"`
}

// deltaResponse is the change-versus-yesterday section of /api/summary.
type deltaResponse struct {
	Value     float64           `json:"value"`
	Label     string            `json:"label"`
	Direction display.Direction `json:"direction"`
	Yesterday historyPoint      `json:"yesterday"`
}

// summaryResponse is the /api/summary body: everything a price widget shows.
type summaryResponse struct {
	Price   priceResponse       `json:"price"`
	Delta   *deltaResponse      `json:"delta"`
	Values  []historyPoint      `json:"values"`
	Chart   history.SeriesStats `json:"chart"`
	FetchMS int64               `json:"fetch_ms"`
}

// limited wraps a handler with method filtering, rate limiting and request
// metrics.
func (s *Server) limited(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !s.limiter.Allow() {
			s.metrics.requestCounter.WithLabelValues(endpoint, "throttled").Inc()
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		start := time.Now()
		next(w, r)
		s.metrics.requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

// handlePrice serves the current market price.
func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.GetStats(r.Context())
	if err != nil {
		s.errorResponse(w, "price", err)
		return
	}

	s.metrics.requestCounter.WithLabelValues("price", "success").Inc()
	writeJSON(w, priceResponse{
		MarketPriceUSD: stats.MarketPriceUSD,
		Label:          display.PriceLabel(stats.MarketPriceUSD),
		Time:           stats.Time.Unix(),
	})
}

// handleHistory serves the 30-day price series.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	points, err := s.svc.GetPriceHistory(r.Context())
	if err != nil {
		s.errorResponse(w, "history", err)
		return
	}

	s.metrics.requestCounter.WithLabelValues("history", "success").Inc()
	writeJSON(w, historyResponse{Values: toHistoryPoints(points)})
}

// handleSummary serves price, delta and chart data in one response. The two
// fetches are independent; stats first, history second, matching the order
// the original widget refreshed in.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	stats, err := s.svc.GetStats(ctx)
	if err != nil {
		s.errorResponse(w, "summary", err)
		return
	}

	points, err := s.svc.GetPriceHistory(ctx)
	if err != nil {
		s.errorResponse(w, "summary", err)
		return
	}

	resp := summaryResponse{
		Price: priceResponse{
			MarketPriceUSD: stats.MarketPriceUSD,
			Label:          display.PriceLabel(stats.MarketPriceUSD),
			Time:           stats.Time.Unix(),
		},
		Values:  toHistoryPoints(points),
		Chart:   history.Summarize(points),
		FetchMS: time.Since(start).Milliseconds(),
	}

	if delta, ok := history.PriceDifference(stats, points, time.Now(), s.loc); ok {
		resp.Delta = &deltaResponse{
			Value:     delta.Value,
			Label:     display.DeltaLabel(delta.Value),
			Direction: display.DeltaDirection(delta.Value),
			Yesterday: historyPoint{X: delta.Yesterday.Time.Unix(), Y: delta.Yesterday.Value},
		}
	}

	s.metrics.requestCounter.WithLabelValues("summary", "success").Inc()
	writeJSON(w, resp)
}

// handleHealth is a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStatus provides detailed service status information
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":    "operational",
		"uptime":    time.Since(startTime).String(),
		"cache_ttl": s.cfg.CacheTTL.String(),
		"time_zone": s.loc.String(),
	})
}

// errorResponse maps service errors to HTTP statuses. Upstream problems,
// transport or shape, are a bad gateway; anything else is internal.
func (s *Server) errorResponse(w http.ResponseWriter, endpoint string, err error) {
	status := http.StatusInternalServerError
	kind := "internal"
	switch {
	case errors.Is(err, fetch.ErrNetwork):
		status = http.StatusBadGateway
		kind = "network"
	case errors.Is(err, fetch.ErrMalformedResponse):
		status = http.StatusBadGateway
		kind = "malformed"
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		kind = "timeout"
	}

	logrus.Warnf("%s request failed: %v", endpoint, err)
	s.metrics.requestCounter.WithLabelValues(endpoint, kind).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": kind})
}

func toHistoryPoints(points []model.PricePoint) []historyPoint {
	out := make([]historyPoint, len(points))
	for i, p := range points {
		out[i] = historyPoint{X: p.Time.Unix(), Y: p.Value}
	}
	return out
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

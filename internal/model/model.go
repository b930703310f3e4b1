// Package model defines the core data structures for the crypticker service.
package model

import (
	"time"
)

// PricePoint is a single sample in the historical price series.
// Once constructed it is never mutated.
type PricePoint struct {
	// Value is the market price in USD at Time
	Value float64 `json:"value"`

	// Time is the moment the sample was taken, as reported upstream
	Time time.Time `json:"time"`
}

// Stats is a snapshot of current Bitcoin network statistics.
type Stats struct {
	// MarketPriceUSD is the current market price in USD
	MarketPriceUSD float64 `json:"market_price_usd"`

	// Time is the snapshot time reported by the API, not the fetch time
	Time time.Time `json:"time"`
}

// PriceDelta is the change of the current price versus yesterday's sample.
type PriceDelta struct {
	// Value is current price minus yesterday's price
	Value float64 `json:"value"`

	// Yesterday is the historical sample the delta was computed against
	Yesterday PricePoint `json:"yesterday"`
}

// IsValid performs basic validation on this price point
func (p PricePoint) IsValid() bool {
	return p.Value >= 0 && !p.Time.IsZero()
}

// IsValid performs basic validation on this snapshot
func (s Stats) IsValid() bool {
	return s.MarketPriceUSD >= 0 && !s.Time.IsZero()
}

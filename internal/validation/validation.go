// Package validation provides invariant checks for decoded price data.
//
// The decoders only guarantee shape (fields present and numeric); this
// package enforces the domain invariants on top: prices are never negative
// and every sample carries a real timestamp. A violation is reported for the
// whole payload, never by dropping individual samples.
package validation

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/crypticker/internal/model"
)

// Options holds configuration for the validation process
type Options struct {
	// MaxPrice is the sanity ceiling for a USD price value
	MaxPrice float64
}

// DefaultOptions returns sensible defaults for validation
func DefaultOptions() Options {
	return Options{
		MaxPrice: 100_000_000, // generous; guards against unit mix-ups upstream
	}
}

// Stats checks a decoded stats snapshot against the domain invariants.
func Stats(s model.Stats, opts Options) error {
	if s.MarketPriceUSD < 0 {
		return fmt.Errorf("negative market price: %f", s.MarketPriceUSD)
	}
	if s.MarketPriceUSD > opts.MaxPrice {
		return fmt.Errorf("implausible market price: %f", s.MarketPriceUSD)
	}
	if s.Time.IsZero() {
		return fmt.Errorf("missing snapshot time")
	}
	return nil
}

// History checks a decoded price series against the domain invariants.
// Ordering is not enforced, only observed: the upstream contract is ascending
// and a violation is logged rather than rejected.
func History(points []model.PricePoint, opts Options) error {
	for i, p := range points {
		if p.Value < 0 {
			return fmt.Errorf("negative price at index %d: %f", i, p.Value)
		}
		if p.Value > opts.MaxPrice {
			return fmt.Errorf("implausible price at index %d: %f", i, p.Value)
		}
		if p.Time.IsZero() {
			return fmt.Errorf("missing timestamp at index %d", i)
		}
		if i > 0 && p.Time.Before(points[i-1].Time) {
			logrus.WithFields(logrus.Fields{
				"index": i,
				"time":  p.Time,
			}).Warn("Price history out of order")
		}
	}
	return nil
}

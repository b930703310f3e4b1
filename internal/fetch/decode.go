package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yourorg/crypticker/internal/model"
)

// ErrMalformedResponse indicates a response body that does not match the
// expected shape or types. Decoding is all-or-nothing: a single bad field
// invalidates the whole response.
var ErrMalformedResponse = errors.New("malformed response")

// DecodeStats decodes the stats endpoint body. The upstream timestamp is
// epoch milliseconds.
func DecodeStats(data []byte) (model.Stats, error) {
	var raw struct {
		MarketPriceUSD *float64 `json:"market_price_usd"`
		Timestamp      *float64 `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.Stats{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.MarketPriceUSD == nil {
		return model.Stats{}, fmt.Errorf("%w: missing market_price_usd", ErrMalformedResponse)
	}
	if raw.Timestamp == nil {
		return model.Stats{}, fmt.Errorf("%w: missing timestamp", ErrMalformedResponse)
	}

	return model.Stats{
		MarketPriceUSD: *raw.MarketPriceUSD,
		Time:           time.Unix(int64(*raw.Timestamp/1000), 0),
	}, nil
}

// DecodePriceHistory decodes the market-price chart body. Unlike the stats
// endpoint, point timestamps are epoch seconds and are used directly.
func DecodePriceHistory(data []byte) ([]model.PricePoint, error) {
	var raw struct {
		Values []struct {
			X *float64 `json:"x"`
			Y *float64 `json:"y"`
		} `json:"values"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Values == nil {
		return nil, fmt.Errorf("%w: missing values", ErrMalformedResponse)
	}

	points := make([]model.PricePoint, 0, len(raw.Values))
	for i, v := range raw.Values {
		if v.X == nil || v.Y == nil {
			return nil, fmt.Errorf("%w: values[%d] missing x or y", ErrMalformedResponse, i)
		}
		points = append(points, model.PricePoint{
			Value: *v.Y,
			Time:  time.Unix(int64(*v.X), 0),
		})
	}

	return points, nil
}

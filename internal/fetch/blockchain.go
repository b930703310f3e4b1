package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourorg/crypticker/internal/model"
)

// ErrNetwork indicates a transport-level failure (timeout, DNS, connectivity,
// non-2xx status). The cache is never touched on this path.
var ErrNetwork = errors.New("network error")

// Client retrieves Bitcoin data from the blockchain.info REST API.
type Client struct {
	statsURL   string
	historyURL string
	httpClient *http.Client
}

// Options configures a Client.
type Options struct {
	StatsURL        string
	PriceHistoryURL string
	Timeout         time.Duration
	RetryMax        int
}

// NewClient creates a new blockchain.info API client
func NewClient(opts Options) *Client {
	return &Client{
		statsURL:   opts.StatsURL,
		historyURL: opts.PriceHistoryURL,
		httpClient: newRetryClient(opts.Timeout, opts.RetryMax),
	}
}

// FetchStats retrieves and decodes the current network statistics.
func (c *Client) FetchStats(ctx context.Context) (model.Stats, error) {
	body, err := c.get(ctx, c.statsURL)
	if err != nil {
		return model.Stats{}, err
	}
	return DecodeStats(body)
}

// FetchPriceHistory retrieves and decodes the 30-day market price series.
// The upstream returns points in ascending time order.
func (c *Client) FetchPriceHistory(ctx context.Context) ([]model.PricePoint, error) {
	body, err := c.get(ctx, c.historyURL)
	if err != nil {
		return nil, err
	}
	return DecodePriceHistory(body)
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logrus.Debugf("Fetching %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrNetwork, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}
	return body, nil
}

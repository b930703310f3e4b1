// Package fetch provides the HTTP client and decoders for the blockchain.info REST API.
package fetch

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// newRetryClient creates an HTTP client with retry capabilities.
// Retries happen inside the transport; callers see at most one error
// per request.
func newRetryClient(timeout time.Duration, retryMax int) *http.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = retryMax
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 3 * time.Second
	c.Logger = nil

	client := c.StandardClient()
	client.Timeout = timeout
	return client
}

// Package bse implements the MarketDataProvider port against the BSE
// India public JSON API. It is a thin wrapper: field mapping only, no
// business logic beyond keyword filtering of announcement headlines.
package bse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/scripdex/scripdex/internal/core/domain"
	"github.com/scripdex/scripdex/internal/core/ports/driven"
)

const (
	// DefaultBaseURL is the BSE India API host.
	DefaultBaseURL = "https://api.bseindia.com/BseIndiaAPI/api"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// requestRate throttles API calls; the BSE endpoint blocks
	// aggressive clients without returning rate-limit headers.
	requestRate = 2.0 // req/sec

	// attachLiveURL serves recent filing attachments.
	attachLiveURL = "https://www.bseindia.com/xml-data/corpfiling/AttachLive/"

	// attachHisURL serves attachments older than about a week.
	attachHisURL = "https://www.bseindia.com/xml-data/corpfiling/AttachHis/"
)

// Ensure Client implements the provider port.
var _ driven.MarketDataProvider = (*Client)(nil)

// Client is a BSE India API client.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// NewClient creates a BSE API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(requestRate), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs a throttled GET against an API path and decodes the
// JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	// The API rejects requests without a browser user agent and referer.
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://www.bseindia.com/")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return domain.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

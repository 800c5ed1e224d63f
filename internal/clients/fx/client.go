// Package fx provides USD to INR exchange rate lookup
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bobmcallan/verdex/internal/common"
	"github.com/bobmcallan/verdex/internal/interfaces"
)

const (
	DefaultPrimaryURL   = "https://api.exchangerate-api.com/v4/latest/USD"
	DefaultSecondaryURL = "https://api.exchangerate.host/latest?base=USD&symbols=INR"
	DefaultFallbackRate = 87.80
	DefaultTimeout      = 10 * time.Second
)

// Client fetches USD/INR from two public rate APIs with a static
// fallback. Successful lookups are cached for an hour.
type Client struct {
	primaryURL   string
	secondaryURL string
	fallbackRate float64
	httpClient   *http.Client
	logger       *common.Logger

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithURLs sets the primary and secondary rate endpoints
func WithURLs(primary, secondary string) ClientOption {
	return func(c *Client) {
		c.primaryURL = primary
		c.secondaryURL = secondary
	}
}

// WithFallbackRate sets the static rate used when all sources fail
func WithFallbackRate(rate float64) ClientOption {
	return func(c *Client) {
		c.fallbackRate = rate
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new exchange rate client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		primaryURL:   DefaultPrimaryURL,
		secondaryURL: DefaultSecondaryURL,
		fallbackRate: DefaultFallbackRate,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// GetUSDINR returns the current USD to INR rate. Never fails: sources
// are tried in order and the configured fallback covers total outage.
func (c *Client) GetUSDINR(ctx context.Context) float64 {
	c.mu.Lock()
	if common.IsFresh(c.fetchedAt, common.FreshnessFXRate) {
		rate := c.rate
		c.mu.Unlock()
		return rate
	}
	c.mu.Unlock()

	for _, source := range []string{c.primaryURL, c.secondaryURL} {
		rate, err := c.fetch(ctx, source)
		if err != nil {
			c.logger.Warn().Err(err).Str("source", source).Msg("FX rate source failed")
			continue
		}

		c.mu.Lock()
		c.rate = rate
		c.fetchedAt = time.Now()
		c.mu.Unlock()

		c.logger.Debug().Float64("rate", rate).Str("source", source).Msg("Fetched USD/INR rate")
		return rate
	}

	c.logger.Warn().Float64("fallback", c.fallbackRate).Msg("All FX sources failed, using fallback rate")
	return c.fallbackRate
}

func (c *Client) fetch(ctx context.Context, source string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	rate, ok := body.Rates["INR"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("INR rate missing from response")
	}
	return rate, nil
}

// Ensure Client implements FXClient
var _ interfaces.FXClient = (*Client)(nil)

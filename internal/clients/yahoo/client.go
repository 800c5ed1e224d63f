// Package yahoo provides a client for the Yahoo Finance API
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/verdex/internal/common"
	"github.com/bobmcallan/verdex/internal/interfaces"
	"github.com/bobmcallan/verdex/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// RetryPolicy controls transient-failure retries on fetch operations.
// Retry n sleeps BaseDelay * 2^(n-1) before running.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy retries twice after the initial attempt.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	retry      RetryPolicy
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryPolicy sets the retry policy for fetch operations
func WithRetryPolicy(policy RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = policy
	}
}

// NewClient creates a new Yahoo Finance client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
		retry:   DefaultRetryPolicy,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; verdex/1.0)")

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// getWithRetry wraps get with exponential backoff on failure
func (c *Client) getWithRetry(ctx context.Context, path string, params url.Values, result interface{}) error {
	var lastErr error
	for attempt := 0; attempt < c.retry.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.retry.BaseDelay * (1 << (attempt - 1))
			c.logger.Warn().
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Str("endpoint", path).
				Msg("Retrying Yahoo API request")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = c.get(ctx, path, params, result)
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// chartResponse represents the chart API response
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetPriceHistory fetches daily bars between from and to, ascending by date
func (c *Client) GetPriceHistory(ctx context.Context, symbol string, from, to time.Time) (models.PriceSeries, error) {
	params := url.Values{}
	params.Set("period1", fmt.Sprintf("%d", from.Unix()))
	params.Set("period2", fmt.Sprintf("%d", to.Unix()))
	params.Set("interval", "1d")
	params.Set("events", "history")

	path := fmt.Sprintf("/v8/finance/chart/%s", url.PathEscape(symbol))

	var resp chartResponse
	if err := c.getWithRetry(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDataUnavailable, err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrDataUnavailable, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: empty chart result for %s", models.ErrDataUnavailable, symbol)
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := make(models.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Holidays and halts come back as nulls; drop those bars
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := models.PriceBar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		series = append(series, bar)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	c.logger.Debug().Str("symbol", symbol).Int("bars", len(series)).Msg("Fetched price history")

	return series, nil
}

// rawValue is Yahoo's {raw, fmt} number wrapper
type rawValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

// quoteSummaryResponse represents the quoteSummary API response
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
				Website  string `json:"website"`
			} `json:"summaryProfile"`
			Price struct {
				LongName  string   `json:"longName"`
				ShortName string   `json:"shortName"`
				MarketCap rawValue `json:"marketCap"`
			} `json:"price"`
			SummaryDetail struct {
				TrailingPE       rawValue `json:"trailingPE"`
				DividendYield    rawValue `json:"dividendYield"`
				Beta             rawValue `json:"beta"`
				FiftyTwoWeekHigh rawValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  rawValue `json:"fiftyTwoWeekLow"`
				AverageVolume    rawValue `json:"averageVolume"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				TrailingEps rawValue `json:"trailingEps"`
				ForwardEps  rawValue `json:"forwardEps"`
				BookValue   rawValue `json:"bookValue"`
			} `json:"defaultKeyStatistics"`
			IncomeStatementHistoryQuarterly struct {
				IncomeStatementHistory []struct {
					EndDate struct {
						Raw int64  `json:"raw"`
						Fmt string `json:"fmt"`
					} `json:"endDate"`
					TotalRevenue    rawValue `json:"totalRevenue"`
					OperatingIncome rawValue `json:"operatingIncome"`
					NetIncome       rawValue `json:"netIncome"`
				} `json:"incomeStatementHistory"`
			} `json:"incomeStatementHistoryQuarterly"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (c *Client) quoteSummary(ctx context.Context, symbol string, modules string) (*quoteSummaryResponse, error) {
	params := url.Values{}
	params.Set("modules", modules)

	path := fmt.Sprintf("/v10/finance/quoteSummary/%s", url.PathEscape(symbol))

	var resp quoteSummaryResponse
	if err := c.getWithRetry(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quoteSummary: empty result for %s", symbol)
	}

	return &resp, nil
}

// GetCompanyAttributes fetches company profile and valuation fields.
// Missing fields stay at their zero values.
func (c *Client) GetCompanyAttributes(ctx context.Context, symbol string) (*models.CompanyAttributes, error) {
	resp, err := c.quoteSummary(ctx, symbol, "summaryProfile,summaryDetail,defaultKeyStatistics,price")
	if err != nil {
		return nil, err
	}

	r := resp.QuoteSummary.Result[0]
	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}

	attrs := &models.CompanyAttributes{
		Symbol:        symbol,
		Name:          name,
		Sector:        r.SummaryProfile.Sector,
		Industry:      r.SummaryProfile.Industry,
		Website:       r.SummaryProfile.Website,
		MarketCap:     r.Price.MarketCap.Raw,
		BookValue:     r.DefaultKeyStatistics.BookValue.Raw,
		TrailingEPS:   r.DefaultKeyStatistics.TrailingEps.Raw,
		ForwardEPS:    r.DefaultKeyStatistics.ForwardEps.Raw,
		TrailingPE:    r.SummaryDetail.TrailingPE.Raw,
		DividendYield: r.SummaryDetail.DividendYield.Raw,
		Beta:          r.SummaryDetail.Beta.Raw,
		High52Week:    r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		Low52Week:     r.SummaryDetail.FiftyTwoWeekLow.Raw,
		AverageVolume: int64(r.SummaryDetail.AverageVolume.Raw),
	}

	return attrs, nil
}

// GetQuarterlyFundamentals fetches recent quarterly income statements,
// most recent first
func (c *Client) GetQuarterlyFundamentals(ctx context.Context, symbol string) (models.QuarterlyFundamentals, error) {
	resp, err := c.quoteSummary(ctx, symbol, "incomeStatementHistoryQuarterly")
	if err != nil {
		return nil, err
	}

	history := resp.QuoteSummary.Result[0].IncomeStatementHistoryQuarterly.IncomeStatementHistory

	periods := make(models.QuarterlyFundamentals, 0, len(history))
	for _, stmt := range history {
		label := stmt.EndDate.Fmt
		if label == "" && stmt.EndDate.Raw > 0 {
			label = time.Unix(stmt.EndDate.Raw, 0).UTC().Format("Jan 2006")
		}
		periods = append(periods, models.QuarterlyPeriod{
			Label:           label,
			Revenue:         stmt.TotalRevenue.Raw,
			OperatingIncome: stmt.OperatingIncome.Raw,
			NetIncome:       stmt.NetIncome.Raw,
		})
	}

	if len(periods) > 4 {
		periods = periods[:4]
	}

	return periods, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)

package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/verdex/internal/models"
)

const chartJSON = `{
	"chart": {
		"result": [{
			"timestamp": [1704067200, 1704153600, 1704240000],
			"indicators": {
				"quote": [{
					"open": [100.0, 101.0, null],
					"high": [102.0, 103.0, null],
					"low": [99.0, 100.0, null],
					"close": [101.0, 102.5, null],
					"volume": [1000000, 1100000, null]
				}]
			}
		}],
		"error": null
	}
}`

func TestGetPriceHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/RELIANCE.NS", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartJSON)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	series, err := client.GetPriceHistory(context.Background(), "RELIANCE.NS",
		time.Now().AddDate(-1, 0, 0), time.Now())
	require.NoError(t, err)

	// Null bar dropped
	require.Len(t, series, 2)
	assert.Equal(t, 101.0, series[0].Close)
	assert.Equal(t, 102.5, series[1].Close)
	assert.Equal(t, int64(1100000), series[1].Volume)
	assert.True(t, series[0].Date.Before(series[1].Date))
}

func TestGetPriceHistoryAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	_, err := client.GetPriceHistory(context.Background(), "BOGUS.NS",
		time.Now().AddDate(-1, 0, 0), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))
}

func TestGetPriceHistoryRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, chartJSON)
	}))
	defer srv.Close()

	client := NewClient(
		WithBaseURL(srv.URL),
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}),
	)

	series, err := client.GetPriceHistory(context.Background(), "TCS.NS",
		time.Now().AddDate(-1, 0, 0), time.Now())
	require.NoError(t, err)
	assert.Len(t, series, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetPriceHistoryRetriesExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(
		WithBaseURL(srv.URL),
		WithRetryPolicy(RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}),
	)

	_, err := client.GetPriceHistory(context.Background(), "TCS.NS",
		time.Now().AddDate(-1, 0, 0), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrDataUnavailable))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

const quoteSummaryJSON = `{
	"quoteSummary": {
		"result": [{
			"summaryProfile": {"sector": "Energy", "industry": "Oil & Gas", "website": "https://example.com"},
			"price": {"longName": "Reliance Industries Limited", "marketCap": {"raw": 2000000000000}},
			"summaryDetail": {
				"trailingPE": {"raw": 24.5},
				"fiftyTwoWeekHigh": {"raw": 3024.9},
				"fiftyTwoWeekLow": {"raw": 2220.3},
				"averageVolume": {"raw": 5500000}
			},
			"defaultKeyStatistics": {
				"trailingEps": {"raw": 102.1},
				"bookValue": {"raw": 1200.0}
			},
			"incomeStatementHistoryQuarterly": {
				"incomeStatementHistory": [
					{"endDate": {"raw": 1719705600, "fmt": "2024-06-30"}, "totalRevenue": {"raw": 100}, "operatingIncome": {"raw": 30}, "netIncome": {"raw": 20}},
					{"endDate": {"raw": 1711843200, "fmt": "2024-03-31"}, "totalRevenue": {"raw": 80}, "operatingIncome": {"raw": 25}, "netIncome": {"raw": 15}}
				]
			}
		}],
		"error": null
	}
}`

func TestGetCompanyAttributes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/finance/quoteSummary/RELIANCE.NS", r.URL.Path)
		fmt.Fprint(w, quoteSummaryJSON)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	attrs, err := client.GetCompanyAttributes(context.Background(), "RELIANCE.NS")
	require.NoError(t, err)

	assert.Equal(t, "Reliance Industries Limited", attrs.Name)
	assert.Equal(t, "Energy", attrs.Sector)
	assert.Equal(t, 24.5, attrs.TrailingPE)
	assert.Equal(t, 3024.9, attrs.High52Week)
	assert.Equal(t, int64(5500000), attrs.AverageVolume)
	// Absent field stays zero
	assert.Equal(t, 0.0, attrs.Beta)
}

func TestGetQuarterlyFundamentals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, quoteSummaryJSON)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	periods, err := client.GetQuarterlyFundamentals(context.Background(), "RELIANCE.NS")
	require.NoError(t, err)

	require.Len(t, periods, 2)
	assert.Equal(t, "2024-06-30", periods[0].Label)
	assert.Equal(t, 100.0, periods[0].Revenue)
	assert.Equal(t, 15.0, periods[1].NetIncome)
}

// Package models defines data structures for Verdex
package models

import (
	"time"
)

// PriceBar represents a single day's price data
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is a daily bar sequence ordered ascending by date.
// It is fetched once per request and treated as read-only thereafter.
type PriceSeries []PriceBar

// MinSeriesLength is the minimum bar count required for analysis.
// Series at or below this length are treated as unavailable data.
const MinSeriesLength = 50

// Closes returns the close prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// Dates returns the bar dates in series order.
func (s PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s))
	for i, bar := range s {
		dates[i] = bar.Date
	}
	return dates
}

// Last returns the most recent bar. The series must be non-empty.
func (s PriceSeries) Last() PriceBar {
	return s[len(s)-1]
}

// CompanyAttributes holds optional company and valuation fields.
// Zero values mean the upstream source did not provide the field;
// consumers must never read zero as a real signal.
type CompanyAttributes struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name,omitempty"`
	Sector         string  `json:"sector,omitempty"`
	Industry       string  `json:"industry,omitempty"`
	Website        string  `json:"website,omitempty"`
	MarketCap      float64 `json:"market_cap,omitempty"`
	BookValue      float64 `json:"book_value,omitempty"`
	TrailingEPS    float64 `json:"trailing_eps,omitempty"`
	ForwardEPS     float64 `json:"forward_eps,omitempty"`
	TrailingPE     float64 `json:"trailing_pe,omitempty"`
	DividendYield  float64 `json:"dividend_yield,omitempty"`
	Beta           float64 `json:"beta,omitempty"`
	High52Week     float64 `json:"high_52_week,omitempty"`
	Low52Week      float64 `json:"low_52_week,omitempty"`
	AverageVolume  int64   `json:"average_volume,omitempty"`
}

// QuarterlyPeriod holds one quarter's income statement lines.
// Missing upstream fields are carried as 0, a known approximation.
type QuarterlyPeriod struct {
	Label           string  `json:"label"` // e.g. "Jun 2025"
	Revenue         float64 `json:"revenue"`
	OperatingIncome float64 `json:"operating_income"`
	NetIncome       float64 `json:"net_income"`
}

// QuarterlyFundamentals holds up to 4 periods, most recent first.
type QuarterlyFundamentals []QuarterlyPeriod

// MarketSnapshot bundles everything fetched for one symbol.
// Snapshots are cached per symbol and reused while fresh.
type MarketSnapshot struct {
	Symbol       string                `json:"symbol"`
	Series       PriceSeries           `json:"series"`
	Attributes   CompanyAttributes     `json:"attributes"`
	Fundamentals QuarterlyFundamentals `json:"fundamentals"`
	FetchedAt    time.Time             `json:"fetched_at"`
}

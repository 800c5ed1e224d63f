// Package interfaces defines service contracts for Verdex
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/verdex/internal/models"
)

// MarketDataClient fetches price history and company data for a symbol
type MarketDataClient interface {
	// GetPriceHistory fetches daily bars between from and to, ascending by date
	GetPriceHistory(ctx context.Context, symbol string, from, to time.Time) (models.PriceSeries, error)

	// GetCompanyAttributes fetches company profile and valuation fields
	GetCompanyAttributes(ctx context.Context, symbol string) (*models.CompanyAttributes, error)

	// GetQuarterlyFundamentals fetches recent quarterly income statements,
	// most recent first
	GetQuarterlyFundamentals(ctx context.Context, symbol string) (models.QuarterlyFundamentals, error)
}

// FXClient provides currency conversion rates
type FXClient interface {
	// GetUSDINR returns the current USD to INR rate. Implementations fall
	// back to a configured static rate when all sources fail.
	GetUSDINR(ctx context.Context) float64
}

package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/verdex/internal/models"
)

func sampleAnalysis() *models.Analysis {
	dates := make([]time.Time, 60)
	rsi := make([]float64, 60)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
		rsi[i] = 40 + float64(i%20)
	}

	a := &models.Analysis{
		Symbol:      "RELIANCE.NS",
		DisplayName: "RELIANCE",
		Attributes: models.CompanyAttributes{
			Symbol:     "RELIANCE.NS",
			Name:       "Reliance Industries Limited",
			Sector:     "Energy",
			Industry:   "Oil & Gas",
			MarketCap:  2e12,
			TrailingPE: 24.5,
		},
		Price: models.PriceAnalysis{
			IndicatorResult: models.IndicatorResult{
				Judgment:  models.JudgmentFavorable,
				Label:     "Strong Uptrend",
				Rationale: "Stock trading above both key moving averages - strong uptrend with sustained bullish momentum",
			},
			CurrentPrice:  2950.5,
			PreviousClose: 2900.0,
			Change:        50.5,
			ChangePct:     1.74,
			High52Week:    3024.9,
			Low52Week:     2220.3,
			MA50:          2800,
			MA200:         2650,
			AvgVolume30D:  5500000,
			CurrentVolume: 6100000,
			VolumeSignal:  "Above average",
		},
		ATH: models.ATHAnalysis{
			IndicatorResult: models.IndicatorResult{Judgment: models.JudgmentNeutral},
			AllTimeHigh:     3024.9,
			CurrentPrice:    2950.5,
			DiscountPct:     2.5,
		},
		Momentum: models.MomentumAnalysis{
			IndicatorResult: models.IndicatorResult{
				Judgment: models.JudgmentNeutral,
				Label:    "Neutral Zone",
			},
			RSI:    52.3,
			Series: rsi,
			Dates:  dates,
		},
		Valuation: models.ValuationAnalysis{
			IndicatorResult: models.IndicatorResult{
				Judgment: models.JudgmentNeutral,
				Label:    "Slightly Expensive",
			},
			TrailingPE: 24.5,
		},
		Fundamentals: models.FundamentalsAnalysis{
			IndicatorResult: models.IndicatorResult{
				Judgment: models.JudgmentFavorable,
				Label:    "Strong Fundamentals",
			},
			Periods: models.QuarterlyFundamentals{
				{Label: "Jun 2025", Revenue: 2.4e11, OperatingIncome: 4.1e10, NetIncome: 1.9e10},
				{Label: "Mar 2025", Revenue: 2.2e11, OperatingIncome: 3.9e10, NetIncome: 1.7e10},
			},
			RevenueGrowthPct: 9.1,
		},
		GeneratedAt: time.Date(2025, 8, 31, 10, 30, 0, 0, time.UTC),
	}
	a.Verdict = models.Verdict{
		Tier:           "ACCUMULATE",
		Strength:       "Moderate Confidence",
		Strategy:       "Suitable for Swing Trading (2-3 months)",
		Confidence:     40,
		FavorableCount: 2,
		TotalSignals:   5,
		Signals: []string{
			"Price Trend: Strong Uptrend with bullish MA alignment",
			"Valuation: Moderate discount available",
			"Momentum: Neutral - balanced buying and selling pressure",
			"Valuation Metric: Neutral P/E ratio",
			"Fundamentals: Strong Fundamentals - strong business metrics",
		},
	}
	return a
}

func TestRenderProducesPDF(t *testing.T) {
	svc := NewService(nil)

	filename, pdf, err := svc.Render(context.Background(), sampleAnalysis())
	require.NoError(t, err)

	assert.Equal(t, "Stock_Analysis_RELIANCE_31082025.pdf", filename)
	require.NotEmpty(t, pdf)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRenderWithoutOptionalData(t *testing.T) {
	a := sampleAnalysis()
	a.Attributes = models.CompanyAttributes{Symbol: a.Symbol}
	a.Valuation = models.ValuationAnalysis{
		IndicatorResult: models.IndicatorResult{
			Judgment: models.JudgmentNeutral,
			Label:    "P/E Ratio not available",
		},
	}
	a.Fundamentals = models.FundamentalsAnalysis{
		IndicatorResult: models.IndicatorResult{
			Judgment: models.JudgmentNeutral,
			Label:    "Insufficient Data",
		},
	}
	a.Momentum.Series = nil
	a.Momentum.Dates = nil

	svc := NewService(nil)

	_, pdf, err := svc.Render(context.Background(), a)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRenderRSIChart(t *testing.T) {
	dates := make([]time.Time, 30)
	rsi := make([]float64, 30)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
		rsi[i] = float64(20 + i*2)
	}

	png, err := RenderRSIChart(dates, rsi)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRenderRSIChartMismatchedInput(t *testing.T) {
	_, err := RenderRSIChart([]time.Time{time.Now()}, []float64{50, 60})
	assert.Error(t, err)
}

func TestRenderFundamentalsChart(t *testing.T) {
	periods := models.QuarterlyFundamentals{
		{Label: "Jun 2025", Revenue: 1e9, OperatingIncome: 2e8, NetIncome: 1e8},
		{Label: "Mar 2025", Revenue: 9e8, OperatingIncome: 1.8e8, NetIncome: 9e7},
	}

	png, err := RenderFundamentalsChart(periods)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestRenderFundamentalsChartEmpty(t *testing.T) {
	_, err := RenderFundamentalsChart(nil)
	assert.Error(t, err)
}

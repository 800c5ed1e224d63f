package analysis

import (
	"fmt"

	"github.com/bobmcallan/verdex/internal/models"
	"github.com/bobmcallan/verdex/internal/signals"
)

const rsiPeriod = 14

// analyzePrice classifies the price trend from moving average alignment
// and gathers the raw price context for the report.
func analyzePrice(series models.PriceSeries) models.PriceAnalysis {
	closes := series.Closes()

	currentPrice := closes[len(closes)-1]
	previousClose := currentPrice
	if len(closes) > 1 {
		previousClose = closes[len(closes)-2]
	}
	change := currentPrice - previousClose
	changePct := signals.PercentChange(currentPrice, previousClose)

	highs := make([]float64, len(series))
	lows := make([]float64, len(series))
	volumes := make([]int64, len(series))
	for i, bar := range series {
		highs[i] = bar.High
		lows[i] = bar.Low
		volumes[i] = bar.Volume
	}

	high52 := signals.AllTimeHigh(highs)
	low52 := signals.Low(lows)

	ma50 := signals.SMA(closes, 50)
	ma200 := ma50
	if len(closes) >= 200 {
		ma200 = signals.SMA(closes, 200)
	}

	distanceFromHigh := 0.0
	if high52 > 0 {
		distanceFromHigh = (high52 - currentPrice) / high52 * 100
	}
	distanceFromLow := 0.0
	if low52 > 0 {
		distanceFromLow = (currentPrice - low52) / low52 * 100
	}

	avgVolume := signals.AverageVolume(volumes, 30)
	currentVolume := series.Last().Volume
	volumeSignal := "Below average"
	if float64(currentVolume) > avgVolume {
		volumeSignal = "Above average"
	}

	var trend string
	var judgment models.Judgment
	switch {
	case currentPrice > ma50 && ma50 > ma200:
		trend = "Strong Uptrend"
		judgment = models.JudgmentFavorable
	case currentPrice > ma50:
		trend = "Uptrend"
		judgment = models.JudgmentFavorable
	case currentPrice > ma200:
		trend = "Neutral"
		judgment = models.JudgmentNeutral
	default:
		trend = "Downtrend"
		judgment = models.JudgmentUnfavorable
	}

	var rationale string
	switch judgment {
	case models.JudgmentFavorable:
		rationale = "Stock trading above both key moving averages - strong uptrend with sustained bullish momentum"
	case models.JudgmentUnfavorable:
		rationale = "Stock below key moving averages - weak downtrend with bearish momentum"
	default:
		rationale = "Stock near moving averages - mixed signals requiring clarity"
	}

	return models.PriceAnalysis{
		IndicatorResult: models.IndicatorResult{
			Value:     currentPrice,
			Judgment:  judgment,
			Label:     trend,
			Rationale: rationale,
		},
		CurrentPrice:     currentPrice,
		PreviousClose:    previousClose,
		Change:           change,
		ChangePct:        changePct,
		High52Week:       high52,
		Low52Week:        low52,
		MA50:             ma50,
		MA200:            ma200,
		DistanceFromHigh: distanceFromHigh,
		DistanceFromLow:  distanceFromLow,
		AvgVolume30D:     avgVolume,
		CurrentVolume:    currentVolume,
		VolumeSignal:     volumeSignal,
	}
}

// analyzeATH measures the discount from the period high, clamped at zero.
func analyzeATH(series models.PriceSeries) models.ATHAnalysis {
	closes := series.Closes()
	allTimeHigh := signals.AllTimeHigh(closes)
	currentPrice := closes[len(closes)-1]

	discount := 0.0
	if allTimeHigh > 0 {
		discount = (allTimeHigh - currentPrice) / allTimeHigh * 100
	}
	if discount < 0 {
		discount = 0
	}

	var judgment models.Judgment
	var label string
	switch {
	case discount < 10:
		judgment = models.JudgmentUnfavorable
		label = "Stock near all-time high - may have limited upside"
	case discount <= 20:
		judgment = models.JudgmentNeutral
		label = "Moderate discount - reasonable valuation"
	case discount <= 40:
		judgment = models.JudgmentFavorable
		label = "Good discount - attractive entry point"
	default:
		judgment = models.JudgmentFavorable
		label = "Excellent discount - potential opportunity"
	}

	return models.ATHAnalysis{
		IndicatorResult: models.IndicatorResult{
			Value:     discount,
			Judgment:  judgment,
			Label:     label,
			Rationale: label,
		},
		AllTimeHigh:  allTimeHigh,
		CurrentPrice: currentPrice,
		DiscountPct:  discount,
	}
}

// analyzeMomentum classifies the 14-period RSI into buy and sell zones.
func analyzeMomentum(series models.PriceSeries) models.MomentumAnalysis {
	closes := series.Closes()
	if len(closes) < rsiPeriod {
		return models.MomentumAnalysis{
			IndicatorResult: models.IndicatorResult{
				Judgment:  models.JudgmentNeutral,
				Label:     "RSI not available",
				Rationale: "Insufficient price history to compute momentum.",
			},
		}
	}

	rsiSeries := signals.RSISeries(closes, rsiPeriod)
	rsi := rsiSeries[len(rsiSeries)-1]

	judgment, label, rationale := classifyMomentum(rsi)

	return models.MomentumAnalysis{
		IndicatorResult: models.IndicatorResult{
			Value:     rsi,
			Judgment:  judgment,
			Label:     label,
			Rationale: rationale,
		},
		RSI:    rsi,
		Series: rsiSeries,
		Dates:  series.Dates(),
	}
}

// classifyMomentum maps an RSI value to its zone.
func classifyMomentum(rsi float64) (models.Judgment, string, string) {
	var judgment models.Judgment
	var label, rationale string
	switch {
	case rsi <= 20:
		judgment = models.JudgmentFavorable
		label = "Extremely Oversold"
		rationale = "RSI below 20 indicates extreme oversold condition - potentially strong recovery signal."
	case rsi <= 30:
		judgment = models.JudgmentFavorable
		label = "Very Oversold - Strong Buy Signal"
		rationale = "RSI below 30 indicates oversold condition - stock likely to recover."
	case rsi <= 45:
		judgment = models.JudgmentFavorable
		label = "Oversold - Buy Signal"
		rationale = "RSI in 30-45 range indicates downward pressure exhaustion - good accumulation zone."
	case rsi <= 55:
		judgment = models.JudgmentNeutral
		label = "Neutral Zone"
		rationale = "RSI 45-55 indicates no extreme momentum - neither overbought nor oversold."
	case rsi <= 70:
		judgment = models.JudgmentUnfavorable
		label = "Overbought - Caution Zone"
		rationale = "RSI above 55 indicates upward momentum exhaustion - potential pullback ahead."
	default:
		judgment = models.JudgmentUnfavorable
		label = "Extremely Overbought - Sell Signal"
		rationale = "RSI above 70 indicates extremely overbought condition with strong probability of reversal."
	}
	return judgment, label, rationale
}

// analyzeValuation classifies the trailing P/E ratio. A missing or
// non-positive ratio is reported as unavailable, never as a signal.
func analyzeValuation(attrs models.CompanyAttributes) models.ValuationAnalysis {
	pe := attrs.TrailingPE

	var judgment models.Judgment
	var label, rationale string
	switch {
	case pe <= 0:
		pe = 0
		judgment = models.JudgmentNeutral
		label = "P/E Ratio not available"
		rationale = "Cannot determine valuation - data not available for this stock currently"
	case pe < 10:
		judgment = models.JudgmentFavorable
		label = "Severely Undervalued"
		rationale = "P/E below 10 indicates exceptional valuation - stock trading significantly below earnings."
	case pe < 15:
		judgment = models.JudgmentFavorable
		label = "Undervalued - Buy"
		rationale = "P/E 10-15 indicates good valuation - stock offers value compared to earnings."
	case pe < 20:
		judgment = models.JudgmentFavorable
		label = "Fair Valuation - Good Value"
		rationale = "P/E 15-20 indicates fair valuation - reasonable price-to-earnings ratio."
	case pe < 30:
		judgment = models.JudgmentNeutral
		label = "Slightly Expensive"
		rationale = "P/E 20-30 indicates moderate premium - normal for growing companies."
	case pe < 40:
		judgment = models.JudgmentUnfavorable
		label = "Expensive - Caution"
		rationale = "P/E above 30 indicates significant premium - limited margin of safety."
	default:
		judgment = models.JudgmentUnfavorable
		label = "Severely Overvalued"
		rationale = "P/E above 40 indicates extreme premium - high risk of correction."
	}

	return models.ValuationAnalysis{
		IndicatorResult: models.IndicatorResult{
			Value:     pe,
			Judgment:  judgment,
			Label:     label,
			Rationale: rationale,
		},
		TrailingPE: pe,
	}
}

// analyzeFundamentals compares the two most recent quarters. Periods
// arrive most recent first.
func analyzeFundamentals(periods models.QuarterlyFundamentals) models.FundamentalsAnalysis {
	if len(periods) < 2 {
		return models.FundamentalsAnalysis{
			IndicatorResult: models.IndicatorResult{
				Judgment:  models.JudgmentNeutral,
				Label:     "Insufficient Data",
				Rationale: "Limited historical quarterly data available.",
			},
			Periods: periods,
		}
	}

	latest, prior := periods[0], periods[1]
	revenueUp := latest.Revenue > prior.Revenue
	netProfitUp := latest.NetIncome > prior.NetIncome

	revenueGrowth := 0.0
	if prior.Revenue != 0 {
		revenueGrowth = (latest.Revenue - prior.Revenue) / abs(prior.Revenue) * 100
	}

	var judgment models.Judgment
	var label, rationale string
	switch {
	case revenueUp && netProfitUp && revenueGrowth > 5:
		judgment = models.JudgmentFavorable
		label = "Strong Fundamentals"
		rationale = fmt.Sprintf("Revenue up %.1f%% and profit growing - company expanding profitably.", revenueGrowth)
	case revenueUp && netProfitUp:
		judgment = models.JudgmentFavorable
		label = "Improving Fundamentals"
		rationale = "Both revenue and net profit increasing - positive business momentum."
	case revenueUp:
		judgment = models.JudgmentNeutral
		label = "Mixed Signals"
		rationale = "Revenue growing but net profit concerns - topline expansion not translating to bottom line."
	default:
		judgment = models.JudgmentUnfavorable
		label = "Declining Fundamentals"
		rationale = "Revenue declining - business facing headwinds."
	}

	return models.FundamentalsAnalysis{
		IndicatorResult: models.IndicatorResult{
			Value:     revenueGrowth,
			Judgment:  judgment,
			Label:     label,
			Rationale: rationale,
		},
		Periods:          periods,
		RevenueGrowthPct: revenueGrowth,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

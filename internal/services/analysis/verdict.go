package analysis

import (
	"fmt"

	"github.com/bobmcallan/verdex/internal/models"
)

// buildVerdict aggregates the five indicator judgments into a tiered
// recommendation. Each favorable signal contributes equally; neutral
// and unfavorable signals count toward the total only.
func buildVerdict(a *models.Analysis) models.Verdict {
	var signals []string
	favorable := 0

	switch a.Price.Judgment {
	case models.JudgmentFavorable:
		signals = append(signals, fmt.Sprintf("Price Trend: %s with bullish MA alignment", a.Price.Label))
		favorable++
	case models.JudgmentUnfavorable:
		signals = append(signals, fmt.Sprintf("Price Trend: %s - bearish momentum", a.Price.Label))
	default:
		signals = append(signals, fmt.Sprintf("Price Trend: %s - neutral positioning", a.Price.Label))
	}

	switch a.ATH.Judgment {
	case models.JudgmentFavorable:
		signals = append(signals, fmt.Sprintf("Valuation: %.1f%% discount from ATH", a.ATH.DiscountPct))
		favorable++
	case models.JudgmentUnfavorable:
		signals = append(signals, "Valuation: Limited upside - stock near highs")
	default:
		signals = append(signals, "Valuation: Moderate discount available")
	}

	switch a.Momentum.Judgment {
	case models.JudgmentFavorable:
		signals = append(signals, fmt.Sprintf("Momentum: %s - oversold condition", a.Momentum.Label))
		favorable++
	case models.JudgmentUnfavorable:
		signals = append(signals, fmt.Sprintf("Momentum: %s - overbought condition", a.Momentum.Label))
	default:
		signals = append(signals, "Momentum: Neutral - balanced buying and selling pressure")
	}

	switch a.Valuation.Judgment {
	case models.JudgmentFavorable:
		signals = append(signals, fmt.Sprintf("Valuation Metric: %s - attractive P/E", a.Valuation.Label))
		favorable++
	case models.JudgmentUnfavorable:
		signals = append(signals, fmt.Sprintf("Valuation Metric: %s - expensive valuation", a.Valuation.Label))
	default:
		signals = append(signals, "Valuation Metric: Neutral P/E ratio")
	}

	switch a.Fundamentals.Judgment {
	case models.JudgmentFavorable:
		signals = append(signals, fmt.Sprintf("Fundamentals: %s - strong business metrics", a.Fundamentals.Label))
		favorable++
	case models.JudgmentUnfavorable:
		signals = append(signals, fmt.Sprintf("Fundamentals: %s - weak business performance", a.Fundamentals.Label))
	default:
		signals = append(signals, "Fundamentals: Mixed or insufficient data")
	}

	total := len(signals)
	confidence := favorable * 100 / total

	var tier, strategy, strength string
	switch {
	case favorable >= 4:
		tier = "STRONG BUY"
		strategy = "Excellent for Long-term Holding"
		strength = "Very High Confidence"
	case favorable == 3:
		tier = "BUY"
		strategy = "Good for Long-term Investment"
		strength = "High Confidence"
	case favorable == 2:
		tier = "ACCUMULATE"
		strategy = "Suitable for Swing Trading (2-3 months)"
		strength = "Moderate Confidence"
	case favorable == 1:
		tier = "HOLD"
		strategy = "Wait for Better Signals"
		strength = "Low Confidence"
	default:
		tier = "AVOID"
		strategy = "Do Not Buy at Current Levels"
		strength = "Avoid Investment"
	}

	return models.Verdict{
		Tier:           tier,
		Strength:       strength,
		Strategy:       strategy,
		Confidence:     confidence,
		FavorableCount: favorable,
		TotalSignals:   total,
		Signals:        signals,
	}
}

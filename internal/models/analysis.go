package models

import "time"

// Judgment is the ternary outcome of a single indicator.
type Judgment string

const (
	JudgmentFavorable   Judgment = "Favorable"
	JudgmentUnfavorable Judgment = "Unfavorable"
	JudgmentNeutral     Judgment = "Neutral"
)

// IndicatorResult is the common shape every indicator produces.
type IndicatorResult struct {
	Value     float64  `json:"value"`
	Judgment  Judgment `json:"judgment"`
	Label     string   `json:"label"`
	Rationale string   `json:"rationale"`
}

// PriceAnalysis covers the price trend indicator plus the raw price
// context rendered in the report.
type PriceAnalysis struct {
	IndicatorResult
	CurrentPrice     float64 `json:"current_price"`
	PreviousClose    float64 `json:"previous_close"`
	Change           float64 `json:"change"`
	ChangePct        float64 `json:"change_pct"`
	High52Week       float64 `json:"high_52_week"`
	Low52Week        float64 `json:"low_52_week"`
	MA50             float64 `json:"ma_50"`
	MA200            float64 `json:"ma_200"`
	DistanceFromHigh float64 `json:"distance_from_high_pct"`
	DistanceFromLow  float64 `json:"distance_from_low_pct"`
	AvgVolume30D     float64 `json:"avg_volume_30d"`
	CurrentVolume    int64   `json:"current_volume"`
	VolumeSignal     string  `json:"volume_signal"`
}

// ATHAnalysis covers the all-time-high discount indicator.
type ATHAnalysis struct {
	IndicatorResult
	AllTimeHigh  float64 `json:"all_time_high"`
	CurrentPrice float64 `json:"current_price"`
	DiscountPct  float64 `json:"discount_pct"`
}

// MomentumAnalysis covers the RSI indicator. Series and Dates carry
// the full RSI curve for charting; RSI is its final point.
type MomentumAnalysis struct {
	IndicatorResult
	RSI    float64     `json:"rsi"`
	Series []float64   `json:"-"`
	Dates  []time.Time `json:"-"`
}

// ValuationAnalysis covers the trailing P/E indicator.
type ValuationAnalysis struct {
	IndicatorResult
	TrailingPE float64 `json:"trailing_pe"`
}

// FundamentalsAnalysis covers the quarterly fundamentals trend.
type FundamentalsAnalysis struct {
	IndicatorResult
	Periods          QuarterlyFundamentals `json:"periods"`
	RevenueGrowthPct float64               `json:"revenue_growth_pct"`
}

// Analysis is the complete per-ticker result: five indicator outcomes
// plus the aggregated verdict.
type Analysis struct {
	Symbol       string               `json:"symbol"`
	DisplayName  string               `json:"display_name"`
	Attributes   CompanyAttributes    `json:"attributes"`
	MarketCapUSD float64              `json:"market_cap_usd,omitempty"`
	Price        PriceAnalysis        `json:"price"`
	ATH          ATHAnalysis          `json:"ath"`
	Momentum     MomentumAnalysis     `json:"momentum"`
	Valuation    ValuationAnalysis    `json:"valuation"`
	Fundamentals FundamentalsAnalysis `json:"fundamentals"`
	Verdict      Verdict              `json:"verdict"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

// Verdict is the weighted aggregate of the five indicator judgments.
type Verdict struct {
	Tier           string   `json:"tier"`
	Strength       string   `json:"strength"`
	Strategy       string   `json:"strategy"`
	Confidence     int      `json:"confidence"`
	FavorableCount int      `json:"favorable_count"`
	TotalSignals   int      `json:"total_signals"`
	Signals        []string `json:"signals"`
}

// AnalysisResult pairs an analysis with the report generated from it.
type AnalysisResult struct {
	Analysis       *Analysis `json:"analysis"`
	ReportFilename string    `json:"report_filename"`
}

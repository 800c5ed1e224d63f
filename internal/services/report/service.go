// Package report renders analysis results into PDF reports
package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bobmcallan/verdex/internal/common"
	"github.com/bobmcallan/verdex/internal/interfaces"
	"github.com/bobmcallan/verdex/internal/models"
)

var disclaimerPoints = []string{
	"This analysis is for educational and informational purposes only, not financial advice.",
	"Stock market investments carry substantial risk; you may lose your entire investment.",
	"Past performance does not guarantee or predict future results.",
	"Do not invest money you cannot afford to lose completely.",
	"Market conditions change rapidly; always verify information from multiple sources.",
	"Diversify your investments to reduce concentration risk.",
	"Consult qualified financial advisors before making investment decisions.",
	"Technical and fundamental analysis are tools, not guarantees of future performance.",
	"Regulatory changes and geopolitical events can significantly impact stock prices.",
	"This report is general analysis; personal circumstances vary.",
}

// Service implements the ReportService interface
type Service struct {
	logger *common.Logger
}

// NewService creates a report service
func NewService(logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{logger: logger}
}

// Render produces the PDF bytes and filename for an analysis. Charts
// are best-effort: a chart that fails to render is logged and skipped,
// the report itself is still produced.
func (s *Service) Render(ctx context.Context, a *models.Analysis) (string, []byte, error) {
	filename := fmt.Sprintf("Stock_Analysis_%s_%s.pdf",
		a.DisplayName, a.GeneratedAt.Format("02012006"))

	rsiChart := s.renderRSIChart(a)
	fundChart := s.renderFundamentalsChart(a)

	pdf := newReportPDF()

	s.writeOverviewPage(pdf, a)
	s.writePricePage(pdf, a)
	s.writeMomentumPage(pdf, a, rsiChart)
	s.writeValuationPage(pdf, a, fundChart)
	s.writeVerdictPage(pdf, a)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, fmt.Errorf("%w: %v", models.ErrRenderFailure, err)
	}

	s.logger.Info().
		Str("filename", filename).
		Int("bytes", buf.Len()).
		Msg("Rendered report")

	return filename, buf.Bytes(), nil
}

func (s *Service) renderRSIChart(a *models.Analysis) []byte {
	if len(a.Momentum.Series) < 2 {
		return nil
	}

	png, err := RenderRSIChart(a.Momentum.Dates, a.Momentum.Series)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", a.Symbol).Msg("RSI chart render failed")
		return nil
	}
	return png
}

func (s *Service) renderFundamentalsChart(a *models.Analysis) []byte {
	if len(a.Fundamentals.Periods) == 0 {
		return nil
	}
	png, err := RenderFundamentalsChart(a.Fundamentals.Periods)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", a.Symbol).Msg("Fundamentals chart render failed")
		return nil
	}
	return png
}

func (s *Service) writeOverviewPage(pdf *reportPDF, a *models.Analysis) {
	pdf.AddPage()
	pdf.mainHeader("STOCK ANALYSIS REPORT", fmt.Sprintf("Ticker: %s", a.DisplayName))

	pdf.sectionHeader("COMPANY OVERVIEW")
	pdf.infoPair("Ticker Symbol", a.DisplayName)
	pdf.infoPair("Company Name", orNA(a.Attributes.Name))
	pdf.infoPair("Sector", orNA(a.Attributes.Sector))
	pdf.infoPair("Industry", orNA(a.Attributes.Industry))
	if a.Attributes.MarketCap > 0 {
		pdf.infoPair("Market Cap", fmt.Sprintf("Rs. %.0f Cr", a.Attributes.MarketCap/1e7))
	} else {
		pdf.infoPair("Market Cap", "N/A")
	}
	if a.MarketCapUSD > 0 {
		pdf.infoPair("Market Cap (USD)", fmt.Sprintf("$%.2f B", a.MarketCapUSD/1e9))
	}
	pdf.sectionSeparator()

	pdf.sectionHeader("KEY METRICS")
	if a.Attributes.BookValue > 0 {
		pdf.infoPair("Book Value/Share", fmt.Sprintf("Rs. %.2f", a.Attributes.BookValue))
	}
	if a.Attributes.TrailingEPS > 0 {
		pdf.infoPair("Trailing EPS", fmt.Sprintf("Rs. %.2f", a.Attributes.TrailingEPS))
	}
	if a.Attributes.ForwardEPS > 0 {
		pdf.infoPair("Forward EPS", fmt.Sprintf("Rs. %.2f", a.Attributes.ForwardEPS))
	}
	if a.Attributes.DividendYield > 0 {
		pdf.infoPair("Dividend Yield", fmt.Sprintf("%.2f%%", a.Attributes.DividendYield*100))
	}
	if a.Attributes.AverageVolume > 0 {
		pdf.infoPair("Avg Volume", fmt.Sprintf("%d", a.Attributes.AverageVolume))
	}
	if a.Attributes.Beta > 0 {
		pdf.infoPair("Beta", fmt.Sprintf("%.2f", a.Attributes.Beta))
	}
	pdf.sectionSeparator()

	pdf.sectionHeader("52-WEEK PERFORMANCE")
	pdf.infoPair("52-Week High", fmt.Sprintf("Rs. %.2f", a.Price.High52Week))
	pdf.infoPair("52-Week Low", fmt.Sprintf("Rs. %.2f", a.Price.Low52Week))
	if a.Price.Low52Week > 0 {
		rangePct := (a.Price.High52Week - a.Price.Low52Week) / a.Price.Low52Week * 100
		pdf.infoPair("Year Range %", fmt.Sprintf("%.2f%%", rangePct))
	}
	pdf.infoPair("Current Price", fmt.Sprintf("Rs. %.2f", a.Price.CurrentPrice))
	pdf.infoPair("From 52W High", fmt.Sprintf("%.2f%%", a.Price.DistanceFromHigh))
	pdf.infoPair("From 52W Low", fmt.Sprintf("%.2f%%", a.Price.DistanceFromLow))
}

func (s *Service) writePricePage(pdf *reportPDF, a *models.Analysis) {
	pdf.AddPage()
	pdf.mainHeader("PRICE ANALYSIS", "")

	pdf.sectionHeader("CURRENT PRICE INFORMATION")
	pdf.infoPair("Current Price", fmt.Sprintf("Rs. %.2f", a.Price.CurrentPrice))

	moveJudgment := models.JudgmentUnfavorable
	moveLabel := fmt.Sprintf("Loss: Rs. %+.2f (%+.2f%%)", a.Price.Change, a.Price.ChangePct)
	moveReason := "Weakness in stock price reflecting bearish market sentiment and selling pressure"
	if a.Price.Change > 0 {
		moveJudgment = models.JudgmentFavorable
		moveLabel = fmt.Sprintf("Gain: Rs. %+.2f (%+.2f%%)", a.Price.Change, a.Price.ChangePct)
		moveReason = "Strong positive movement in recent trading session indicating bullish investor sentiment"
	}
	pdf.coloredBox("Price Movement", moveLabel, moveJudgment, moveReason)
	pdf.sectionSeparator()

	pdf.sectionHeader("PRICE TREND & MOVING AVERAGES")
	pdf.infoPair("50-Day MA", fmt.Sprintf("Rs. %.2f", a.Price.MA50))
	pdf.infoPair("200-Day MA", fmt.Sprintf("Rs. %.2f", a.Price.MA200))
	pdf.coloredBox("Price Trend", a.Price.Label, a.Price.Judgment, a.Price.Rationale)
	pdf.sectionSeparator()

	pdf.sectionHeader("VOLUME ANALYSIS")
	pdf.infoPair("30-Day Avg Volume", fmt.Sprintf("%.0f shares", a.Price.AvgVolume30D))
	pdf.infoPair("Current Volume", fmt.Sprintf("%d shares", a.Price.CurrentVolume))

	volJudgment := models.JudgmentUnfavorable
	volReason := "Lower than average volume suggests weak conviction"
	if a.Price.VolumeSignal == "Above average" {
		volJudgment = models.JudgmentFavorable
		volReason = "Higher than average trading volume confirms strength of price movement"
	}
	pdf.coloredBox("Volume Signal", a.Price.VolumeSignal, volJudgment, volReason)
}

func (s *Service) writeMomentumPage(pdf *reportPDF, a *models.Analysis, rsiChart []byte) {
	pdf.AddPage()
	pdf.mainHeader("RSI ANALYSIS", "")

	pdf.sectionHeader("RELATIVE STRENGTH INDEX (RSI) - 14 PERIOD")
	pdf.infoPair("RSI (14)", fmt.Sprintf("%.2f", a.Momentum.RSI))
	pdf.coloredBox("RSI Signal", a.Momentum.Label, a.Momentum.Judgment, a.Momentum.Rationale)
	pdf.sectionSeparator()

	pdf.embedPNG(rsiChart)
}

func (s *Service) writeValuationPage(pdf *reportPDF, a *models.Analysis, fundChart []byte) {
	pdf.AddPage()
	pdf.mainHeader("VALUATION ANALYSIS", "")

	pdf.sectionHeader("PRICE-TO-EARNINGS (P/E) VALUATION")
	if a.Valuation.TrailingPE > 0 {
		pdf.infoPair("P/E Ratio", fmt.Sprintf("%.2fx", a.Valuation.TrailingPE))
		pdf.coloredBox("Valuation Status", a.Valuation.Label, a.Valuation.Judgment, a.Valuation.Rationale)
	} else {
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(colorLight[0], colorLight[1], colorLight[2])
		pdf.MultiCell(0, 5, "P/E ratio data not available for this stock", "", "L", false)
		pdf.SetTextColor(colorDark[0], colorDark[1], colorDark[2])
	}
	pdf.sectionSeparator()

	pdf.sectionHeader("QUARTERLY FUNDAMENTALS ANALYSIS")
	pdf.coloredBox("Fundamental Health", a.Fundamentals.Label, a.Fundamentals.Judgment, a.Fundamentals.Rationale)
	pdf.sectionSeparator()

	pdf.embedPNG(fundChart)
}

func (s *Service) writeVerdictPage(pdf *reportPDF, a *models.Analysis) {
	pdf.AddPage()
	pdf.mainHeader("INVESTMENT VERDICT", "")

	pdf.verdictBanner(a.Verdict.Tier, tierJudgment(a.Verdict.Tier))
	pdf.sectionSeparator()

	pdf.sectionHeader("RECOMMENDED STRATEGY")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, a.Verdict.Strategy, "", "L", false)
	pdf.sectionSeparator()

	pdf.sectionHeader("CONFIDENCE SCORE ANALYSIS")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Confidence Score: %d%%", a.Verdict.Confidence), "", 1, "L", false, 0, "")
	pdf.confidenceBar(a.Verdict.Confidence)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(colorLight[0], colorLight[1], colorLight[2])
	pdf.MultiCell(0, 5, fmt.Sprintf("Based on %d out of %d positive signals",
		a.Verdict.FavorableCount, a.Verdict.TotalSignals), "", "L", false)
	pdf.SetTextColor(colorDark[0], colorDark[1], colorDark[2])
	pdf.sectionSeparator()

	pdf.sectionHeader("ANALYSIS SIGNALS SUMMARY")
	pdf.SetFont("Arial", "", 9)
	for i, signal := range a.Verdict.Signals {
		pdf.SetX(20)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(6, 6, fmt.Sprintf("%d.", i+1), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(164, 6, signal, "", "L", false)
	}
	pdf.sectionSeparator()

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(255, 235, 59)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "IMPORTANT DISCLAIMER AND CAUTION", "", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(colorDark[0], colorDark[1], colorDark[2])
	for i, point := range disclaimerPoints {
		pdf.SetX(15)
		pdf.MultiCell(0, 4.2, fmt.Sprintf("%d. %s", i+1, point), "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(colorLight[0], colorLight[1], colorLight[2])
	pdf.CellFormat(0, 5, fmt.Sprintf("Report Generated: %s",
		a.GeneratedAt.Format("02-01-2006 15:04:05")), "", 1, "C", false, 0, "")
}

// tierJudgment maps the verdict tier to a banner color.
func tierJudgment(tier string) models.Judgment {
	switch tier {
	case "STRONG BUY", "BUY", "ACCUMULATE":
		return models.JudgmentFavorable
	case "AVOID":
		return models.JudgmentUnfavorable
	default:
		return models.JudgmentNeutral
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)

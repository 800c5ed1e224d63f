// Package analysis runs the stock analysis pipeline
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/verdex/internal/common"
	"github.com/bobmcallan/verdex/internal/interfaces"
	"github.com/bobmcallan/verdex/internal/models"
)

// historyWindow is the price lookback for all indicators.
const historyWindow = 365 * 24 * time.Hour

// Service implements the AnalysisService interface. It fetches market
// data (through the snapshot cache when fresh), computes the indicator
// set, aggregates the verdict, and produces the stored PDF report.
type Service struct {
	market  interfaces.MarketDataClient
	fx      interfaces.FXClient
	cache   interfaces.SnapshotCache
	report  interfaces.ReportService
	reports interfaces.ReportStore
	logger  *common.Logger
}

// NewService creates an analysis service. The cache and fx client may
// be nil; without a cache every request fetches fresh data, without an
// fx client USD figures are omitted.
func NewService(
	market interfaces.MarketDataClient,
	fx interfaces.FXClient,
	cache interfaces.SnapshotCache,
	report interfaces.ReportService,
	reports interfaces.ReportStore,
	logger *common.Logger,
) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		market:  market,
		fx:      fx,
		cache:   cache,
		report:  report,
		reports: reports,
		logger:  logger,
	}
}

// Analyze runs the full pipeline for a ticker.
func (s *Service) Analyze(ctx context.Context, ticker string) (*models.AnalysisResult, error) {
	symbol, err := models.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("symbol", symbol).Msg("Starting analysis")

	snapshot, err := s.getSnapshot(ctx, symbol)
	if err != nil {
		return nil, err
	}

	a := &models.Analysis{
		Symbol:       snapshot.Symbol,
		DisplayName:  models.DisplayTicker(snapshot.Symbol),
		Attributes:   snapshot.Attributes,
		Price:        analyzePrice(snapshot.Series),
		ATH:          analyzeATH(snapshot.Series),
		Momentum:     analyzeMomentum(snapshot.Series),
		Valuation:    analyzeValuation(snapshot.Attributes),
		Fundamentals: analyzeFundamentals(snapshot.Fundamentals),
		GeneratedAt:  time.Now(),
	}
	a.Verdict = buildVerdict(a)

	if s.fx != nil && a.Attributes.MarketCap > 0 {
		if rate := s.fx.GetUSDINR(ctx); rate > 0 {
			a.MarketCapUSD = a.Attributes.MarketCap / rate
		}
	}

	s.logger.Info().
		Str("symbol", a.Symbol).
		Str("verdict", a.Verdict.Tier).
		Int("confidence", a.Verdict.Confidence).
		Msg("Analysis complete")

	filename, pdf, err := s.report.Render(ctx, a)
	if err != nil {
		return nil, err
	}

	if err := s.reports.Save(ctx, filename, pdf); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRenderFailure, err)
	}

	return &models.AnalysisResult{
		Analysis:       a,
		ReportFilename: filename,
	}, nil
}

// getSnapshot returns a fresh cached snapshot or fetches a new one.
func (s *Service) getSnapshot(ctx context.Context, symbol string) (*models.MarketSnapshot, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, symbol); err == nil {
			s.logger.Debug().Str("symbol", symbol).Msg("Using cached snapshot")
			return cached, nil
		}
	}

	snapshot, err := s.fetchSnapshot(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, snapshot); err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache snapshot")
		}
	}

	return snapshot, nil
}

// fetchSnapshot pulls price history, attributes, and fundamentals for
// the symbol, trying the alternate exchange listing when the primary
// returns too little data.
func (s *Service) fetchSnapshot(ctx context.Context, symbol string) (*models.MarketSnapshot, error) {
	to := time.Now()
	from := to.Add(-historyWindow)

	series, err := s.market.GetPriceHistory(ctx, symbol, from, to)
	if err != nil || len(series) <= models.MinSeriesLength {
		alt, ok := models.AlternateExchange(symbol)
		if !ok {
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: only %d bars for %s", models.ErrDataUnavailable, len(series), symbol)
		}

		s.logger.Warn().
			Str("symbol", symbol).
			Str("alternate", alt).
			Int("bars", len(series)).
			Msg("Insufficient data, trying alternate exchange")

		altSeries, altErr := s.market.GetPriceHistory(ctx, alt, from, to)
		if altErr != nil || len(altSeries) <= models.MinSeriesLength {
			if err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: insufficient history for %s", models.ErrDataUnavailable, symbol)
		}
		symbol = alt
		series = altSeries
	}

	snapshot := &models.MarketSnapshot{
		Symbol:    symbol,
		Series:    series,
		FetchedAt: time.Now(),
	}

	// Attributes and fundamentals are best-effort; indicators degrade
	// to neutral when they are missing.
	attrs, err := s.market.GetCompanyAttributes(ctx, symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Company attributes unavailable")
		snapshot.Attributes = models.CompanyAttributes{Symbol: symbol}
	} else {
		snapshot.Attributes = *attrs
	}

	fundamentals, err := s.market.GetQuarterlyFundamentals(ctx, symbol)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Quarterly fundamentals unavailable")
	} else {
		snapshot.Fundamentals = fundamentals
	}

	return snapshot, nil
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)

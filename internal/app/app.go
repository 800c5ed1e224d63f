// Package app wires application components together
package app

import (
	"fmt"
	"time"

	"github.com/bobmcallan/verdex/internal/clients/fx"
	"github.com/bobmcallan/verdex/internal/clients/yahoo"
	"github.com/bobmcallan/verdex/internal/common"
	"github.com/bobmcallan/verdex/internal/interfaces"
	"github.com/bobmcallan/verdex/internal/services/analysis"
	"github.com/bobmcallan/verdex/internal/services/report"
	"github.com/bobmcallan/verdex/internal/storage"
	"github.com/bobmcallan/verdex/internal/storage/marketcache"
)

// App holds all application components.
type App struct {
	Config *common.Config
	Logger *common.Logger

	MarketClient interfaces.MarketDataClient
	FXClient     interfaces.FXClient

	AnalysisService interfaces.AnalysisService
	ReportService   interfaces.ReportService

	ReportStore   interfaces.ReportStore
	SnapshotCache *marketcache.Store

	gcStop chan struct{}
}

// New creates and wires the application.
func New(config *common.Config, logger *common.Logger) (*App, error) {
	if logger == nil {
		logger = common.NewDefaultLogger()
	}

	a := &App{
		Config: config,
		Logger: logger,
		gcStop: make(chan struct{}),
	}

	yahooCfg := config.Clients.Yahoo
	a.MarketClient = yahoo.NewClient(
		yahoo.WithBaseURL(yahooCfg.BaseURL),
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(yahooCfg.RateLimit),
		yahoo.WithTimeout(yahooCfg.GetTimeout()),
		yahoo.WithRetryPolicy(yahoo.RetryPolicy{
			MaxAttempts: yahooCfg.RetryCount,
			BaseDelay:   time.Second,
		}),
	)

	fxCfg := config.Clients.FX
	a.FXClient = fx.NewClient(
		fx.WithURLs(fxCfg.PrimaryURL, fxCfg.SecondaryURL),
		fx.WithFallbackRate(fxCfg.FallbackRate),
		fx.WithLogger(logger),
		fx.WithTimeout(fxCfg.GetTimeout()),
	)

	reportStore, err := storage.NewReportStore(config.Storage.Reports.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create report store: %w", err)
	}
	a.ReportStore = reportStore

	cache, err := marketcache.NewStore(config.Storage.Cache.Path, yahooCfg.GetCacheTTL(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot cache: %w", err)
	}
	a.SnapshotCache = cache

	a.ReportService = report.NewService(logger)
	a.AnalysisService = analysis.NewService(
		a.MarketClient,
		a.FXClient,
		a.SnapshotCache,
		a.ReportService,
		a.ReportStore,
		logger,
	)

	go a.cacheGCLoop()

	return a, nil
}

// cacheGCLoop runs periodic value log GC on the snapshot cache.
func (a *App) cacheGCLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.SnapshotCache.RunGC()
		case <-a.gcStop:
			return
		}
	}
}

// Close releases application resources.
func (a *App) Close() error {
	close(a.gcStop)

	if a.SnapshotCache != nil {
		if err := a.SnapshotCache.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close snapshot cache")
			return err
		}
	}
	return nil
}

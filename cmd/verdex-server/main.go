package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bobmcallan/verdex/internal/app"
	"github.com/bobmcallan/verdex/internal/common"
	"github.com/bobmcallan/verdex/internal/server"
)

func main() {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check VERDEX_CONFIG, then binary dir, then fallback
	configPath := os.Getenv("VERDEX_CONFIG")
	if configPath == "" {
		configPath = filepath.Join(binDir, "verdex.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/verdex.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Resolve relative storage paths to binary directory
	if config.Storage.Reports.Path != "" && !filepath.IsAbs(config.Storage.Reports.Path) {
		config.Storage.Reports.Path = filepath.Join(binDir, config.Storage.Reports.Path)
	}
	if config.Storage.Cache.Path != "" && !filepath.IsAbs(config.Storage.Cache.Path) {
		config.Storage.Cache.Path = filepath.Join(binDir, config.Storage.Cache.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	a, err := app.New(config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(config, logger)

	srv := server.NewServer(a)

	// Channel for HTTP-triggered shutdown (dev mode)
	shutdownChan := make(chan struct{}, 1)
	srv.SetShutdownChannel(shutdownChan)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://localhost:%d", config.Server.Port)).
		Msg("Server ready")

	// Wait for interrupt signal or shutdown request
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info().Msg("Shutdown signal received")
	case <-shutdownChan:
		logger.Info().Msg("Shutdown requested via API")
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	if err := a.Close(); err != nil {
		logger.Warn().Err(err).Msg("Error closing application resources")
	}

	common.PrintShutdownBanner(logger)
}

// getBinaryDir returns the directory containing the running binary.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

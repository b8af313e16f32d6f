// Package app provides the core application initialization and lifecycle
// management.
package app

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ratepulse/loanrates/internal/artifact"
	"github.com/ratepulse/loanrates/internal/config"
	"github.com/ratepulse/loanrates/internal/ledger"
	"github.com/ratepulse/loanrates/internal/pipeline"
	"github.com/ratepulse/loanrates/internal/scrape"
)

// Application holds all application dependencies and manages their
// lifecycle. It is created once at startup and shared across all CLI
// commands. Use Close() to release resources on shutdown.
type Application struct {
	Config     *config.Config
	Logger     *zerolog.Logger
	HTTPClient *http.Client
	Scraper    *scrape.Scraper
	Artifact   *artifact.Store
	Ledger     *ledger.CSV
	Pipeline   *pipeline.Pipeline
	startTime  time.Time
}

// New creates and initializes a new Application with all dependencies:
// logger, HTTP client, scraper, artifact store, ledger and pipeline.
// Initialization is idempotent; calling it again never duplicates log
// sinks, it replaces the configured writer.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		// Human-friendly console output otherwise
		logWriter = zerolog.NewConsoleWriter()
	}
	logger := log.Output(logWriter).With().Timestamp().Logger()
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	logger.Debug().Dur("timeout", cfg.HTTPTimeout).Msg("HTTP client initialized")

	scraper := scrape.New(httpClient, cfg.UserAgent)
	artifactStore := artifact.NewStore(cfg.ArtifactPath)
	ledgerStore := ledger.NewCSV(cfg.LedgerPath)

	pipe := pipeline.New(scraper, artifactStore, ledgerStore, logger)

	appCtx := &Application{
		Config:     cfg,
		Logger:     &logger,
		HTTPClient: httpClient,
		Scraper:    scraper,
		Artifact:   artifactStore,
		Ledger:     ledgerStore,
		Pipeline:   pipe,
		startTime:  time.Now(),
	}

	logger.Debug().
		Str("artifact", cfg.ArtifactPath).
		Str("ledger", cfg.LedgerPath).
		Msg("Application initialized")
	return appCtx, nil
}

// Close releases application resources. Errors during shutdown are logged
// but never block other cleanup steps.
func (a *Application) Close() error {
	if a == nil {
		return nil
	}
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}
	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}

package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jobdeck/jobdeck/internal/adapter"
	"github.com/jobdeck/jobdeck/internal/aggregator"
	"github.com/jobdeck/jobdeck/internal/browser"
	"github.com/jobdeck/jobdeck/internal/cache"
	"github.com/jobdeck/jobdeck/internal/config"
	"github.com/jobdeck/jobdeck/internal/model"
	"github.com/jobdeck/jobdeck/internal/ratelimit"
	"github.com/jobdeck/jobdeck/internal/retry"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobdeck",
	Short: "Aggregate, rank, and score job listings from multiple sources",
	Long: "jobdeck fans a job search out to several heterogeneous sources (REST APIs\n" +
		"and scraped pages), deduplicates and ranks the results, and scores them\n" +
		"against your skills.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBDECK_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it. A missing default file
// is fine: built-in defaults plus environment credentials apply.
// Priority: explicit path arg > JOBDECK_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	// Credentials may live in a .env next to the binary; absence is fine.
	_ = godotenv.Load()

	explicit := path != ""
	if path == "" {
		if env := os.Getenv("JOBDECK_CONFIG"); env != "" {
			path = env
			explicit = true
		} else {
			path = "config.yaml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// buildAggregator wires the four sources, their decorators, and the shared
// cache into one Aggregator.
func buildAggregator(cfg *config.Config, logger *slog.Logger) *aggregator.Aggregator {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	driver := browser.NewChromeDriver()
	scrapeLimiter := ratelimit.NewSourceRateLimiter(cfg.ScrapeMinDelay)

	var sources []model.JobSource

	remotive := retry.NewRetrySource(
		adapter.NewRemotiveAdapter(httpClient),
		cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger,
	)
	sources = append(sources, remotive)

	adzuna := adapter.NewAdzunaAdapter(cfg.Adzuna.AppID, cfg.Adzuna.AppKey, httpClient)
	if !adzuna.Configured() {
		logger.Debug("adzuna credentials not configured, source will be skipped")
	}
	sources = append(sources, retry.NewRetrySource(adzuna, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger))

	sources = append(sources,
		ratelimit.NewRateLimitedSource(adapter.NewWebSearchAdapter(driver, logger), scrapeLimiter),
		ratelimit.NewRateLimitedSource(adapter.NewLegacyBoardAdapter(driver, logger), scrapeLimiter),
	)

	return aggregator.New(
		sources,
		cache.New(cfg.CacheTTL),
		aggregator.Options{APITimeout: cfg.APITimeout, BrowserTimeout: cfg.BrowserTimeout},
		logger,
	)
}

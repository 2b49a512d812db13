package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the jobdeck engine.
type Config struct {
	Adzuna         AdzunaConfig
	CacheTTL       time.Duration
	APITimeout     time.Duration
	BrowserTimeout time.Duration
	DefaultLimit   int
	ScrapeMinDelay time.Duration // politeness gap between browser scrapes of one source
	Retry          RetryConfig
	HistoryPath    string // SQLite search-history file, empty disables history
}

// AdzunaConfig holds the paid search API credentials. Both values must be
// present for the source to be active; absence disables it, it is not an error.
type AdzunaConfig struct {
	AppID  string `yaml:"app_id"`
	AppKey string `yaml:"app_key"`
}

// RetryConfig controls the retry decorator around the REST-API sources.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as strings).
type rawConfig struct {
	Adzuna         AdzunaConfig   `yaml:"adzuna"`
	CacheTTL       string         `yaml:"cache_ttl"`
	APITimeout     string         `yaml:"api_timeout"`
	BrowserTimeout string         `yaml:"browser_timeout"`
	DefaultLimit   int            `yaml:"default_limit"`
	ScrapeMinDelay string         `yaml:"scrape_min_delay"`
	Retry          rawRetryConfig `yaml:"retry"`
	HistoryPath    string         `yaml:"history_path"`
}

type rawRetryConfig struct {
	MaxRetries int    `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Adzuna: AdzunaConfig{
			AppID:  os.Getenv("ADZUNA_APP_ID"),
			AppKey: os.Getenv("ADZUNA_APP_KEY"),
		},
		CacheTTL:       time.Hour,
		APITimeout:     8 * time.Second,
		BrowserTimeout: 15 * time.Second,
		DefaultLimit:   20,
		ScrapeMinDelay: 2 * time.Second,
		Retry:          RetryConfig{MaxRetries: 2, BaseDelay: time.Second},
		HistoryPath:    "jobdeck.db",
	}
}

// Load reads and parses the YAML config file at path, applies defaults for
// absent fields, validates, and returns Config. Environment variables inside
// the file are expanded, so credentials can be referenced as ${ADZUNA_APP_ID}.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()

	if raw.Adzuna.AppID != "" {
		cfg.Adzuna.AppID = raw.Adzuna.AppID
	}
	if raw.Adzuna.AppKey != "" {
		cfg.Adzuna.AppKey = raw.Adzuna.AppKey
	}
	if raw.DefaultLimit > 0 {
		cfg.DefaultLimit = raw.DefaultLimit
	}
	if raw.HistoryPath != "" {
		cfg.HistoryPath = raw.HistoryPath
	}
	if raw.Retry.MaxRetries > 0 {
		cfg.Retry.MaxRetries = raw.Retry.MaxRetries
	}

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"cache_ttl", raw.CacheTTL, &cfg.CacheTTL},
		{"api_timeout", raw.APITimeout, &cfg.APITimeout},
		{"browser_timeout", raw.BrowserTimeout, &cfg.BrowserTimeout},
		{"scrape_min_delay", raw.ScrapeMinDelay, &cfg.ScrapeMinDelay},
		{"retry.base_delay", raw.Retry.BaseDelay, &cfg.Retry.BaseDelay},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return nil, fmt.Errorf("parse %s %q: %w", d.name, d.value, err)
		}
		*d.dst = parsed
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", cfg.CacheTTL)
	}
	if cfg.APITimeout <= 0 || cfg.BrowserTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive, got api=%v browser=%v", cfg.APITimeout, cfg.BrowserTimeout)
	}
	if cfg.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", cfg.DefaultLimit)
	}
	if (cfg.Adzuna.AppID == "") != (cfg.Adzuna.AppKey == "") {
		return fmt.Errorf("adzuna credentials must be set together (app_id and app_key)")
	}
	return nil
}

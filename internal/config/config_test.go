package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.CacheTTL != time.Hour {
		t.Errorf("cache TTL = %v, want 1h", cfg.CacheTTL)
	}
	if cfg.APITimeout != 8*time.Second {
		t.Errorf("api timeout = %v, want 8s", cfg.APITimeout)
	}
	if cfg.BrowserTimeout != 15*time.Second {
		t.Errorf("browser timeout = %v, want 15s", cfg.BrowserTimeout)
	}
	if cfg.DefaultLimit != 20 {
		t.Errorf("default limit = %d, want 20", cfg.DefaultLimit)
	}
	if cfg.Retry.MaxRetries != 2 {
		t.Errorf("max retries = %d, want 2", cfg.Retry.MaxRetries)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
adzuna:
  app_id: my-id
  app_key: my-key
cache_ttl: 30m
api_timeout: 5s
browser_timeout: 20s
default_limit: 40
scrape_min_delay: 3s
retry:
  max_retries: 4
  base_delay: 500ms
history_path: /tmp/custom.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Adzuna.AppID != "my-id" || cfg.Adzuna.AppKey != "my-key" {
		t.Errorf("unexpected adzuna credentials: %+v", cfg.Adzuna)
	}
	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("cache TTL = %v, want 30m", cfg.CacheTTL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("api timeout = %v, want 5s", cfg.APITimeout)
	}
	if cfg.BrowserTimeout != 20*time.Second {
		t.Errorf("browser timeout = %v, want 20s", cfg.BrowserTimeout)
	}
	if cfg.DefaultLimit != 40 {
		t.Errorf("default limit = %d, want 40", cfg.DefaultLimit)
	}
	if cfg.ScrapeMinDelay != 3*time.Second {
		t.Errorf("scrape delay = %v, want 3s", cfg.ScrapeMinDelay)
	}
	if cfg.Retry.MaxRetries != 4 || cfg.Retry.BaseDelay != 500*time.Millisecond {
		t.Errorf("unexpected retry config: %+v", cfg.Retry)
	}
	if cfg.HistoryPath != "/tmp/custom.db" {
		t.Errorf("history path = %q", cfg.HistoryPath)
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	t.Setenv("ADZUNA_APP_ID", "")
	t.Setenv("ADZUNA_APP_KEY", "")

	path := writeConfig(t, "cache_ttl: 10m\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("cache TTL = %v, want 10m", cfg.CacheTTL)
	}
	if cfg.APITimeout != 8*time.Second {
		t.Errorf("api timeout should keep default, got %v", cfg.APITimeout)
	}
	if cfg.DefaultLimit != 20 {
		t.Errorf("default limit should keep default, got %d", cfg.DefaultLimit)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_ADZUNA_ID", "env-id")
	t.Setenv("TEST_ADZUNA_KEY", "env-key")

	path := writeConfig(t, `
adzuna:
  app_id: ${TEST_ADZUNA_ID}
  app_key: ${TEST_ADZUNA_KEY}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Adzuna.AppID != "env-id" || cfg.Adzuna.AppKey != "env-key" {
		t.Errorf("env expansion failed: %+v", cfg.Adzuna)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, "cache_ttl: not-a-duration\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid duration, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "adzuna: [not: valid\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
}

func TestLoad_LonelyCredentialRejected(t *testing.T) {
	t.Setenv("ADZUNA_APP_ID", "")
	t.Setenv("ADZUNA_APP_KEY", "")

	path := writeConfig(t, `
adzuna:
  app_id: only-the-id
`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error when only one credential is set, got nil")
	}
}

func TestValidate_RejectsNonPositiveValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cache ttl", func(c *Config) { c.CacheTTL = 0 }},
		{"negative api timeout", func(c *Config) { c.APITimeout = -time.Second }},
		{"zero browser timeout", func(c *Config) { c.BrowserTimeout = 0 }},
		{"zero limit", func(c *Config) { c.DefaultLimit = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Adzuna = AdzunaConfig{}
			tc.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BACKEND_URL", "FASTAPI_BACKEND_URL", "SEARCH_MAX_RESULTS", "CACHE_TTL", "ENABLE_CACHING", "DEFAULT_SEARCH_STRATEGY"} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("expected localhost:8000, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 60*time.Second {
		t.Errorf("expected 60s timeout, got %v", cfg.Backend.Timeout)
	}
	if cfg.Backend.MaxRetries != 3 || cfg.Backend.RetryDelay != time.Second {
		t.Errorf("unexpected retry policy: %d / %v", cfg.Backend.MaxRetries, cfg.Backend.RetryDelay)
	}
	if cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("expected 10m TTL, got %v", cfg.Cache.TTL)
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_BACKEND", "http://rag.internal:9000")

	content := `
backend:
  base_url: ${TEST_BACKEND}/
  timeout: 30s
  max_retries: 5
  retry_delay: 500ms
cache:
  enabled: true
  backend: sqlite
  ttl: 30m
search:
  default_strategy: hybrid
  auto_detect: true
chat:
  show_sources: false
audit:
  enabled: true
  retention_days: 7
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Backend.BaseURL != "http://rag.internal:9000" {
		t.Errorf("env var not expanded or slash not trimmed: got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.MaxRetries != 5 || cfg.Backend.RetryDelay != 500*time.Millisecond {
		t.Errorf("unexpected retry policy: %d / %v", cfg.Backend.MaxRetries, cfg.Backend.RetryDelay)
	}
	if cfg.Cache.Backend != "sqlite" || cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if !cfg.Search.AutoDetect {
		t.Error("expected auto_detect enabled")
	}
	if cfg.Chat.ShowSources {
		t.Error("expected show_sources disabled")
	}
	if cfg.Chat.MaxSourcesShown != 3 {
		t.Errorf("unset fields keep defaults, got %d", cfg.Chat.MaxSourcesShown)
	}
	if !cfg.Audit.Enabled || cfg.Audit.RetentionDays != 7 {
		t.Errorf("unexpected audit config: %+v", cfg.Audit)
	}
}

func TestLoadEmptyPathUsesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("FASTAPI_BACKEND_URL", "http://legacy:8000")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("ENABLE_CACHING", "false")
	t.Setenv("SEARCH_MAX_RESULTS", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.BaseURL != "http://legacy:8000" {
		t.Errorf("expected legacy url, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Cache.TTL != 2*time.Minute {
		t.Errorf("expected 2m TTL, got %v", cfg.Cache.TTL)
	}
	if cfg.Cache.Enabled {
		t.Error("expected caching disabled")
	}
	if cfg.Search.MaxResults != 5 {
		t.Errorf("expected 5 max results, got %d", cfg.Search.MaxResults)
	}

	t.Setenv("BACKEND_URL", "http://new:8000")
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend.BaseURL != "http://new:8000" {
		t.Errorf("BACKEND_URL should win, got %s", cfg.Backend.BaseURL)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_TTL", "ten minutes")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric CACHE_TTL")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"retries":  func(c *Config) { c.Backend.MaxRetries = 0 },
		"timeout":  func(c *Config) { c.Backend.Timeout = 0 },
		"url":      func(c *Config) { c.Backend.BaseURL = " " },
		"cache":    func(c *Config) { c.Cache.Backend = "redis" },
		"strategy": func(c *Config) { c.Search.DefaultStrategy = "psychic" },
		"rate":     func(c *Config) { c.Backend.RateLimit = -1 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("RAGCHAT_DOTENV_PROBE=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("RAGCHAT_DOTENV_PROBE") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("RAGCHAT_DOTENV_PROBE"); got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err == nil {
		t.Error("expected error for explicitly named missing file")
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pario-ai/ragchat/pkg/models"
)

// Config holds all ragchat configuration.
type Config struct {
	Backend BackendConfig      `yaml:"backend"`
	Cache   CacheConfig        `yaml:"cache"`
	Search  SearchConfig       `yaml:"search"`
	Chat    ChatConfig         `yaml:"chat"`
	Audit   models.AuditConfig `yaml:"audit"`
}

// BackendConfig describes the RAG backend and the client's retry policy.
type BackendConfig struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	HealthTimeout time.Duration `yaml:"health_timeout"`
	MaxRetries    int           `yaml:"max_retries"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
	// RateLimit caps outbound requests per second. Zero disables it.
	RateLimit float64 `yaml:"rate_limit"`
}

// CacheConfig controls the client-side answer cache.
// Backend is "memory" (default) or "sqlite".
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	DBPath  string        `yaml:"db_path"`
}

// SearchConfig controls how questions are sent.
type SearchConfig struct {
	DefaultStrategy string `yaml:"default_strategy"`
	AutoDetect      bool   `yaml:"auto_detect"`
	MaxResults      int    `yaml:"max_results"`
	UseCache        bool   `yaml:"use_cache"`
}

// ChatConfig controls answer rendering.
type ChatConfig struct {
	ShowSources     bool `yaml:"show_sources"`
	Detailed        bool `yaml:"detailed"`
	MaxSourcesShown int  `yaml:"max_sources_shown"`
}

// DefaultBaseURL is used when neither the config file nor the environment
// names a backend.
const DefaultBaseURL = "http://localhost:8000"

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:       DefaultBaseURL,
			Timeout:       60 * time.Second,
			HealthTimeout: 5 * time.Second,
			MaxRetries:    3,
			RetryDelay:    time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			TTL:     10 * time.Minute,
			DBPath:  "ragchat.db",
		},
		Search: SearchConfig{
			DefaultStrategy: string(models.StrategyHybrid),
			MaxResults:      models.DefaultMaxResults,
			UseCache:        true,
		},
		Chat: ChatConfig{
			ShowSources:     true,
			MaxSourcesShown: 3,
		},
		Audit: models.AuditConfig{
			Enabled:       false,
			DBPath:        "ragchat-audit.db",
			RetentionDays: 30,
			MaxAnswerSize: 8192,
		},
	}
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables already set win. A missing default .env is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads a YAML config file, expands environment variables and applies
// environment overrides. An empty path yields the defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies the environment variables the chatbot deployment uses.
// BACKEND_URL takes precedence over the older FASTAPI_BACKEND_URL.
func (c *Config) applyEnv() error {
	if v := os.Getenv("FASTAPI_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("SEARCH_MAX_RESULTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SEARCH_MAX_RESULTS: %w", err)
		}
		c.Search.MaxResults = n
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.Cache.TTL = time.Duration(secs) * time.Second
	}
	if v := os.Getenv("ENABLE_CACHING"); v != "" {
		c.Cache.Enabled = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("DEFAULT_SEARCH_STRATEGY"); v != "" {
		c.Search.DefaultStrategy = v
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	c.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backend.BaseURL), "/")
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	if c.Backend.MaxRetries < 1 {
		return fmt.Errorf("backend.max_retries must be at least 1, got %d", c.Backend.MaxRetries)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %v", c.Backend.Timeout)
	}
	if c.Backend.RetryDelay < 0 {
		return fmt.Errorf("backend.retry_delay must not be negative, got %v", c.Backend.RetryDelay)
	}
	if c.Backend.RateLimit < 0 {
		return fmt.Errorf("backend.rate_limit must not be negative, got %v", c.Backend.RateLimit)
	}
	switch c.Cache.Backend {
	case "", "memory", "sqlite":
	default:
		return fmt.Errorf("cache.backend must be memory or sqlite, got %q", c.Cache.Backend)
	}
	if _, err := models.ParseStrategy(c.Search.DefaultStrategy); err != nil {
		return fmt.Errorf("search.default_strategy: %w", err)
	}
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Chat.MaxSourcesShown < 0 {
		return fmt.Errorf("chat.max_sources_shown must not be negative, got %d", c.Chat.MaxSourcesShown)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth
	APIKey      string `yaml:"api_key"`
	RequireAuth bool   `yaml:"require_auth"`

	// Storage
	DBPath string `yaml:"db_path"`

	// Request limits
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
	MaxListLimit int   `yaml:"max_list_limit"`

	// Views
	TranscriptPreviewLines int `yaml:"transcript_preview_lines"`

	// Parse latency stats window
	StatsWindow time.Duration `yaml:"stats_window"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                   "8090",
		RequireAuth:            true,
		DBPath:                 "data/vidnotes.db",
		MaxBodyBytes:           5 << 20, // 5MB
		MaxListLimit:           200,
		TranscriptPreviewLines: 13,
		StatsWindow:            1 * time.Hour,
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// VIDNOTES_CONFIG (if set), then environment variables.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("VIDNOTES_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("VIDNOTES_API_KEY", cfg.APIKey)
	cfg.RequireAuth = envBool("REQUIRE_AUTH", cfg.RequireAuth)
	cfg.DBPath = envOr("DB_PATH", cfg.DBPath)
	cfg.MaxBodyBytes = envInt64("MAX_BODY_BYTES", cfg.MaxBodyBytes)
	cfg.MaxListLimit = envInt("MAX_LIST_LIMIT", cfg.MaxListLimit)
	cfg.TranscriptPreviewLines = envInt("TRANSCRIPT_PREVIEW_LINES", cfg.TranscriptPreviewLines)
	cfg.StatsWindow = envDuration("STATS_WINDOW", cfg.StatsWindow)

	def := Defaults()
	if cfg.MaxListLimit <= 0 {
		cfg.MaxListLimit = def.MaxListLimit
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = def.StatsWindow
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.RequireAuth && c.APIKey == "" {
		return fmt.Errorf("VIDNOTES_API_KEY is required (set REQUIRE_AUTH=false to disable auth)")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.TranscriptPreviewLines < 0 {
		return fmt.Errorf("TRANSCRIPT_PREVIEW_LINES must not be negative, got %d", c.TranscriptPreviewLines)
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store kinds selectable via Config.Store.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Store     string          `json:"store"`
	Redis     RedisConfig     `json:"redis"`
	Window    WindowConfig    `json:"window"`
	Ingest    IngestConfig    `json:"ingest"`
	RateLimit RateLimitConfig `json:"rateLimit"`
}

// RedisConfig locates the shared Redis instance used when Store is "redis".
type RedisConfig struct {
	Addr      string `json:"addr"`
	Password  string `json:"password"`
	DB        int    `json:"db"`
	KeyPrefix string `json:"keyPrefix"`
}

// WindowConfig bounds the hours parameter of stats queries.
type WindowConfig struct {
	DefaultHours float64 `json:"defaultHours"`
	MinHours     float64 `json:"minHours"`
	MaxHours     float64 `json:"maxHours"`
}

// IngestConfig tunes how incoming events are enriched.
type IngestConfig struct {
	// TrustProxyHeaders enables client-address and generation-timestamp
	// extraction from forwarded headers. Disable when Tally is exposed
	// directly, where such headers are client-controlled.
	TrustProxyHeaders bool `json:"trustProxyHeaders"`
	MaxBodyBytes      int  `json:"maxBodyBytes"`
}

// RateLimitConfig tunes the per-client ingest rate limiter.
type RateLimitConfig struct {
	Enabled bool    `json:"enabled"`
	RPS     float64 `json:"rps"`
	Burst   int     `json:"burst"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Store: StoreMemory,
		Redis: RedisConfig{
			Addr:      "127.0.0.1:6379",
			KeyPrefix: "tally:ledger",
		},
		Window: WindowConfig{
			DefaultHours: 1.0,
			MinHours:     0.1,
			MaxHours:     168.0, // one week
		},
		Ingest: IngestConfig{
			TrustProxyHeaders: true,
			MaxBodyBytes:      64 << 10,
		},
		RateLimit: RateLimitConfig{
			Enabled: false,
			RPS:     50,
			Burst:   100,
		},
	}
}

// Validate rejects configurations the runtime cannot serve.
func (c Config) Validate() error {
	if c.Store != StoreMemory && c.Store != StoreRedis {
		return fmt.Errorf("unknown store %q; use %q or %q", c.Store, StoreMemory, StoreRedis)
	}
	if c.Window.MinHours <= 0 || c.Window.MaxHours < c.Window.MinHours {
		return fmt.Errorf("window bounds must satisfy 0 < min <= max, got [%g, %g]", c.Window.MinHours, c.Window.MaxHours)
	}
	if c.Window.DefaultHours < c.Window.MinHours || c.Window.DefaultHours > c.Window.MaxHours {
		return fmt.Errorf("window default %g outside [%g, %g]", c.Window.DefaultHours, c.Window.MinHours, c.Window.MaxHours)
	}
	return nil
}

// Load reads configuration from a JSON file. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return Config{}, errors.New("yaml config not supported; use JSON")
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

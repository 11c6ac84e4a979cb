package config

import (
	"os"
	"strconv"
)

// FromEnv overlays TALLY_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("TALLY_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("TALLY_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("TALLY_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("TALLY_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = n
		}
	}
	if v := os.Getenv("TALLY_REDIS_KEY_PREFIX"); v != "" {
		cfg.Redis.KeyPrefix = v
	}
	if v := os.Getenv("TALLY_WINDOW_DEFAULT_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Window.DefaultHours = f
		}
	}
	if v := os.Getenv("TALLY_WINDOW_MIN_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Window.MinHours = f
		}
	}
	if v := os.Getenv("TALLY_WINDOW_MAX_HOURS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Window.MaxHours = f
		}
	}
	if v := os.Getenv("TALLY_TRUST_PROXY_HEADERS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Ingest.TrustProxyHeaders = b
		}
	}
	if v := os.Getenv("TALLY_MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Ingest.MaxBodyBytes = n
		}
	}
	if v := os.Getenv("TALLY_RATE_LIMIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RateLimit.Enabled = b
		}
	}
	if v := os.Getenv("TALLY_RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit.RPS = f
		}
	}
	if v := os.Getenv("TALLY_RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.Burst = n
		}
	}
}

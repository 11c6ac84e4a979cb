package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Store != StoreMemory {
		t.Fatalf("default store should be memory")
	}
	if cfg.Window.DefaultHours != 1.0 {
		t.Fatalf("default window hours")
	}
	if cfg.Window.MaxHours != 168.0 {
		t.Fatalf("max window hours")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tally.json")
	data := []byte(`{"store":"redis","redis":{"addr":"10.0.0.5:6379","keyPrefix":"shop:ledger"},"window":{"defaultHours":2,"minHours":0.5,"maxHours":72}}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store != StoreRedis {
		t.Fatalf("expected redis store")
	}
	if cfg.Redis.Addr != "10.0.0.5:6379" {
		t.Fatalf("redis addr")
	}
	if cfg.Window.MaxHours != 72 {
		t.Fatalf("expected 72")
	}
	// Unset fields keep defaults.
	if cfg.Ingest.MaxBodyBytes != 64<<10 {
		t.Fatalf("expected default body limit")
	}
}

func TestLoadRejectsYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tally.yaml")
	if err := os.WriteFile(file, []byte("store: redis"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(file); err == nil {
		t.Fatalf("expected yaml rejection")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("TALLY_STORE", "redis")
	os.Setenv("TALLY_REDIS_ADDR", "redis.internal:6379")
	os.Setenv("TALLY_WINDOW_DEFAULT_HOURS", "4.5")
	os.Setenv("TALLY_RATE_LIMIT_ENABLED", "true")
	t.Cleanup(func() {
		os.Unsetenv("TALLY_STORE")
		os.Unsetenv("TALLY_REDIS_ADDR")
		os.Unsetenv("TALLY_WINDOW_DEFAULT_HOURS")
		os.Unsetenv("TALLY_RATE_LIMIT_ENABLED")
	})
	FromEnv(&cfg)
	if cfg.Store != StoreRedis {
		t.Fatalf("env override store")
	}
	if cfg.Redis.Addr != "redis.internal:6379" {
		t.Fatalf("env override redis addr")
	}
	if cfg.Window.DefaultHours != 4.5 {
		t.Fatalf("env override window hours")
	}
	if !cfg.RateLimit.Enabled {
		t.Fatalf("env override rate limit")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"bad store", func(c *Config) { c.Store = "postgres" }, false},
		{"zero min hours", func(c *Config) { c.Window.MinHours = 0 }, false},
		{"max below min", func(c *Config) { c.Window.MaxHours = 0.05 }, false},
		{"default outside bounds", func(c *Config) { c.Window.DefaultHours = 200 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

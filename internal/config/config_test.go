package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if cfg.Season == "" {
		t.Error("expected a default season")
	}
	if cfg.APITimeout() != 10*time.Second {
		t.Errorf("expected 10s api timeout, got %v", cfg.APITimeout())
	}
	if cfg.CacheTTL() != 10*time.Minute {
		t.Errorf("expected 10m cache ttl, got %v", cfg.CacheTTL())
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DBDriver != "sqlite3" {
		t.Errorf("expected sqlite3 driver, got %q", cfg.DBDriver)
	}
	if cfg.CacheCapacity != 10000 {
		t.Errorf("expected capacity 10000, got %d", cfg.CacheCapacity)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := []byte("season: \"2026-27\"\ndb_driver: postgres\ndb_dsn: \"postgres://localhost/fpl\"\ncache_ttl_seconds: 120\n")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Season != "2026-27" {
		t.Errorf("expected season 2026-27, got %q", cfg.Season)
	}
	if cfg.DBDriver != "postgres" || cfg.DBDSN != "postgres://localhost/fpl" {
		t.Errorf("expected postgres settings, got %q %q", cfg.DBDriver, cfg.DBDSN)
	}
	if cfg.CacheTTL() != 2*time.Minute {
		t.Errorf("expected 2m ttl, got %v", cfg.CacheTTL())
	}
	// Keys absent from the file keep their defaults.
	if cfg.APIBaseURL != Default().APIBaseURL {
		t.Errorf("expected default api base url, got %q", cfg.APIBaseURL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("season: \"2026-27\"\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("FPLSYNC_SEASON", "2027-28")
	t.Setenv("FPLSYNC_API_TIMEOUT_SECONDS", "30")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Season != "2027-28" {
		t.Errorf("expected env to override file, got %q", cfg.Season)
	}
	if cfg.APITimeoutSeconds != 30 {
		t.Errorf("expected env timeout 30, got %d", cfg.APITimeoutSeconds)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty season", mutate: func(c *Config) { c.Season = "" }, wantErr: true},
		{name: "empty base url", mutate: func(c *Config) { c.APIBaseURL = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.APITimeoutSeconds = 0 }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "oracle" }, wantErr: true},
		{name: "empty dsn", mutate: func(c *Config) { c.DBDSN = "" }, wantErr: true},
		{name: "zero capacity", mutate: func(c *Config) { c.CacheCapacity = 0 }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.CacheTTLSeconds = 0 }, wantErr: true},
		{name: "postgres driver ok", mutate: func(c *Config) { c.DBDriver = "postgres" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

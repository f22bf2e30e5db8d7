// Package config loads the pipeline configuration from defaults, an optional
// YAML file, and FPLSYNC_-prefixed environment variables.
package config

import (
	"errors"
	"time"
)

// Config holds every tunable the pipeline wiring needs. Flat keys keep the
// file and env forms identical (FPLSYNC_API_TIMEOUT_SECONDS overrides
// api_timeout_seconds).
type Config struct {
	// Season labels the cache key namespace, e.g. "2025-26".
	Season string `koanf:"season"`

	APIBaseURL        string `koanf:"api_base_url"`
	APITimeoutSeconds int    `koanf:"api_timeout_seconds"`

	DBDriver string `koanf:"db_driver"`
	DBDSN    string `koanf:"db_dsn"`

	CacheCapacity           int  `koanf:"cache_capacity"`
	CacheNumShards          int  `koanf:"cache_num_shards"`
	CacheTTLSeconds         int  `koanf:"cache_ttl_seconds"`
	CacheEvictionPercentage int  `koanf:"cache_eviction_percentage"`
	CacheMissingRecords     bool `koanf:"cache_missing_records"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Season:                  "2025-26",
		APIBaseURL:              "https://fantasy.premierleague.com/api",
		APITimeoutSeconds:       10,
		DBDriver:                "sqlite3",
		DBDSN:                   "file:fplsync.db",
		CacheCapacity:           10000,
		CacheNumShards:          64,
		CacheTTLSeconds:         600,
		CacheEvictionPercentage: 10,
		CacheMissingRecords:     true,
	}
}

// APITimeout returns the fetch timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// CacheTTL returns the cache safety-net TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Validate checks the configuration for values the wiring cannot work with.
func (c *Config) Validate() error {
	if c.Season == "" {
		return errors.New("config: season must not be empty")
	}
	if c.APIBaseURL == "" {
		return errors.New("config: api_base_url must not be empty")
	}
	if c.APITimeoutSeconds <= 0 {
		return errors.New("config: api_timeout_seconds must be positive")
	}
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		return errors.New("config: db_driver must be sqlite3 or postgres")
	}
	if c.DBDSN == "" {
		return errors.New("config: db_dsn must not be empty")
	}
	if c.CacheCapacity <= 0 {
		return errors.New("config: cache_capacity must be positive")
	}
	if c.CacheTTLSeconds <= 0 {
		return errors.New("config: cache_ttl_seconds must be positive")
	}
	return nil
}

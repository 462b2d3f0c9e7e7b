package config

import (
	"fmt"
	"time"
)

// SettingsConfig controls the cached settings snapshot.
type SettingsConfig struct {
	CacheTTL string `toml:"cache_ttl"`
}

// CacheTTLDuration parses and returns the cache TTL as a time.Duration.
func (c *SettingsConfig) CacheTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.CacheTTL)
	return d
}

// Finalize applies defaults and validates the settings configuration.
func (c *SettingsConfig) Finalize() error {
	if c.CacheTTL == "" {
		c.CacheTTL = "60s"
	}
	if _, err := time.ParseDuration(c.CacheTTL); err != nil {
		return fmt.Errorf("invalid cache_ttl: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *SettingsConfig) Merge(overlay *SettingsConfig) {
	if overlay.CacheTTL != "" {
		c.CacheTTL = overlay.CacheTTL
	}
}

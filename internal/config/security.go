package config

import (
	"fmt"
	"os"
)

// EnvAPIKey overrides the administrative API key.
const EnvAPIKey = "API_KEY"

// SecurityConfig contains authentication settings for administrative endpoints.
type SecurityConfig struct {
	APIKey string `toml:"api_key"`
}

// Finalize loads environment overrides and validates the security configuration.
func (c *SecurityConfig) Finalize() error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if c.APIKey == "" {
		return fmt.Errorf("api_key required")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *SecurityConfig) Merge(overlay *SecurityConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
}

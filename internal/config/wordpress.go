package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Environment variable names for WordPress configuration overrides.
const (
	EnvWordPressBaseURL     = "WP_BASE_URL"
	EnvWordPressUser        = "WP_USER"
	EnvWordPressAppPassword = "WP_APP_PASSWORD"
)

// WordPressConfig contains WordPress REST API connection settings.
type WordPressConfig struct {
	BaseURL     string `toml:"base_url"`
	User        string `toml:"user"`
	AppPassword string `toml:"app_password"`
	Timeout     string `toml:"timeout"`
}

// TimeoutDuration parses and returns the request timeout as a time.Duration.
func (c *WordPressConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the
// WordPress configuration.
func (c *WordPressConfig) Finalize() error {
	if c.Timeout == "" {
		c.Timeout = "30s"
	}

	if v := os.Getenv(EnvWordPressBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvWordPressUser); v != "" {
		c.User = v
	}
	if v := os.Getenv(EnvWordPressAppPassword); v != "" {
		c.AppPassword = v
	}

	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *WordPressConfig) Merge(overlay *WordPressConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.User != "" {
		c.User = overlay.User
	}
	if overlay.AppPassword != "" {
		c.AppPassword = overlay.AppPassword
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *WordPressConfig) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if c.User == "" {
		return fmt.Errorf("user required")
	}
	if c.AppPassword == "" {
		return fmt.Errorf("app_password required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return nil
}

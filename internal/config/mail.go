package config

import (
	"fmt"
	"os"
	"time"
)

// Environment variable names for mail configuration overrides.
const (
	EnvMailHost     = "MAIL_HOST"
	EnvMailUser     = "MAIL_USER"
	EnvMailPassword = "MAIL_PASSWORD"
)

// MailConfig contains SMTP transport and notification policy settings.
type MailConfig struct {
	Enabled        bool     `toml:"enabled"`
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	User           string   `toml:"user"`
	Password       string   `toml:"password"`
	From           string   `toml:"from"`
	SendDelay      string   `toml:"send_delay"`
	AllowedDomains []string `toml:"allowed_domains"`
	DefaultRole    string   `toml:"default_role"`
}

// SendDelayDuration parses and returns the inter-send delay as a time.Duration.
func (c *MailConfig) SendDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.SendDelay)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the
// mail configuration. Transport settings are only required when notifications
// are enabled.
func (c *MailConfig) Finalize() error {
	if c.Port == 0 {
		c.Port = 587
	}
	if c.SendDelay == "" {
		c.SendDelay = "500ms"
	}
	if c.DefaultRole == "" {
		c.DefaultRole = "subscriber"
	}

	if v := os.Getenv(EnvMailHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvMailUser); v != "" {
		c.User = v
	}
	if v := os.Getenv(EnvMailPassword); v != "" {
		c.Password = v
	}

	if _, err := time.ParseDuration(c.SendDelay); err != nil {
		return fmt.Errorf("invalid send_delay: %w", err)
	}

	if !c.Enabled {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("host required when mail is enabled")
	}
	if c.From == "" {
		return fmt.Errorf("from required when mail is enabled")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *MailConfig) Merge(overlay *MailConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	if overlay.User != "" {
		c.User = overlay.User
	}
	if overlay.Password != "" {
		c.Password = overlay.Password
	}
	if overlay.From != "" {
		c.From = overlay.From
	}
	if overlay.SendDelay != "" {
		c.SendDelay = overlay.SendDelay
	}
	if len(overlay.AllowedDomains) > 0 {
		c.AllowedDomains = overlay.AllowedDomains
	}
	if overlay.DefaultRole != "" {
		c.DefaultRole = overlay.DefaultRole
	}
}

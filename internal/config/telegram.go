package config

import (
	"fmt"
	"os"
)

// Environment variable names for Telegram configuration overrides.
const (
	EnvTelegramToken         = "TELEGRAM_BOT_TOKEN"
	EnvTelegramWebhookSecret = "TELEGRAM_WEBHOOK_SECRET"
)

// TelegramConfig contains Telegram bot settings.
type TelegramConfig struct {
	Enabled       bool   `toml:"enabled"`
	Token         string `toml:"token"`
	WebhookSecret string `toml:"webhook_secret"`
}

// Finalize loads environment overrides and validates the Telegram
// configuration. Token and secret are only required when the bot is enabled.
func (c *TelegramConfig) Finalize() error {
	if v := os.Getenv(EnvTelegramToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvTelegramWebhookSecret); v != "" {
		c.WebhookSecret = v
	}

	if !c.Enabled {
		return nil
	}
	if c.Token == "" {
		return fmt.Errorf("token required when telegram is enabled")
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("webhook_secret required when telegram is enabled")
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *TelegramConfig) Merge(overlay *TelegramConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.WebhookSecret != "" {
		c.WebhookSecret = overlay.WebhookSecret
	}
}

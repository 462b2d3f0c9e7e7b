// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"fmt"
	"os"

	"docpress/pkg/database"
	"docpress/pkg/logging"
	"docpress/pkg/pagination"

	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"
)

// Config represents the root service configuration.
type Config struct {
	Server     ServerConfig      `toml:"server"`
	Database   database.Config   `toml:"database"`
	Logging    logging.Config    `toml:"logging"`
	CORS       CORSConfig        `toml:"cors"`
	Pagination pagination.Config `toml:"pagination"`
	Security   SecurityConfig    `toml:"security"`
	WordPress  WordPressConfig   `toml:"wordpress"`
	Mail       MailConfig        `toml:"mail"`
	Telegram   TelegramConfig    `toml:"telegram"`
	Converter  ConverterConfig   `toml:"converter"`
	Settings   SettingsConfig    `toml:"settings"`
}

// Load reads and parses the base configuration file and applies any
// environment-specific overlay.
func Load() (*Config, error) {
	cfg, err := load(BaseConfigFile)
	if err != nil {
		return nil, err
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv()); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.CORS.Finalize(); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Security.Finalize(); err != nil {
		return fmt.Errorf("security: %w", err)
	}
	if err := c.WordPress.Finalize(); err != nil {
		return fmt.Errorf("wordpress: %w", err)
	}
	if err := c.Mail.Finalize(); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	if err := c.Telegram.Finalize(); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	if err := c.Converter.Finalize(); err != nil {
		return fmt.Errorf("converter: %w", err)
	}
	if err := c.Settings.Finalize(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Security.Merge(&overlay.Security)
	c.WordPress.Merge(&overlay.WordPress)
	c.Mail.Merge(&overlay.Mail)
	c.Telegram.Merge(&overlay.Telegram)
	c.Converter.Merge(&overlay.Converter)
	c.Settings.Merge(&overlay.Settings)
}

func databaseEnv() *database.Env {
	return &database.Env{
		Host:     "DB_HOST",
		Port:     "DB_PORT",
		Name:     "DB_NAME",
		User:     "DB_USER",
		Password: "DB_PASSWORD",
	}
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}

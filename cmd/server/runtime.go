package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"docpress/internal/config"
	"docpress/internal/convert"
	"docpress/internal/history"
	"docpress/internal/images"
	"docpress/internal/notify"
	"docpress/internal/publish"
	"docpress/internal/settings"
	"docpress/internal/wordpress"
	"docpress/migrations"
	"docpress/pkg/database"
	"docpress/pkg/logging"
)

// Runtime holds the shared infrastructure and domain systems assembled once
// at startup.
type Runtime struct {
	Logger    *slog.Logger
	DB        *sql.DB
	WordPress *wordpress.Client
	History   history.System
	Settings  settings.System
	Pipeline  *publish.Pipeline
}

// NewRuntime opens the database, applies migrations, and wires the domain
// systems together.
func NewRuntime(cfg *config.Config) (*Runtime, error) {
	logger := logging.New(&cfg.Logging)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db, migrations.Files, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	wp := wordpress.New(&cfg.WordPress, logger)
	hist := history.New(db, logger, cfg.Pagination)
	settingsSys := settings.New(db, cfg.Settings.CacheTTLDuration(), logger)

	var notifier publish.Notifier
	if cfg.Mail.Enabled {
		notifier = notify.New(&cfg.Mail, wp, settingsSys, logger)
	}

	optimizer := images.NewOptimizer(
		cfg.Converter.MaxImageWidth,
		cfg.Converter.MaxImageHeight,
		cfg.Converter.ImageQuality,
		logger,
	)
	uploader := publish.NewUploader(wp, optimizer, logger)
	converter := convert.New(logger)

	pipeline := publish.NewPipeline(hist, wp, converter, uploader, notifier, &cfg.Converter, logger)

	return &Runtime{
		Logger:    logger,
		DB:        db,
		WordPress: wp,
		History:   hist,
		Settings:  settingsSys,
		Pipeline:  pipeline,
	}, nil
}

// Close releases runtime resources.
func (r *Runtime) Close() {
	r.DB.Close()
}

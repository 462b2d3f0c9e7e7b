package main

import (
	"net/http"

	"docpress/internal/config"
	"docpress/internal/health"
	"docpress/internal/history"
	"docpress/internal/middleware"
	"docpress/internal/publish"
	"docpress/internal/telegram"
	"docpress/pkg/routes"
)

// buildRouter registers all HTTP routes. Administrative endpoints require
// the API key; health endpoints and the webhook do not.
func buildRouter(runtime *Runtime, cfg *config.Config) (http.Handler, error) {
	r := routes.New()

	apiKey := middleware.APIKey(cfg.Security.APIKey)

	publishHandler := publish.NewHandler(
		runtime.Pipeline,
		runtime.WordPress,
		runtime.History,
		cfg.Converter.MaxUploadSizeBytes(),
		cfg.Mail.Enabled,
		runtime.Logger,
	)
	r.RegisterGroup(routes.Group{
		Middleware: []routes.Middleware{apiKey},
		Children:   []routes.Group{publishHandler.Routes()},
	})

	historyHandler := history.NewHandler(runtime.History, runtime.Logger, cfg.Pagination)
	r.RegisterGroup(routes.Group{
		Middleware: []routes.Middleware{apiKey},
		Children:   []routes.Group{historyHandler.Routes()},
	})

	healthHandler := health.NewHandler(runtime.DB, runtime.WordPress, runtime.Logger)
	r.RegisterGroup(healthHandler.Routes())

	if cfg.Telegram.Enabled {
		telegramHandler, err := telegram.New(
			&cfg.Telegram,
			runtime.Pipeline,
			cfg.Converter.MaxUploadSizeBytes(),
			runtime.Logger,
		)
		if err != nil {
			return nil, err
		}
		r.RegisterGroup(telegramHandler.Routes())
	}

	handler := r.Build()
	handler = middleware.CORS(&cfg.CORS)(handler)
	handler = middleware.TrimSlash()(handler)
	handler = middleware.Logger(runtime.Logger)(handler)

	return handler, nil
}

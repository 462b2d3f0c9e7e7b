// Package health reports service and dependency status.
package health

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"docpress/pkg/handlers"
	"docpress/pkg/routes"
)

// checkTimeout bounds each dependency probe.
const checkTimeout = 5 * time.Second

// Pinger probes the CMS API root.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler provides the health endpoints.
type Handler struct {
	db     *sql.DB
	cms    Pinger
	logger *slog.Logger
}

// NewHandler creates a health handler.
func NewHandler(db *sql.DB, cms Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		db:     db,
		cms:    cms,
		logger: logger.With("handler", "health"),
	}
}

// Routes returns the health endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/health",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Check},
			{Method: "GET", Pattern: "/simple", Handler: h.Simple},
		},
	}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

// Check probes the database and the CMS, returning 503 when either is down.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	checks := map[string]string{
		"database":  "ok",
		"wordpress": "ok",
	}
	healthy := true

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if err := h.cms.Ping(ctx); err != nil {
		checks["wordpress"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	label := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		label = "degraded"
		h.logger.Warn("health check degraded", "checks", checks)
	}

	handlers.RespondJSON(w, status, healthResponse{
		Status:    label,
		Checks:    checks,
		Timestamp: time.Now().UTC(),
	})
}

// Simple reports process liveness without touching dependencies.
func (h *Handler) Simple(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

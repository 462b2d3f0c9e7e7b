package history

import (
	"log/slog"
	"net/http"

	"docpress/pkg/handlers"
	"docpress/pkg/pagination"
	"docpress/pkg/routes"

	"github.com/google/uuid"
)

// Handler provides HTTP endpoints for history lookups.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a history handler with the specified configuration.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "history"),
		pagination: pagination,
	}
}

// Routes returns the history endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/posts/history",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Search},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
		},
	}
}

// Search lists history entries matching the query filters, newest first.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.Search(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, searchResponse(result))
}

// Find returns a single history entry by id.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	entry, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entry)
}

// searchResponse shapes a page result into the documented records/pagination
// envelope.
func searchResponse(result *pagination.PageResult[Entry]) map[string]any {
	return map[string]any{
		"records": result.Data,
		"pagination": map[string]int{
			"total":     result.Total,
			"pages":     result.TotalPages,
			"page":      result.Page,
			"page_size": result.PageSize,
		},
	}
}

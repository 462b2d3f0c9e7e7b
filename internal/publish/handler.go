package publish

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"docpress/internal/history"
	"docpress/internal/notify"
	"docpress/internal/wordpress"
	"docpress/pkg/handlers"
	"docpress/pkg/routes"

	"github.com/google/uuid"
)

// maxTitleLength is the longest accepted post title.
const maxTitleLength = 200

// Remover covers the CMS deletion operations used by the delete flow.
type Remover interface {
	DeletePost(ctx context.Context, id int, force bool) error
	DeleteMedia(ctx context.Context, id int, force bool) error
}

// Handler provides the upload and deletion HTTP endpoints.
type Handler struct {
	pipeline      *Pipeline
	remover       Remover
	history       history.System
	maxUploadSize int64
	notifyEnabled bool
	logger        *slog.Logger
}

// NewHandler creates a publish handler.
func NewHandler(
	pipeline *Pipeline,
	remover Remover,
	hist history.System,
	maxUploadSize int64,
	notifyEnabled bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		pipeline:      pipeline,
		remover:       remover,
		history:       hist,
		maxUploadSize: maxUploadSize,
		notifyEnabled: notifyEnabled,
		logger:        logger.With("handler", "publish"),
	}
}

// Routes returns the publish endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/docx/upload", Handler: h.Upload},
			{Method: "DELETE", Pattern: "/posts/{wp_post_id}", Handler: h.Delete},
		},
	}
}

// uploadResponse is the 201 payload of a successful upload.
type uploadResponse struct {
	HistoryID         uuid.UUID      `json:"history_id"`
	WPPostID          int            `json:"wp_post_id"`
	Title             string         `json:"title"`
	Status            string         `json:"status"`
	Link              string         `json:"link"`
	FeaturedMedia     int            `json:"featured_media"`
	ImagesCount       int            `json:"images_count"`
	FailedImages      int            `json:"failed_images,omitempty"`
	Warnings          []string       `json:"warnings,omitempty"`
	ProcessingTime    string         `json:"processing_time"`
	Notification      *notify.Result `json:"notification,omitempty"`
	NotificationError string         `json:"notification_error,omitempty"`
}

// Upload accepts a multipart document upload and runs the publishing
// pipeline synchronously.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseUpload(w, r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	outcome, err := h.pipeline.Publish(r.Context(), *req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, uploadResponse{
		HistoryID:         outcome.HistoryID,
		WPPostID:          outcome.Post.ID,
		Title:             outcome.Post.Title,
		Status:            outcome.Post.Status,
		Link:              outcome.Post.Link,
		FeaturedMedia:     outcome.Post.FeaturedMedia,
		ImagesCount:       outcome.ImagesCount,
		FailedImages:      outcome.FailedImages,
		Warnings:          outcome.Warnings,
		ProcessingTime:    outcome.Duration.String(),
		Notification:      outcome.Notification,
		NotificationError: outcome.NotificationError,
	})
}

func (h *Handler) parseUpload(w http.ResponseWriter, r *http.Request) (*Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrFileTooLarge
		}
		return nil, ErrFileRequired
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, ErrFileRequired
	}
	defer file.Close()

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, ErrTitleTooLong
	}

	status := r.FormValue("status")
	if status == "" {
		status = "draft"
	}
	if status != "draft" && status != "publish" {
		return nil, ErrInvalidStatus
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".docx" && ext != ".pdf" {
		return nil, ErrUnsupportedType
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrFileTooLarge
		}
		return nil, err
	}

	createdBy := strings.TrimSpace(r.FormValue("created_by"))
	if createdBy == "" {
		createdBy = "api"
	}

	return &Request{
		Title:     title,
		Status:    status,
		FileName:  header.Filename,
		CreatedBy: createdBy,
		Timezone:  strings.TrimSpace(r.FormValue("timezone")),
		Notify:    h.notifyEnabled,
		Data:      data,
	}, nil
}

// mediaDeletion summarizes the optional media cascade of a post deletion.
type mediaDeletion struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// deleteResponse is the 200 payload of a post deletion.
type deleteResponse struct {
	WPDeleted     bool          `json:"wp_deleted"`
	HistoryStatus string        `json:"history_status"`
	MediaDeletion mediaDeletion `json:"media_deletion"`
}

// Delete removes a post from the CMS, optionally cascading to its recorded
// media, and marks the history entry deleted.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	wpPostID, err := strconv.Atoi(r.PathValue("wp_post_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid post id"))
		return
	}
	deleteMedia := r.URL.Query().Get("delete_media") == "true"

	entry, err := h.history.FindByPostID(r.Context(), wpPostID)
	if err != nil && !errors.Is(err, history.ErrNotFound) {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	wpDeleted := true
	if err := h.remover.DeletePost(r.Context(), wpPostID, true); err != nil {
		var apiErr *wordpress.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			wpDeleted = false
		} else {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
	}

	var cascade mediaDeletion
	if deleteMedia && entry != nil {
		for _, mediaID := range entry.MediaIDs {
			if err := h.remover.DeleteMedia(r.Context(), mediaID, true); err != nil {
				h.logger.Warn("media deletion failed", "media_id", mediaID, "error", err)
				cascade.Failed++
				continue
			}
			cascade.Successful++
		}
	}

	historyStatus := "not_found"
	if entry != nil {
		status := history.StatusDeleted
		if err := h.history.Update(r.Context(), entry.ID, history.UpdateCommand{Status: &status}); err != nil {
			h.logger.Error("history deletion update failed", "id", entry.ID, "error", err)
			historyStatus = string(entry.Status)
		} else {
			historyStatus = string(history.StatusDeleted)
		}
	}

	handlers.RespondJSON(w, http.StatusOK, deleteResponse{
		WPDeleted:     wpDeleted,
		HistoryStatus: historyStatus,
		MediaDeletion: cascade,
	})
}

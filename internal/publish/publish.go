// Package publish orchestrates the document-to-post pipeline: convert the
// uploaded document, push extracted images to the media library, rewrite
// placeholder references, create the CMS post, and record every transition
// in the history table.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"docpress/internal/config"
	"docpress/internal/convert"
	"docpress/internal/history"
	"docpress/internal/notify"
	"docpress/internal/rewrite"
	"docpress/internal/scratch"
	"docpress/internal/wordpress"

	"github.com/google/uuid"
)

// CMS covers the WordPress operations the pipeline drives.
type CMS interface {
	MediaStore
	CreatePost(ctx context.Context, req wordpress.CreatePostRequest) (*wordpress.Post, error)
}

// Notifier dispatches post announcements after a successful publish.
type Notifier interface {
	Dispatch(ctx context.Context, note notify.Notification) (*notify.Result, error)
}

// Request describes one document to publish.
type Request struct {
	Title     string
	Status    string
	FileName  string
	CreatedBy string
	Timezone  string
	ChatID    *int64
	MessageID *int
	Notify    bool
	Data      []byte
}

// Outcome is the result of a completed pipeline run.
type Outcome struct {
	HistoryID         uuid.UUID
	Post              *wordpress.Post
	ImagesCount       int
	FailedImages      int
	Warnings          []string
	Notification      *notify.Result
	NotificationError string
	Duration          time.Duration
}

// Pipeline runs the conversion and publishing stages in sequence for one
// request. Image uploads fan out concurrently; everything else is
// straight-line.
type Pipeline struct {
	history   history.System
	cms       CMS
	converter *convert.Converter
	uploader  *Uploader
	notifier  Notifier
	cfg       *config.ConverterConfig
	logger    *slog.Logger
}

// NewPipeline creates a publishing pipeline. The notifier may be nil when
// mail notifications are disabled.
func NewPipeline(
	hist history.System,
	cms CMS,
	converter *convert.Converter,
	uploader *Uploader,
	notifier Notifier,
	cfg *config.ConverterConfig,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		history:   hist,
		cms:       cms,
		converter: converter,
		uploader:  uploader,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger.With("system", "publish"),
	}
}

// Publish runs the full pipeline for one request. The history entry is
// created with status processing before conversion and is guaranteed to
// reach exactly one terminal status: completed on success, failed on any
// stage error. The run detaches from the caller's context: a client
// disconnect must not abort in-flight uploads, the post creation, or the
// terminal history update.
func (p *Pipeline) Publish(ctx context.Context, req Request) (*Outcome, error) {
	ctx = context.WithoutCancel(ctx)
	started := time.Now()

	entry, err := p.history.Create(ctx, history.CreateCommand{
		Title:     req.Title,
		CreatedBy: req.CreatedBy,
		FileName:  req.FileName,
		Timezone:  req.Timezone,
		ChatID:    req.ChatID,
		MessageID: req.MessageID,
	})
	if err != nil {
		return nil, fmt.Errorf("record history: %w", err)
	}

	outcome, err := p.run(ctx, entry.ID, req)
	if err != nil {
		p.fail(ctx, entry.ID, err)
		return nil, err
	}

	outcome.HistoryID = entry.ID
	outcome.Duration = time.Since(started)

	p.logger.Info("document published",
		"history_id", entry.ID,
		"wp_post_id", outcome.Post.ID,
		"images", outcome.ImagesCount,
		"duration", outcome.Duration,
	)
	return outcome, nil
}

func (p *Pipeline) run(ctx context.Context, id uuid.UUID, req Request) (*Outcome, error) {
	if strings.EqualFold(filepath.Ext(req.FileName), ".pdf") {
		return p.runPDF(ctx, id, req)
	}
	return p.runDocx(ctx, id, req)
}

func (p *Pipeline) runDocx(ctx context.Context, id uuid.UUID, req Request) (*Outcome, error) {
	space, err := scratch.New(p.cfg.ScratchDir, p.logger)
	if err != nil {
		return nil, fmt.Errorf("scratch space: %w", err)
	}
	defer space.Cleanup()

	result, err := p.converter.Convert(req.Data, space)
	if err != nil {
		return nil, fmt.Errorf("convert document: %w", err)
	}

	uploads := p.uploader.UploadAll(ctx, result.Images, req.Title)

	mediaIDs := make([]int, 0, len(uploads.Successful))
	mappings := make([]rewrite.Mapping, 0, len(uploads.Successful))
	for _, ref := range uploads.Successful {
		mediaIDs = append(mediaIDs, ref.MediaID)
		mappings = append(mappings, rewrite.Mapping{Placeholder: ref.Placeholder, URL: ref.URL})
	}

	if len(mediaIDs) > 0 {
		if err := p.history.Update(ctx, id, history.UpdateCommand{MediaIDs: mediaIDs}); err != nil {
			return nil, fmt.Errorf("record media ids: %w", err)
		}
	}

	html := rewrite.Apply(result.HTML, mappings)

	postReq := wordpress.CreatePostRequest{
		Title:   req.Title,
		Content: html,
		Status:  req.Status,
	}
	if len(uploads.Successful) > 0 {
		postReq.FeaturedMedia = uploads.Successful[0].MediaID
	}

	post, err := p.cms.CreatePost(ctx, postReq)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := p.complete(ctx, id, post); err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Post:         post,
		ImagesCount:  len(uploads.Successful),
		FailedImages: len(uploads.Failed),
		Warnings:     result.Metadata.Warnings,
	}
	p.dispatchNotification(ctx, req, post, excerpt(html), outcome)
	return outcome, nil
}

func (p *Pipeline) runPDF(ctx context.Context, id uuid.UUID, req Request) (*Outcome, error) {
	pages, err := convert.ValidatePDF(req.Data)
	if err != nil {
		return nil, fmt.Errorf("validate pdf: %w", err)
	}

	media, err := p.cms.UploadMedia(ctx, req.FileName, "application/pdf", req.Data, req.Title)
	if err != nil {
		return nil, fmt.Errorf("upload pdf: %w", err)
	}

	if err := p.history.Update(ctx, id, history.UpdateCommand{MediaIDs: []int{media.ID}}); err != nil {
		return nil, fmt.Errorf("record media ids: %w", err)
	}

	content := pdfContent(req.Title, media.SourceURL, pages)

	post, err := p.cms.CreatePost(ctx, wordpress.CreatePostRequest{
		Title:         req.Title,
		Content:       content,
		Status:        req.Status,
		FeaturedMedia: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := p.complete(ctx, id, post); err != nil {
		return nil, err
	}

	outcome := &Outcome{Post: post, ImagesCount: 0}
	p.dispatchNotification(ctx, req, post, excerpt(content), outcome)
	return outcome, nil
}

// complete records the terminal completed state with the CMS post and its
// raw response payload.
func (p *Pipeline) complete(ctx context.Context, id uuid.UUID, post *wordpress.Post) error {
	response, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("encode post response: %w", err)
	}

	status := history.StatusCompleted
	if err := p.history.Update(ctx, id, history.UpdateCommand{
		Status:     &status,
		WPPostID:   &post.ID,
		WPResponse: response,
	}); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// fail records the terminal failed state. A failing update here is logged
// only; the original pipeline error takes precedence.
func (p *Pipeline) fail(ctx context.Context, id uuid.UUID, cause error) {
	status := history.StatusFailed
	message := cause.Error()

	if err := p.history.Update(ctx, id, history.UpdateCommand{
		Status:       &status,
		ErrorMessage: &message,
	}); err != nil {
		p.logger.Error("history failure update failed", "id", id, "error", err)
	}
}

// dispatchNotification runs the notification step when requested. Transport
// failure fails only this step; the publish has already completed, so the
// error is carried in the outcome instead of aborting the request.
func (p *Pipeline) dispatchNotification(ctx context.Context, req Request, post *wordpress.Post, description string, outcome *Outcome) {
	if !req.Notify || p.notifier == nil {
		return
	}

	result, err := p.notifier.Dispatch(ctx, notify.Notification{
		Title:       post.Title,
		Description: description,
		Link:        post.Link,
	})
	if err != nil {
		p.logger.Error("notification dispatch failed", "wp_post_id", post.ID, "error", err)
		outcome.NotificationError = err.Error()
		return
	}
	outcome.Notification = result
}

func pdfContent(title, url string, pages int) string {
	label := "page"
	if pages != 1 {
		label = "pages"
	}
	return fmt.Sprintf(`<p><a href=%q>%s (PDF, %d %s)</a></p>`, url, html.EscapeString(title), pages, label)
}

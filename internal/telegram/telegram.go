// Package telegram drives the publishing pipeline from bot webhook updates.
// A document message with a supported extension is downloaded and published;
// replies report the post link or a user-facing error.
package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"docpress/internal/config"
	"docpress/internal/publish"
	"docpress/pkg/handlers"
	"docpress/pkg/routes"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// secretHeader carries the shared webhook secret set via setWebhook.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// downloadTimeout bounds one document download from the bot file API.
const downloadTimeout = 60 * time.Second

// Bot covers the bot API operations the webhook needs.
type Bot interface {
	GetFileDirectURL(fileID string) (string, error)
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Handler processes webhook updates.
type Handler struct {
	bot           Bot
	pipeline      *publish.Pipeline
	secret        string
	maxUploadSize int64
	client        *http.Client
	logger        *slog.Logger
}

// New connects to the bot API and creates a webhook handler.
func New(cfg *config.TelegramConfig, pipeline *publish.Pipeline, maxUploadSize int64, logger *slog.Logger) (*Handler, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}

	logger.Info("telegram bot connected", "username", bot.Self.UserName)
	return NewHandler(bot, pipeline, cfg.WebhookSecret, maxUploadSize, logger), nil
}

// NewHandler creates a webhook handler around an existing bot connection.
func NewHandler(bot Bot, pipeline *publish.Pipeline, secret string, maxUploadSize int64, logger *slog.Logger) *Handler {
	return &Handler{
		bot:           bot,
		pipeline:      pipeline,
		secret:        secret,
		maxUploadSize: maxUploadSize,
		client:        &http.Client{Timeout: downloadTimeout},
		logger:        logger.With("handler", "telegram"),
	}
}

// Routes returns the webhook route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/telegram",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/webhook", Handler: h.Webhook},
		},
	}
}

// Webhook validates the shared secret and processes one update. The bot API
// only needs a 200 acknowledgement; user-facing feedback goes through chat
// replies, so processing errors still acknowledge the update.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	presented := r.Header.Get(secretHeader)
	if subtle.ConstantTimeCompare([]byte(presented), []byte(h.secret)) != 1 {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, errors.New("invalid webhook secret"))
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("invalid update payload"))
		return
	}

	if update.Message != nil {
		h.handleMessage(r.Context(), update.Message)
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		h.handleCommand(msg)
		return
	}

	if msg.Document == nil {
		h.reply(msg, "Send a .docx or .pdf document to publish it as a post.")
		return
	}

	if err := h.publishDocument(ctx, msg); err != nil {
		h.logger.Error("webhook publish failed",
			"chat_id", msg.Chat.ID,
			"file", msg.Document.FileName,
			"error", err,
		)
		h.reply(msg, "Publishing failed: "+userMessage(err))
	}
}

func (h *Handler) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		h.reply(msg, "Send me a .docx or .pdf document and I will publish it as a post. "+
			"The caption becomes the post title; without a caption the file name is used.")
	default:
		h.reply(msg, "Unknown command. Send /help for usage.")
	}
}

func (h *Handler) publishDocument(ctx context.Context, msg *tgbotapi.Message) error {
	doc := msg.Document

	ext := strings.ToLower(filepath.Ext(doc.FileName))
	if ext != ".docx" && ext != ".pdf" {
		return publish.ErrUnsupportedType
	}
	if int64(doc.FileSize) > h.maxUploadSize {
		return publish.ErrFileTooLarge
	}

	data, err := h.download(ctx, doc.FileID)
	if err != nil {
		return fmt.Errorf("download document: %w", err)
	}

	title := strings.TrimSpace(msg.Caption)
	if title == "" {
		title = strings.TrimSuffix(doc.FileName, filepath.Ext(doc.FileName))
	}

	chatID := msg.Chat.ID
	messageID := msg.MessageID

	outcome, err := h.pipeline.Publish(ctx, publish.Request{
		Title:     title,
		Status:    "publish",
		FileName:  doc.FileName,
		CreatedBy: senderName(msg),
		ChatID:    &chatID,
		MessageID: &messageID,
		Data:      data,
	})
	if err != nil {
		return err
	}

	h.reply(msg, fmt.Sprintf("Published %q\n%s", outcome.Post.Title, outcome.Post.Link))
	return nil
}

func (h *Handler) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, h.maxUploadSize))
}

func (h *Handler) reply(msg *tgbotapi.Message, text string) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyToMessageID = msg.MessageID

	if _, err := h.bot.Send(reply); err != nil {
		h.logger.Warn("reply send failed", "chat_id", msg.Chat.ID, "error", err)
	}
}

// senderName identifies the message sender for history attribution, preferring
// the username over the profile name.
func senderName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return "telegram"
	}
	if msg.From.UserName != "" {
		return msg.From.UserName
	}
	return strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
}

// userMessage strips wrapping detail from pipeline errors so chat replies
// stay readable.
func userMessage(err error) string {
	switch {
	case errors.Is(err, publish.ErrUnsupportedType):
		return "only .docx and .pdf documents are supported."
	case errors.Is(err, publish.ErrFileTooLarge):
		return "the document exceeds the maximum upload size."
	default:
		return "an internal error occurred, please try again later."
	}
}

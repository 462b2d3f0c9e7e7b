package telegram_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docpress/internal/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
}

func (b *fakeBot) GetFileDirectURL(fileID string) (string, error) {
	return "", errors.New("file api unavailable")
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(bot telegram.Bot) *telegram.Handler {
	return telegram.NewHandler(bot, nil, "webhook-secret", 25<<20, discardLogger())
}

func webhookRequest(secret, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)
	}
	return req
}

func TestWebhook_SecretValidation(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		wantStatus int
	}{
		{"valid secret", "webhook-secret", http.StatusOK},
		{"wrong secret", "intruder", http.StatusUnauthorized},
		{"missing secret", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newHandler(&fakeBot{})

			rec := httptest.NewRecorder()
			handler.Webhook(rec, webhookRequest(tt.secret, `{"update_id": 1}`))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestWebhook_InvalidPayload(t *testing.T) {
	handler := newHandler(&fakeBot{})

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest("webhook-secret", "not json"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWebhook_HelpCommand(t *testing.T) {
	bot := &fakeBot{}
	handler := newHandler(bot)

	body := `{
		"update_id": 1,
		"message": {
			"message_id": 5,
			"chat": {"id": 99},
			"text": "/help",
			"entities": [{"type": "bot_command", "offset": 0, "length": 5}]
		}
	}`

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest("webhook-secret", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("sent %d replies, want 1", len(bot.sent))
	}
	if bot.sent[0].ChatID != 99 {
		t.Errorf("reply chat id = %d, want 99", bot.sent[0].ChatID)
	}
	if !strings.Contains(bot.sent[0].Text, ".docx") {
		t.Errorf("reply text = %q, want usage mentioning .docx", bot.sent[0].Text)
	}
}

func TestWebhook_NonDocumentMessage(t *testing.T) {
	bot := &fakeBot{}
	handler := newHandler(bot)

	body := `{
		"update_id": 2,
		"message": {
			"message_id": 6,
			"chat": {"id": 99},
			"text": "hello"
		}
	}`

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest("webhook-secret", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("sent %d replies, want 1", len(bot.sent))
	}
}

func TestWebhook_UnsupportedDocumentExtension(t *testing.T) {
	bot := &fakeBot{}
	handler := newHandler(bot)

	body := `{
		"update_id": 3,
		"message": {
			"message_id": 7,
			"chat": {"id": 99},
			"document": {"file_id": "abc", "file_name": "notes.txt", "file_size": 10}
		}
	}`

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest("webhook-secret", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(bot.sent) != 1 {
		t.Fatalf("sent %d replies, want 1", len(bot.sent))
	}
	if !strings.Contains(bot.sent[0].Text, "only .docx and .pdf") {
		t.Errorf("reply text = %q, want unsupported type message", bot.sent[0].Text)
	}
}

func TestWebhook_EmptyUpdateAcknowledged(t *testing.T) {
	bot := &fakeBot{}
	handler := newHandler(bot)

	rec := httptest.NewRecorder()
	handler.Webhook(rec, webhookRequest("webhook-secret", `{"update_id": 4}`))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if len(bot.sent) != 0 {
		t.Errorf("sent %d replies, want 0", len(bot.sent))
	}
}

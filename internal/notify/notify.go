// Package notify emails post announcements to a filtered set of WordPress
// users after a successful publish.
package notify

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"docpress/internal/config"
	"docpress/internal/settings"
	"docpress/internal/wordpress"

	"gopkg.in/gomail.v2"
)

//go:embed template.html
var templateSource string

var bodyTemplate = template.Must(template.New("notification").Parse(templateSource))

// Notification describes a published post to announce.
type Notification struct {
	Title       string
	Description string
	Link        string
}

// Result tallies one notification run.
type Result struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Total  int      `json:"total"`
	Errors []string `json:"errors,omitempty"`
}

// UserLister fetches CMS users holding any of the given roles.
type UserLister interface {
	ListUsers(ctx context.Context, roles []string) ([]wordpress.User, error)
}

// Dispatcher renders and sends notification emails sequentially, with a
// small delay between sends to avoid provider throttling.
type Dispatcher struct {
	cfg      *config.MailConfig
	users    UserLister
	settings settings.System
	logger   *slog.Logger
}

// New creates a notification dispatcher.
func New(cfg *config.MailConfig, users UserLister, settings settings.System, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		users:    users,
		settings: settings,
		logger:   logger.With("system", "notify"),
	}
}

// Dispatch emails the notification to every eligible recipient. Individual
// send failures are tallied, never returned as errors; only total inability
// to resolve recipients or reach the mail transport fails the call.
func (d *Dispatcher) Dispatch(ctx context.Context, note Notification) (*Result, error) {
	snapshot, err := d.settings.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("notification settings: %w", err)
	}

	role := snapshot.NotificationRole
	if role == "" {
		role = d.cfg.DefaultRole
	}

	users, err := d.users.ListUsers(ctx, rolesFor(role))
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}

	recipients := filterRecipients(users, d.cfg.AllowedDomains)
	if len(recipients) == 0 {
		d.logger.Info("no eligible notification recipients", "role", role)
		return &Result{}, nil
	}

	body, err := d.render(note, snapshot)
	if err != nil {
		return nil, fmt.Errorf("render notification: %w", err)
	}

	dialer := gomail.NewDialer(d.cfg.Host, d.cfg.Port, d.cfg.User, d.cfg.Password)
	sender, err := dialer.Dial()
	if err != nil {
		return nil, fmt.Errorf("mail transport: %w", err)
	}
	defer sender.Close()

	result := &Result{Total: len(recipients)}
	delay := d.cfg.SendDelayDuration()

	for i, recipient := range recipients {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				result.Failed += len(recipients) - i
				result.Errors = append(result.Errors, ctx.Err().Error())
				return result, nil
			case <-time.After(delay):
			}
		}

		msg := gomail.NewMessage()
		msg.SetHeader("From", d.cfg.From)
		msg.SetHeader("To", recipient.Email)
		msg.SetHeader("Subject", note.Title)
		msg.SetBody("text/html", body)

		if err := gomail.Send(sender, msg); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", recipient.Email, err))
			d.logger.Warn("notification send failed", "to", recipient.Email, "error", err)
			continue
		}
		result.Sent++
	}

	d.logger.Info("notification dispatched",
		"title", note.Title,
		"sent", result.Sent,
		"failed", result.Failed,
	)
	return result, nil
}

func (d *Dispatcher) render(note Notification, snapshot *settings.Snapshot) (string, error) {
	siteName := snapshot.SiteName
	if siteName == "" {
		siteName = "docpress"
	}

	data := struct {
		SiteName    string
		LogoURL     string
		Title       string
		Description string
		Link        string
		Timestamp   string
	}{
		SiteName:    siteName,
		LogoURL:     snapshot.LogoURL,
		Title:       note.Title,
		Description: note.Description,
		Link:        note.Link,
		Timestamp:   time.Now().UTC().Format("2006-01-02 15:04 MST"),
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

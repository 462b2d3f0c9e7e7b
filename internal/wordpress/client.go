// Package wordpress is a typed client for the WordPress REST API covering
// the posts, media, and users endpoints this service consumes.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"docpress/internal/config"
)

const apiPrefix = "/wp-json/wp/v2"

// Client issues authenticated requests against one WordPress site.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL  string
	user     string
	password string
	http     *http.Client
	logger   *slog.Logger
}

// New creates a WordPress client from configuration.
func New(cfg *config.WordPressConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		user:     cfg.User,
		password: cfg.AppPassword,
		http:     &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:   logger.With("system", "wordpress"),
	}
}

// Ping verifies the REST API root responds.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/wp-json/", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}
	return nil
}

// doJSON sends a JSON request and decodes a JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

// do executes a prepared request with authentication and maps non-2xx
// responses to APIError.
func (c *Client) do(req *http.Request, out any) error {
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}

		var wire wireError
		if err := json.Unmarshal(raw, &wire); err == nil {
			apiErr.Code = wire.Code
			apiErr.Message = wire.Message
		}

		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

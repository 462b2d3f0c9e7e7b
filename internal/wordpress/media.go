package wordpress

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// UploadMedia uploads a file to the media library and returns its normalized
// representation. The title and alt text are applied in a follow-up update;
// a failure there is logged but does not fail the upload.
func (c *Client) UploadMedia(ctx context.Context, filename, contentType string, data []byte, altText string) (*Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+"/media", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	var wire wireMedia
	if err := c.do(req, &wire); err != nil {
		return nil, err
	}
	media := wire.normalize()

	if altText != "" {
		patch := map[string]string{"title": altText, "alt_text": altText}
		if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/media/%d", media.ID), patch, nil); err != nil {
			c.logger.Warn("media metadata update failed", "id", media.ID, "error", err)
		}
	}

	c.logger.Info("media uploaded", "id", media.ID, "file", filename, "url", media.SourceURL)
	return media, nil
}

// DeleteMedia deletes a media item. Media cannot be trashed, so WordPress
// requires force for permanent removal.
func (c *Client) DeleteMedia(ctx context.Context, id int, force bool) error {
	path := fmt.Sprintf("/media/%d?force=%t", id, force)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}

	c.logger.Info("media deleted", "id", id, "force", force)
	return nil
}

package wordpress

import (
	"context"
	"fmt"
	"net/http"
)

// CreatePost creates a post and returns its normalized representation.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	var wire wirePost
	if err := c.doJSON(ctx, http.MethodPost, "/posts", req, &wire); err != nil {
		return nil, err
	}

	post := wire.normalize()
	c.logger.Info("post created", "id", post.ID, "status", post.Status, "link", post.Link)
	return post, nil
}

// DeletePost deletes a post. With force false the post is trashed instead of
// permanently removed.
func (c *Client) DeletePost(ctx context.Context, id int, force bool) error {
	path := fmt.Sprintf("/posts/%d?force=%t", id, force)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}

	c.logger.Info("post deleted", "id", id, "force", force)
	return nil
}

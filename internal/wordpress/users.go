package wordpress

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// usersPageSize is the per_page value for user listing requests.
const usersPageSize = 100

// ListUsers returns users holding any of the given roles, paging through the
// users endpoint until exhausted. The edit context is required for email
// addresses to be present.
func (c *Client) ListUsers(ctx context.Context, roles []string) ([]User, error) {
	var users []User

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("context", "edit")
		query.Set("per_page", strconv.Itoa(usersPageSize))
		query.Set("page", strconv.Itoa(page))
		if len(roles) > 0 {
			query.Set("roles", strings.Join(roles, ","))
		}

		var batch []User
		if err := c.doJSON(ctx, http.MethodGet, "/users?"+query.Encode(), nil, &batch); err != nil {
			return nil, err
		}

		users = append(users, batch...)
		if len(batch) < usersPageSize {
			return users, nil
		}
	}
}

package api

import (
	"context"
	"net/http"

	"github.com/applywise/applywise-cli/pkg/models"
)

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileCompleteness fetches the backend-computed profile completeness.
func (c *Client) ProfileCompleteness(ctx context.Context) (*models.ProfileCompleteness, error) {
	var pc models.ProfileCompleteness
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/profile-completeness", nil, &pc); err != nil {
		return nil, err
	}
	return &pc, nil
}

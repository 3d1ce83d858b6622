package api

import (
	"context"
	"net/http"

	"taskflow/internal/models"
)

// GetUserDetails fetches the authenticated user from the server
func (c *Client) GetUserDetails(ctx context.Context) (*models.UserDetails, error) {
	var user models.UserDetails
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		c.logger.Error("Error fetching user details: %v", err)
		return nil, err
	}
	return &user, nil
}

// Health calls the server root, which reports whether the backend is up
func (c *Client) Health(ctx context.Context) (*models.Health, error) {
	var health models.Health
	if err := c.do(ctx, http.MethodGet, "/", nil, &health); err != nil {
		c.logger.Error("Cannot reach backend: %v", err)
		return nil, err
	}
	return &health, nil
}

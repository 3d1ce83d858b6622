package api

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"taskflow/internal/models"
)

// Login authenticates the user and stores the returned access token in
// the session. The response is {"access_token": ..., "token_type": "bearer"}.
func (c *Client) Login(ctx context.Context, email, password string) (*oauth2.Token, error) {
	c.logger.Info("Login attempt with: %s", email)

	var token oauth2.Token
	creds := models.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &token); err != nil {
		c.logger.Error("Login failed: %v", err)
		return nil, err
	}

	if token.AccessToken == "" {
		c.logger.Error("Login response had no access token")
		return nil, ErrNoToken
	}

	if err := c.session.SetToken(token.AccessToken); err != nil {
		return nil, err
	}
	c.logger.Info("Token saved to session store")

	return &token, nil
}

// Signup registers a new account. It does not log the user in.
func (c *Client) Signup(ctx context.Context, email, password string) (*models.SignupResult, error) {
	c.logger.Info("Signup attempt with email: %s", email)

	var result models.SignupResult
	creds := models.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", creds, &result); err != nil {
		c.logger.Error("Signup failed: %v", err)
		return nil, err
	}

	c.logger.Info("Signup response: %s", result.Message)
	return &result, nil
}

// Logout clears the session token. The server keeps no session state, so
// there is nothing to call remotely.
func (c *Client) Logout() error {
	if err := c.session.Logout(); err != nil {
		c.logger.Error("Logout failed: %v", err)
		return err
	}
	c.logger.Info("Session cleared")
	return nil
}

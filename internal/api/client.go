package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"taskflow/internal/models"
	"taskflow/internal/session"
	"taskflow/internal/util"
)

// Client handles communication with the API server.
//
// The client has no retry, backoff or timeout of its own and never cancels
// a request it started. Deadlines only exist if the caller's context has one.
type Client struct {
	// Base URL of the API server
	BaseURL string

	// Session supplying the bearer token
	session *session.Session

	// HTTP client without a timeout
	client *http.Client

	logger *util.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *util.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new API client
func NewClient(baseURL string, sess *session.Session, opts ...Option) *Client {
	if sess == nil {
		sess = session.New(nil)
	}

	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		client:  &http.Client{},
		logger:  util.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the client reads its token from
func (c *Client) Session() *session.Session {
	return c.session
}

// do sends one request and decodes a 2xx JSON body into out. The bearer
// header reflects the session at the moment the request is built.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	url := c.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshalling request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token, ok := c.session.Token(); ok {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	c.logger.Info("→ %s %s (request %s)", method, url, req.Header.Get("X-Request-ID"))
	if body != nil {
		c.logger.Info("Request data: %s", describeBody(body))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("✗ %s %s: %v", method, url, err)
		return &RequestError{Method: method, URL: url, Err: err}
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Warn("Failed to close response body: %v", err)
		}
	}(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, data)
		c.logger.Error("✗ %d ← %s: %s", resp.StatusCode, url, responseSummary(data))
		return apiErr
	}
	c.logger.Info("← %d %s", resp.StatusCode, url)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// describeBody renders a request body for the log with credentials masked
func describeBody(body any) string {
	if creds, ok := body.(models.Credentials); ok {
		return fmt.Sprintf(`{"email":%q,"password":"***"}`, creds.Email)
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("%v", body)
	}
	return string(data)
}

func responseSummary(data []byte) string {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return "No response body"
	}
	return util.Truncate(util.SingleLine(s), 500)
}

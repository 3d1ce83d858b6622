package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreachable marks failures where no HTTP response was received
	ErrUnreachable = errors.New("server unreachable")

	// ErrNoToken is returned when a login response carries no access token
	ErrNoToken = errors.New("no token received from server")
)

// RequestError is a network or connection failure
type RequestError struct {
	Method string
	URL    string
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return []error{ErrUnreachable, e.Err}
}

// APIError is a non-2xx response. Message holds the server's error text
// when the payload had one.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
	}
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, body)
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    serverMessage(body),
		Body:       body,
	}
}

// serverMessage extracts the human readable error from a payload. Handlers
// on the server use either "detail" or "message", so both are checked in
// that order.
func serverMessage(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if raw, ok := payload["detail"]; ok {
		var detail string
		if err := json.Unmarshal(raw, &detail); err == nil && detail != "" {
			return detail
		}

		// request validation failures carry a list of {loc, msg, type}
		var issues []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(raw, &issues); err == nil {
			msgs := make([]string, 0, len(issues))
			for _, issue := range issues {
				if issue.Msg != "" {
					msgs = append(msgs, issue.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}

	if raw, ok := payload["message"]; ok {
		var message string
		if err := json.Unmarshal(raw, &message); err == nil {
			return message
		}
	}

	return ""
}

// UserMessage returns the server's error text carried by err, or fallback
// when there is none.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthorized reports whether err is a 401 from the server
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

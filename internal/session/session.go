// Package session holds the client-side authentication state: one opaque
// bearer token, persisted through a Store.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is shared by the HTTP client and the route guard.
// It is created empty, populated on login and emptied on logout.
type Session struct {
	mu     sync.Mutex
	store  Store
	token  string
	loaded bool
}

// New creates a session backed by the given store.
// A nil store keeps the token in memory.
func New(store Store) *Session {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Session{store: store}
}

// SetToken persists token as-is. The contents are not validated.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("failed to save auth token: %w", err)
	}
	s.token = token
	s.loaded = true
	return nil
}

// Token returns the persisted token and whether one is present.
func (s *Session) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		token, err := s.store.Load()
		if err != nil {
			return "", false
		}
		s.token = token
		s.loaded = true
	}
	return s.token, s.token != ""
}

// IsAuthenticated reports whether a token is present. There is no
// signature or expiry check.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// Logout clears the token from memory and from the store.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear auth token: %w", err)
	}
	return nil
}

// TokenClaims is the display-only view of a JWT access token.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// Claims decodes the token payload without verifying it. It is meant for
// display only and plays no part in IsAuthenticated.
func Claims(token string) (*TokenClaims, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("token is not a readable JWT: %w", err)
	}

	tc := &TokenClaims{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		tc.ExpiresAt = claims.ExpiresAt.Time
	}
	return tc, nil
}

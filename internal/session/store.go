package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenFileName is the fixed name the session token is persisted under
const TokenFileName = ".auth_token"

// Store persists a single session token
type Store interface {
	// Load returns the stored token, or "" when none is stored
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// TokenStore keeps the token in a file inside the config directory
type TokenStore struct {
	TokenFile string
}

func NewTokenStore(configDir string) *TokenStore {
	return &TokenStore{
		TokenFile: filepath.Join(configDir, TokenFileName),
	}
}

func (ts *TokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(ts.TokenFile), 0700); err != nil {
		return fmt.Errorf("error creating token directory: %w", err)
	}
	return os.WriteFile(ts.TokenFile, []byte(token), 0600) // Restricted permissions
}

func (ts *TokenStore) Load() (string, error) {
	data, err := os.ReadFile(ts.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("error reading token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (ts *TokenStore) Clear() error {
	if _, err := os.Stat(ts.TokenFile); os.IsNotExist(err) {
		return nil // File doesn't exist, nothing to clear
	}
	return os.Remove(ts.TokenFile)
}

// MemoryStore keeps the token in memory only
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (ms *MemoryStore) Load() (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.token, nil
}

func (ms *MemoryStore) Save(token string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.token = token
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.token = ""
	return nil
}

// Package auth provides the authentication context shared by the API client and views.
//
// A Session is constructed once at process start and passed down explicitly; nothing
// reads the token from ambient state.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Context provides the bearer token for outgoing requests.
type Context interface {
	Token() string
	IsAuthenticated() bool
	Clear() error
}

// Session is a Context backed by an optional credentials file.
type Session struct {
	mu    sync.RWMutex
	token string
	path  string
}

type credentials struct {
	Token string `json:"token"`
}

// NewSession returns an in-memory session holding token.
func NewSession(token string) *Session {
	return &Session{token: strings.TrimSpace(token)}
}

// LoadSession reads the credentials file at path. A missing file yields an
// unauthenticated session that will persist to path on Save.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}
	s.token = strings.TrimSpace(creds.Token)
	return s, nil
}

// Token returns the current bearer token, or "" when not logged in.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is present.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Save stores token and writes it to the credentials file, if any.
func (s *Session) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token

	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	data, err := json.Marshal(credentials{Token: token})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file %s: %w", s.path, err)
	}
	return nil
}

// Clear forgets the token and removes the credentials file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""

	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials file %s: %w", s.path, err)
	}
	return nil
}

// Package session holds the persisted client session: the bearer token,
// an authenticated flag, and the cached user profile. It is the file-backed
// analogue of the browser-local storage the hosted frontend uses, with an
// explicit lifecycle: Load (initialize-from-storage), SetOnLogin,
// ClearOnLogout.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// User is the cached profile blob returned by the auth endpoints.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// Session is the persisted client state.
type Session struct {
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
	User          *User  `json:"user,omitempty"`
}

// Store manages the session file.
type Store struct {
	mu      sync.Mutex
	path    string
	current Session
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load initializes the store from disk. A missing file yields an empty,
// unauthenticated session rather than an error.
func (s *Store) Load() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.current = Session{}
			return s.current, nil
		}
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// A corrupt session file is treated as logged out
		s.current = Session{}
		return s.current, nil
	}

	s.current = sess
	return s.current, nil
}

// Current returns the in-memory session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetOnLogin persists the token and user profile after a successful
// login or registration.
func (s *Store) SetOnLogin(token string, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{
		Token:         token,
		Authenticated: true,
		User:          user,
	}
	return s.saveLocked()
}

// UpdateUser refreshes the cached profile without touching the token.
func (s *Store) UpdateUser(user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.User = user
	return s.saveLocked()
}

// ClearOnLogout removes the persisted session.
func (s *Store) ClearOnLogout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = Session{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

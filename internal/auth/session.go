package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Session is the login blob persisted between runs and read back at
// startup to decide initial routing.
type Session struct {
	Token          string    `json:"token"`
	UserID         string    `json:"userId"`
	ExpirationDate time.Time `json:"expirationDate"`
}

// Expired reports whether the session is no longer usable at the given
// time. Sessions missing a token or user ID count as expired.
func (s Session) Expired(now time.Time) bool {
	if s.Token == "" || s.UserID == "" {
		return true
	}
	return !s.ExpirationDate.After(now)
}

// SessionStore persists the session blob.
type SessionStore interface {
	// Load reads the stored session. It returns nil when none is stored.
	Load() (*Session, error)

	// Save stores the session, replacing any previous one.
	Save(session Session) error

	// Clear removes the stored session. Clearing an empty store is not an
	// error.
	Clear() error
}

// fileSessionStore stores the session as a JSON file.
type fileSessionStore struct {
	path   string
	logger zerolog.Logger
}

// NewFileSessionStore creates a session store backed by the given file.
func NewFileSessionStore(path string, logger zerolog.Logger) SessionStore {
	return &fileSessionStore{
		path:   path,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Load reads the stored session.
func (s *fileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}

	s.logger.Debug().Str("user_id", session.UserID).Msg("session loaded")
	return &session, nil
}

// Save stores the session. The write goes through a temp file and a rename
// so a crash mid-write never leaves a corrupt blob.
func (s *fileSessionStore) Save(session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	s.logger.Debug().Str("user_id", session.UserID).Msg("session saved")
	return nil
}

// Clear removes the stored session.
func (s *fileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

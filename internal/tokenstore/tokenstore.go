// Package tokenstore persists the bearer token and user profile obtained from
// login or register, so CLI invocations can reuse a session. The token is
// inspected (not verified) locally to detect expiry before a request is even
// attempted; verification is the server's job.
package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emagn/escrow-client/internal/escrow"
)

// ErrNoSession is returned by Load when no session has been saved.
var ErrNoSession = errors.New("no saved session")

// Store reads and writes one session file.
type Store struct {
	path string
}

// New creates a store at the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the per-user session file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("DefaultPath: %w", err)
	}
	return filepath.Join(dir, "emagn", "session.json"), nil
}

// Save writes the session to disk, readable only by the current user.
func (s *Store) Save(session escrow.AuthSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}

// Load reads the saved session. It returns ErrNoSession when none exists.
func (s *Store) Load() (*escrow.AuthSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("Load: %w", err)
	}

	var session escrow.AuthSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	if session.Token == "" {
		return nil, ErrNoSession
	}
	return &session, nil
}

// Clear removes the saved session. Clearing an absent session is not an
// error: it is the required side effect of any AuthError, which may fire more
// than once.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("Clear: %w", err)
	}
	return nil
}

// IsExpired reports whether the bearer token carries an exp claim in the
// past. The signature is not checked; tokens without an exp claim, or that do
// not parse as JWTs at all, are reported as not expired and left for the
// server to judge.
func IsExpired(token string) bool {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Before(time.Now())
}

package tokenstore

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/emagn/escrow-client/internal/escrow"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "session.json"))
}

func TestSaveLoadClear(t *testing.T) {
	store := newTestStore(t)

	session := escrow.AuthSession{
		Token: "token-123",
		User:  escrow.User{ID: "u-1", Email: "abel@example.com"},
	}

	if err := store.Save(session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Token != session.Token || loaded.User.Email != session.User.Email {
		t.Errorf("Load = %+v, want %+v", loaded, session)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load after Clear = %v, want ErrNoSession", err)
	}
}

func TestLoad_NoSession(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load = %v, want ErrNoSession", err)
	}
}

func TestClear_MissingFileIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	if err := store.Clear(); err != nil {
		t.Errorf("Clear of absent session = %v, want nil", err)
	}
	// Clearing twice must also succeed.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear = %v, want nil", err)
	}
}

// unsignedJWT builds a token with the given claims and a fake signature,
// enough for unverified parsing.
func unsignedJWT(t *testing.T, claims map[string]interface{}) string {
	t.Helper()

	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}

	encode := base64.RawURLEncoding.EncodeToString
	return fmt.Sprintf("%s.%s.%s", encode(header), encode(payload), encode([]byte("sig")))
}

func TestIsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour).Unix()
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "expired token",
			token: unsignedJWT(t, map[string]interface{}{"exp": past}),
			want:  true,
		},
		{
			name:  "valid token",
			token: unsignedJWT(t, map[string]interface{}{"exp": future}),
			want:  false,
		},
		{
			name:  "no exp claim left to the server",
			token: unsignedJWT(t, map[string]interface{}{"sub": "u-1"}),
			want:  false,
		},
		{
			name:  "not a JWT left to the server",
			token: "opaque-token",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExpired(tt.token); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

package config

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// AuthSession is the locally cached identity for the shop backend: the user id
// and the bearer token minted by the identity provider. Dukaan never mints
// tokens itself; an absent session file means the app runs unauthenticated
// (navigation and settings tools keep working, remote tools refuse).
type AuthSession struct {
	mu     sync.RWMutex
	userID string
	store  *CredentialStore
}

type sessionFile struct {
	UserID string `toml:"user_id"`
}

// LoadAuthSession reads the session file in dataDir. A missing file is not an
// error: it yields a session whose CurrentUserID is empty.
func LoadAuthSession(dataDir string, store *CredentialStore) (*AuthSession, error) {
	s := &AuthSession{store: store}

	path := filepath.Join(dataDir, "session.toml")
	if !FileExists(path) {
		return s, nil
	}

	var sf sessionFile
	if _, err := toml.DecodeFile(path, &sf); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	s.userID = sf.UserID

	return s, nil
}

// CurrentUserID returns the signed-in user's id, or "" when unauthenticated.
func (s *AuthSession) CurrentUserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Token returns the backend bearer token, or "" when unauthenticated.
func (s *AuthSession) Token() string {
	if s.store == nil {
		return ""
	}
	return s.store.Get(CredentialBackendToken)
}

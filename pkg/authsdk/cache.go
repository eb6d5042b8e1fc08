package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	userFile    = "user.json"
	sessionFile = "session.json"
)

// CredentialCache persists the signed-in user and session as JSON files
// under a directory, so a restarted client can resume its session. User
// and session are stored separately and may exist independently; Load
// reconciles the pair. Safe for concurrent use.
type CredentialCache struct {
	mu  sync.Mutex
	dir string
}

// NewCredentialCache creates the cache directory if needed.
func NewCredentialCache(dir string) (*CredentialCache, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("authsdk: create cache dir: %w", err)
	}
	return &CredentialCache{dir: dir}, nil
}

// Load returns the cached user and session. An expired session is
// cleared from disk along with the user and reported as absent, so
// stale credentials never leak back into a fresh start. Corrupt files
// are treated the same way as expired ones.
func (c *CredentialCache) Load(now time.Time) (*User, *Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var user User
	userOK, err := c.readJSON(userFile, &user)
	if err != nil {
		return nil, nil, err
	}

	var session Session
	sessionOK, err := c.readJSON(sessionFile, &session)
	if err != nil {
		return nil, nil, err
	}

	if !userOK || !sessionOK || session.Expired(now) || session.UserID != user.ID {
		if err := c.clearLocked(); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}

	return &user, &session, nil
}

// SaveUser persists the user record.
func (c *CredentialCache) SaveUser(user *User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeJSON(userFile, user)
}

// SaveSession persists the session record.
func (c *CredentialCache) SaveSession(session *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeJSON(sessionFile, session)
}

// Clear removes both cached records. Missing files are fine.
func (c *CredentialCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearLocked()
}

func (c *CredentialCache) clearLocked() error {
	for _, name := range []string{userFile, sessionFile} {
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("authsdk: clear cache: %w", err)
		}
	}
	return nil
}

// readJSON reads and decodes a cache file. Returns false when the file
// is missing or unreadable as JSON.
func (c *CredentialCache) readJSON(name string, out any) (bool, error) {
	raw, err := os.ReadFile(filepath.Join(c.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("authsdk: read cache: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Corrupt cache entries count as absent.
		return false, nil
	}
	return true, nil
}

// writeJSON writes a cache file atomically via a temp file rename, so a
// crash mid-write never leaves a half-written record.
func (c *CredentialCache) writeJSON(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("authsdk: encode cache: %w", err)
	}

	path := filepath.Join(c.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("authsdk: write cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("authsdk: write cache: %w", err)
	}
	return nil
}

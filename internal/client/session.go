package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// SessionStatus tracks the lifecycle of the persisted session: unknown
// until the store has loaded, then either authenticated or not.
type SessionStatus string

const (
	StatusUnknown         SessionStatus = "unknown"
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
)

type sessionData struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SessionStore persists the login token and username to a JSON file so
// the CLI survives restarts. All mutation goes through Save and Clear.
type SessionStore struct {
	mu     sync.RWMutex
	path   string
	data   sessionData
	status SessionStatus
}

// NewSessionStore loads the session file at path. A missing or corrupt
// file yields an unauthenticated store rather than an error.
func NewSessionStore(path string) *SessionStore {
	s := &SessionStore{path: path, status: StatusUnknown}
	s.load()
	return s
}

func (s *SessionStore) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.status = StatusUnauthenticated
		return
	}
	var d sessionData
	if err := json.Unmarshal(raw, &d); err != nil || d.Token == "" {
		s.status = StatusUnauthenticated
		return
	}
	s.data = d
	s.status = StatusAuthenticated
}

// Status reports the current session state.
func (s *SessionStore) Status() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Token returns the stored access token, or "" when unauthenticated.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token
}

// Username returns the logged-in username, or "" when unauthenticated.
func (s *SessionStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Username
}

// Save stores a fresh login and persists it to disk.
func (s *SessionStore) Save(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = sessionData{Token: token, Username: username}
	s.status = StatusAuthenticated

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear drops the session in memory and removes the file. Called on
// logout and whenever the server rejects the token.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = sessionData{}
	s.status = StatusUnauthenticated
	os.Remove(s.path)
}

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Session is the authenticated state carried between commands. A zero token
// means signed out.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// SessionStore persists the session to a JSON file so separate invocations
// share one sign-in. The path is injected, which keeps tests on temp files.
type SessionStore struct {
	mu      sync.Mutex
	path    string
	current Session
}

func NewSessionStore(path string) (*SessionStore, error) {
	st := &SessionStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return st, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &st.current); err != nil {
		// A corrupt session file falls back to signed out.
		st.current = Session{}
	}
	return st, nil
}

func (st *SessionStore) Current() Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current
}

func (st *SessionStore) Authenticated() bool {
	return st.Current().Authenticated()
}

// Token satisfies the client's token source.
func (st *SessionStore) Token() string {
	return st.Current().Token
}

func (st *SessionStore) Save(s Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	st.current = s
	return nil
}

func (st *SessionStore) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := os.Remove(st.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	st.current = Session{}
	return nil
}

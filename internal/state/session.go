// internal/state/session.go
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/user/unilogos/internal/types"
)

const (
	keyUser  = "user"
	keyToken = "token"
)

// SessionStore holds the signed-in user and its bearer token, persisted
// through a KV backend. The pair is always written and removed together;
// a session without a token is never observable.
type SessionStore struct {
	kv types.KV

	mu      sync.RWMutex
	current *types.Session
	token   string
}

// NewSessionStore creates a SessionStore over the given KV backend.
func NewSessionStore(kv types.KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Restore loads the persisted session into memory and returns it.
// Absent or malformed state is logged and treated as signed-out, never an
// error the caller has to handle.
func (s *SessionStore) Restore() *types.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	userData, err := s.kv.Get(keyUser)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			slog.Warn("failed to restore session", "error", err)
		}
		return nil
	}

	var session types.Session
	if err := json.Unmarshal(userData, &session); err != nil {
		slog.Warn("malformed persisted session, treating as signed out", "error", err)
		return nil
	}

	tokenData, err := s.kv.Get(keyToken)
	if err != nil {
		// A session without its token is inconsistent state; drop both.
		slog.Warn("persisted session has no token, treating as signed out", "error", err)
		return nil
	}

	s.current = &session
	s.token = string(tokenData)
	return s.current
}

// Set persists the session and token together and updates the in-memory
// pair. If the token cannot be written the session key is rolled back so
// readers never see one half of the pair.
func (s *SessionStore) Set(session *types.Session, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.kv.Set(keyUser, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := s.kv.Set(keyToken, []byte(token)); err != nil {
		if delErr := s.kv.Delete(keyUser); delErr != nil {
			slog.Warn("failed to roll back session key", "error", delErr)
		}
		return fmt.Errorf("persist token: %w", err)
	}

	s.current = session
	s.token = token
	return nil
}

// Clear removes both the session and the token.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(keyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := s.kv.Delete(keyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}

	s.current = nil
	s.token = ""
	return nil
}

// Current returns the in-memory session, or nil when signed out.
func (s *SessionStore) Current() *types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the in-memory bearer token, or "" when signed out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

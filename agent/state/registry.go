package state

import (
	"context"
	"strings"
	"sync"
)

// Store is the persistence contract used by the turn workflow.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, sessionID string) error
}

// Registry keeps sessions in process memory, partitioned by session id.
// Sessions are deep-copied on the way in and out so concurrent turns for
// different sessions never share mutable state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

var _ Store = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Load(ctx context.Context, sessionID string) (*Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrInvalidSession
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, ErrStateNotFound
	}
	return s.Clone(), nil
}

func (r *Registry) Save(ctx context.Context, s *Session) error {
	if s == nil {
		return ErrNilSession
	}
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.SessionID] = s.Clone()
	return nil
}

func (r *Registry) Delete(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidSession
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

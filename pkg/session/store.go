package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-formflow/pkg/registry"
)

// Store keeps sessions addressable by id. Nothing is persisted.
type Store struct {
	mu       sync.RWMutex
	reg      *registry.Registry
	sessions map[string]*Session
}

// NewStore creates an empty store opening sessions against reg.
func NewStore(reg *registry.Registry) *Store {
	return &Store{reg: reg, sessions: make(map[string]*Session)}
}

// Create opens a session on key under a fresh random id.
func (s *Store) Create(key string, opts ...Option) (*Session, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	sess, err := New(s.reg, key, append(opts, WithID(id))...)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess, nil
}

// Get looks up a session by id.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return sess, nil
}

// Delete drops a session. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// IDs returns the ids of every open session, sorted.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func newID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

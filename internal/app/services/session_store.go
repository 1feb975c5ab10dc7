package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

// DefaultMaxSessions bounds the number of live form sessions.
const DefaultMaxSessions = 1024

// ControllerFactory builds the controller for a new session.
type ControllerFactory func() *SubmissionController

// SessionStore maps opaque session IDs to their form controller. The least
// recently used session is dropped once the store is full.
type SessionStore struct {
	mu      sync.Mutex
	cache   *lru.Cache
	factory ControllerFactory
}

// NewSessionStore creates a store holding at most size sessions.
func NewSessionStore(size int, factory ControllerFactory) (*SessionStore, error) {
	if size <= 0 {
		size = DefaultMaxSessions
	}
	cache, err := lru.NewWithEvict(size, func(_ interface{}, value interface{}) {
		if c, ok := value.(*SubmissionController); ok {
			c.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &SessionStore{cache: cache, factory: factory}, nil
}

// Get returns the controller of an existing session.
func (s *SessionStore) Get(id string) (*SubmissionController, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*SubmissionController), true
}

// Create starts a new session and returns its ID.
func (s *SessionStore) Create() (string, *SubmissionController) {
	id := uuid.NewString()
	c := s.factory()
	s.cache.Add(id, c)
	return id, c
}

// GetOrCreate returns the session for id, creating a new one when id is empty,
// malformed or unknown. The returned ID is the one the caller must use from
// now on; created reports whether it differs from id.
func (s *SessionStore) GetOrCreate(id string) (string, *SubmissionController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if c, ok := s.Get(id); ok {
			return id, c, false
		}
	}
	newID, c := s.Create()
	return newID, c, true
}

// Remove ends a session.
func (s *SessionStore) Remove(id string) {
	s.cache.Remove(id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	return s.cache.Len()
}

// Close ends every session.
func (s *SessionStore) Close() {
	s.cache.Purge()
}

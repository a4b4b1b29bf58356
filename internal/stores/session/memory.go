package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore provides an in-memory implementation of Store for testing
// and for running without a configured database
type InMemoryStore struct {
	sessions map[uuid.UUID]*Session
	mutex    sync.RWMutex
}

// NewInMemoryStore creates a new in-memory session store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[uuid.UUID]*Session),
		mutex:    sync.RWMutex{},
	}
}

// Create persists a new session with the given origin address
func (s *InMemoryStore) Create(ctx context.Context, originAddress string) (*Session, error) {
	session := NewSession(originAddress)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.sessions[session.ID] = copySession(session)
	return session, nil
}

// Get retrieves a session by ID
func (s *InMemoryStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, ErrNotFound
	}

	// Return a copy to avoid external mutations
	return copySession(session), nil
}

// Save persists mutations to an existing session. Like the SQL store, a
// session deleted mid-append reports ErrNotFound instead of being
// resurrected.
func (s *InMemoryStore) Save(ctx context.Context, session *Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	existing, exists := s.sessions[session.ID]
	if !exists {
		return ErrNotFound
	}

	existing.History = session.History
	existing.LastTouchedAt = session.LastTouchedAt
	return nil
}

// List retrieves all sessions ordered by creation time
func (s *InMemoryStore) List(ctx context.Context) ([]*Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, copySession(session))
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// Delete removes a session by ID
func (s *InMemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return ErrNotFound
	}

	delete(s.sessions, id)
	return nil
}

// DeleteOlderThan removes all sessions created before now minus the given
// age and returns the number of sessions deleted
func (s *InMemoryStore) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var count int64
	for id, session := range s.sessions {
		if session.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			count++
		}
	}

	return count, nil
}

// Helper method to copy a session to avoid shared references
func copySession(session *Session) *Session {
	copied := *session
	return &copied
}

package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager orchestrates the session lifecycle on top of a Store: creating
// sessions with a captured origin address and appending executed code to a
// session's history.
type Manager struct {
	store Store

	// Per-session append locks. Appends to the same id are serialized so
	// that overlapping requests (duplicate network retries) cannot race the
	// decode-append-encode-save cycle and silently drop an entry. The
	// retention sweeper bounds the live session count, so entries are left
	// to accumulate.
	locks sync.Map
}

// NewManager creates a new session lifecycle manager
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// ClientAddress resolves the originating address for a session. The first
// entry of a comma-separated forwarded-for chain takes precedence over the
// direct peer address, mirroring reverse-proxy convention.
func ClientAddress(forwardedFor, peerAddress string) string {
	if forwardedFor != "" {
		return strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
	}
	return peerAddress
}

// StartSession creates a new session, capturing the originating address from
// the request's forwarding chain if present
func (m *Manager) StartSession(ctx context.Context, forwardedFor, peerAddress string) (*Session, error) {
	return m.store.Create(ctx, ClientAddress(forwardedFor, peerAddress))
}

// FindSession retrieves an existing session by ID
func (m *Manager) FindSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	return m.store.Get(ctx, id)
}

// ListSessions retrieves all sessions
func (m *Manager) ListSessions(ctx context.Context) ([]*Session, error) {
	return m.store.List(ctx)
}

// RemoveSession deletes an existing session by ID
func (m *Manager) RemoveSession(ctx context.Context, id uuid.UUID) error {
	return m.store.Delete(ctx, id)
}

// AppendCode records one executed-code entry at the end of the session's
// history and refreshes last_touched_at. The code text is stored verbatim,
// including empty strings. Returns the new total entry count, or ErrNotFound
// if the session does not exist (no side effect).
func (m *Manager) AppendCode(ctx context.Context, id uuid.UUID, code string) (int, error) {
	mu := m.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := m.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}

	// Malformed history is discarded here and the log restarts empty
	entries := DecodeHistory(session.History)
	entries = append(entries, Entry{
		Timestamp: time.Now(),
		Code:      code,
	})

	raw, err := EncodeHistory(entries)
	if err != nil {
		return 0, err
	}

	session.History = raw
	session.LastTouchedAt = time.Now()
	if err := m.store.Save(ctx, session); err != nil {
		return 0, err
	}

	return len(entries), nil
}

// lockFor returns the append lock for a session id
func (m *Manager) lockFor(id uuid.UUID) *sync.Mutex {
	mu, _ := m.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

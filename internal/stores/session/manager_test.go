package session

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAddress(t *testing.T) {
	tests := []struct {
		name         string
		forwardedFor string
		peerAddress  string
		expected     string
	}{
		{"no forwarding chain", "", "10.0.0.1", "10.0.0.1"},
		{"single forwarded address", "1.2.3.4", "10.0.0.1", "1.2.3.4"},
		{"chained forwarded addresses", "1.2.3.4, 5.6.7.8", "10.0.0.1", "1.2.3.4"},
		{"chained without spaces", "1.2.3.4,5.6.7.8,9.9.9.9", "10.0.0.1", "1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClientAddress(tt.forwardedFor, tt.peerAddress))
		})
	}
}

func TestStartSession(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewInMemoryStore())

	t.Run("with forwarding chain", func(t *testing.T) {
		session, err := manager.StartSession(ctx, "1.2.3.4, 5.6.7.8", "10.0.0.1")
		require.NoError(t, err)

		assert.Equal(t, "1.2.3.4", session.OriginAddress)
		assert.NotEqual(t, uuid.Nil, session.ID)
		assert.Empty(t, session.History)
		assert.False(t, session.LastTouchedAt.Before(session.CreatedAt))
	})

	t.Run("without forwarding chain", func(t *testing.T) {
		session, err := manager.StartSession(ctx, "", "10.0.0.1")
		require.NoError(t, err)

		assert.Equal(t, "10.0.0.1", session.OriginAddress)
	})

	t.Run("ids are unique", func(t *testing.T) {
		a, err := manager.StartSession(ctx, "", "10.0.0.1")
		require.NoError(t, err)
		b, err := manager.StartSession(ctx, "", "10.0.0.1")
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestAppendCode(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	manager := NewManager(store)

	session, err := manager.StartSession(ctx, "", "10.0.0.1")
	require.NoError(t, err)

	// First append transitions the session from empty to active
	count, err := manager.AppendCode(ctx, session.ID, "LDA 5")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Second append grows the count by exactly one
	count, err = manager.AppendCode(ctx, session.ID, "ADD 3")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Fetch the session and verify the history order
	updated, err := manager.FindSession(ctx, session.ID)
	require.NoError(t, err)

	entries := DecodeHistory(updated.History)
	require.Len(t, entries, 2)
	assert.Equal(t, "LDA 5", entries[0].Code)
	assert.Equal(t, "ADD 3", entries[1].Code)
	assert.False(t, updated.LastTouchedAt.Before(updated.CreatedAt))
}

func TestAppendCodeEmptyCode(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewInMemoryStore())

	session, err := manager.StartSession(ctx, "", "10.0.0.1")
	require.NoError(t, err)

	// Empty code is stored verbatim, not rejected
	count, err := manager.AppendCode(ctx, session.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	updated, err := manager.FindSession(ctx, session.ID)
	require.NoError(t, err)

	entries := DecodeHistory(updated.History)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Code)
}

func TestAppendCodeNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	manager := NewManager(store)

	_, err := manager.AppendCode(ctx, uuid.New(), "LDA 5")
	assert.ErrorIs(t, err, ErrNotFound)

	// No session was created as a side effect
	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestAppendCodeRecoversMalformedHistory(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	manager := NewManager(store)

	session, err := manager.StartSession(ctx, "", "10.0.0.1")
	require.NoError(t, err)

	// Corrupt the stored history directly
	session.History = "this is not json"
	require.NoError(t, store.Save(ctx, session))

	// The unreadable history is discarded and the log restarts
	count, err := manager.AppendCode(ctx, session.ID, "LDA 5")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	updated, err := manager.FindSession(ctx, session.ID)
	require.NoError(t, err)

	entries := DecodeHistory(updated.History)
	require.Len(t, entries, 1)
	assert.Equal(t, "LDA 5", entries[0].Code)
}

func TestAppendCodeConcurrentSameSession(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewInMemoryStore())

	session, err := manager.StartSession(ctx, "", "10.0.0.1")
	require.NoError(t, err)

	// Overlapping appends to the same id are serialized, so no entry is
	// ever dropped
	const appends = 25

	var wg sync.WaitGroup
	for i := 0; i < appends; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.AppendCode(ctx, session.ID, "LDA 5")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	updated, err := manager.FindSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, DecodeHistory(updated.History), appends)
}

func TestAppendCodeDeletedSession(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	manager := NewManager(store)

	session, err := manager.StartSession(ctx, "", "10.0.0.1")
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, session.ID))

	// A deleted session reports not found instead of being resurrected
	_, err = manager.AppendCode(ctx, session.ID, "LDA 5")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = manager.FindSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

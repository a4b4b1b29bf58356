package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a session id has no backing row
var ErrNotFound = errors.New("session not found")

// Store interface defines methods for session persistence
type Store interface {
	Create(ctx context.Context, originAddress string) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, session *Session) error
	List(ctx context.Context) ([]*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// SqlStore handles session persistence using GORM
type SqlStore struct {
	db *gorm.DB
}

// NewMySqlStore creates a new session store with a MySQL connection
func NewMySqlStore(databaseURL string) (*SqlStore, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return NewSqlStore(db)
}

// NewSqlStore creates a session store on an existing GORM connection
func NewSqlStore(db *gorm.DB) (*SqlStore, error) {
	store := &SqlStore{db: db}

	// Auto-migrate tables
	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// Create persists a new session with the given origin address
func (s *SqlStore) Create(ctx context.Context, originAddress string) (*Session, error) {
	session := NewSession(originAddress)

	result := s.db.WithContext(ctx).Create(session)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create session: %w", result.Error)
	}

	return session, nil
}

// Get retrieves a session by ID
func (s *SqlStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	var session Session
	result := s.db.WithContext(ctx).First(&session, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", result.Error)
	}

	return &session, nil
}

// Save persists history and last-touched mutations to an existing session.
// The update is keyed on the row still existing: a session deleted by the
// retention sweeper mid-append reports ErrNotFound instead of being
// resurrected. Appends always change last_touched_at, so zero affected
// rows means the row is gone.
func (s *SqlStore) Save(ctx context.Context, session *Session) error {
	result := s.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", session.ID).
		Updates(map[string]any{
			"history":         session.History,
			"last_touched_at": session.LastTouchedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to save session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// List retrieves all sessions ordered by creation time
func (s *SqlStore) List(ctx context.Context) ([]*Session, error) {
	var sessions []*Session
	result := s.db.WithContext(ctx).Order("created_at").Find(&sessions)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", result.Error)
	}

	return sessions, nil
}

// Delete removes a session by ID
func (s *SqlStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Session{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteOlderThan removes all sessions created before now minus the given
// age and returns the number of rows deleted
func (s *SqlStore) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)

	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// Close closes the database connection
func (s *SqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

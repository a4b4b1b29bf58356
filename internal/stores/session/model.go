package session

import (
	"time"

	"github.com/google/uuid"
)

// Session tracks a visitor's interaction with the simulator. Each session
// records the originating address, lifecycle timestamps, and a JSON-encoded
// log of every code snippet the visitor executed.
type Session struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	OriginAddress string    `json:"origin_address" gorm:"size:64;not null"`
	CreatedAt     time.Time `json:"created_at"`
	LastTouchedAt time.Time `json:"last_touched_at"`

	// History holds the encoded execution log. Use DecodeHistory/EncodeHistory
	// to work with it; the raw blob is never exposed over the API.
	History string `json:"-" gorm:"type:text"`
}

// TableName sets the table name for GORM
func (Session) TableName() string {
	return "simulator_sessions"
}

// NewSession creates a new session with a generated UUID and empty history.
// Session IDs act as bearer capabilities for appending history, so they must
// stay cryptographically random.
func NewSession(originAddress string) *Session {
	now := time.Now()
	return &Session{
		ID:            uuid.New(),
		OriginAddress: originAddress,
		CreatedAt:     now,
		LastTouchedAt: now,
	}
}

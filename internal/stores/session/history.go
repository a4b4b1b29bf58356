package session

import (
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Entry is a single executed-code record in a session's history.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Code      string    `json:"code"`
}

// DecodeHistory parses the stored history blob into an ordered entry list.
// An empty blob yields an empty list. A blob that fails to parse is logged
// and discarded so that malformed history never blocks new code from being
// recorded; the caller starts over with an empty list.
func DecodeHistory(raw string) []Entry {
	if raw == "" {
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("[SESSION]: Warning, discarding unreadable history: %v", err)
		return []Entry{}
	}

	// A stored "null" decodes without error into a nil slice
	if entries == nil {
		return []Entry{}
	}

	return entries
}

// EncodeHistory serializes an entry list into the stored history blob.
// Round-trips with DecodeHistory for any list the system constructs.
func EncodeHistory(entries []Entry) (string, error) {
	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode history: %w", err)
	}
	return string(b), nil
}

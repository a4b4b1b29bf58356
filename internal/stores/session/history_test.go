package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRoundTrip(t *testing.T) {
	entries := []Entry{
		{Timestamp: time.Date(2025, 5, 18, 10, 0, 0, 0, time.UTC), Code: "LDA 5"},
		{Timestamp: time.Date(2025, 5, 18, 10, 0, 1, 0, time.UTC), Code: "ADD 3"},
		{Timestamp: time.Date(2025, 5, 18, 10, 0, 2, 0, time.UTC), Code: ""},
	}

	raw, err := EncodeHistory(entries)
	require.NoError(t, err)

	decoded := DecodeHistory(raw)
	assert.Equal(t, entries, decoded)
}

func TestHistoryRoundTripEmpty(t *testing.T) {
	raw, err := EncodeHistory([]Entry{})
	require.NoError(t, err)

	decoded := DecodeHistory(raw)
	assert.Empty(t, decoded)
	assert.NotNil(t, decoded)
}

func TestDecodeHistoryEmptyBlob(t *testing.T) {
	decoded := DecodeHistory("")
	assert.Empty(t, decoded)
	assert.NotNil(t, decoded)
}

func TestDecodeHistoryMalformed(t *testing.T) {
	// Malformed history is discarded, never surfaced as an error
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage text", "this is not json"},
		{"truncated array", `[{"timestamp": "2025-05-18T10:00:00Z", "code": "LDA 5"`},
		{"wrong shape", `{"timestamp": "2025-05-18T10:00:00Z"}`},
		{"null literal", "null"},
		{"wrong element type", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded := DecodeHistory(tt.raw)
			assert.Empty(t, decoded)
			assert.NotNil(t, decoded)
		})
	}
}

func TestDecodeHistoryPreservesOrder(t *testing.T) {
	// Append order is significant, not timestamp order
	raw := `[` +
		`{"timestamp": "2025-05-18T10:00:05Z", "code": "second"},` +
		`{"timestamp": "2025-05-18T10:00:00Z", "code": "first"}` +
		`]`

	decoded := DecodeHistory(raw)
	require.Len(t, decoded, 2)
	assert.Equal(t, "second", decoded[0].Code)
	assert.Equal(t, "first", decoded[1].Code)
}

package sdk

import "time"

// Session is the API representation of a simulator session
type Session struct {
	ID            string         `json:"id"`
	OriginAddress string         `json:"origin_address"`
	CreatedAt     time.Time      `json:"created_at"`
	LastTouchedAt time.Time      `json:"last_touched_at"`
	History       []HistoryEntry `json:"history"`
}

// HistoryEntry is one executed-code record in a session's history
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Code      string    `json:"code"`
}

// InstructionSet is the API representation of a CPU instruction
type InstructionSet struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Opcode      string `json:"opcode"`
	Description string `json:"description"`
}

// ExampleProgram is the API representation of a demonstration program
type ExampleProgram struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

/** Requests */

// UpdateCodeRequest represents the request body for recording executed code.
// The code field is optional; an absent field records an empty entry.
type UpdateCodeRequest struct {
	Code string `json:"code"`
}

/** Responses */

// UpdateCodeResponse reports the outcome of recording executed code
type UpdateCodeResponse struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
}

// ErrorResponse is the body returned for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}

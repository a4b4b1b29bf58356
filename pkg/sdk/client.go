package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps calls to the simulator backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateSession starts a new simulator session
func (c *Client) CreateSession(ctx context.Context) (*Session, error) {
	var out Session
	if err := c.doJSON(ctx, http.MethodPost, "/api/sessions", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSession retrieves an existing session by ID
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var out Session
	if err := c.doJSON(ctx, http.MethodGet, "/api/sessions/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCode records an executed code snippet against a session and returns
// the new total entry count
func (c *Client) UpdateCode(ctx context.Context, id, code string) (int, error) {
	req := UpdateCodeRequest{Code: code}

	var out UpdateCodeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/sessions/"+id+"/update-code", req, &out); err != nil {
		return 0, err
	}
	return out.Entries, nil
}

// ListInstructionSets retrieves all instruction set entries
func (c *Client) ListInstructionSets(ctx context.Context) ([]InstructionSet, error) {
	var out []InstructionSet
	if err := c.doJSON(ctx, http.MethodGet, "/api/instruction-sets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListExamplePrograms retrieves all example programs
func (c *Client) ListExamplePrograms(ctx context.Context) ([]ExampleProgram, error) {
	var out []ExampleProgram
	if err := c.doJSON(ctx, http.MethodGet, "/api/example-programs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// doJSON is a helper to perform JSON requests to the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// On error, read body and return error
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("[SDK]: backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}

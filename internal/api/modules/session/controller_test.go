package session_module

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	session_store "github.com/alokugamage/eightbit-backend/internal/stores/session"
	"github.com/alokugamage/eightbit-backend/pkg/sdk"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the session module against an in-memory store
func newTestRouter(t *testing.T) (*gin.Engine, session_store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session_store.NewInMemoryStore()
	require.NoError(t, InitWithStore(store, nil))
	t.Cleanup(sessionService.sweeper.Stop)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api"))
	return engine, store
}

// createSession posts a create-session request and returns the response body
func createSession(t *testing.T, engine *gin.Engine, forwardedFor string) sdk.Session {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	req.RemoteAddr = "10.0.0.1:52000"
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var session sdk.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	return session
}

// updateCode posts an update-code request with the given raw body
func updateCode(t *testing.T, engine *gin.Engine, id string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/"+id+"/update-code", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCreateSession(t *testing.T) {
	engine, _ := newTestRouter(t)

	t.Run("with forwarded-for header", func(t *testing.T) {
		session := createSession(t, engine, "1.2.3.4, 5.6.7.8")
		assert.Equal(t, "1.2.3.4", session.OriginAddress)
		assert.NotEmpty(t, session.ID)
		assert.Empty(t, session.History)
	})

	t.Run("without forwarded-for header", func(t *testing.T) {
		session := createSession(t, engine, "")
		assert.Equal(t, "10.0.0.1", session.OriginAddress)
	})
}

func TestUpdateCode(t *testing.T) {
	engine, _ := newTestRouter(t)
	session := createSession(t, engine, "")

	// First append
	w := updateCode(t, engine, session.ID, []byte(`{"code": "LDA 5"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp sdk.UpdateCodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "code updated", resp.Status)
	assert.Equal(t, 1, resp.Entries)

	// Second append
	w = updateCode(t, engine, session.ID, []byte(`{"code": "ADD 3"}`))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Entries)

	// The session's history holds both entries in append order
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+session.ID, nil)
	getRec := httptest.NewRecorder()
	engine.ServeHTTP(getRec, req)
	require.Equal(t, http.StatusOK, getRec.Code)

	var fetched sdk.Session
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &fetched))
	require.Len(t, fetched.History, 2)
	assert.Equal(t, "LDA 5", fetched.History[0].Code)
	assert.Equal(t, "ADD 3", fetched.History[1].Code)
}

func TestUpdateCodeWithoutBody(t *testing.T) {
	engine, _ := newTestRouter(t)
	session := createSession(t, engine, "")

	// An absent code field records an empty entry
	w := updateCode(t, engine, session.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp sdk.UpdateCodeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Entries)
}

func TestUpdateCodeNotFound(t *testing.T) {
	engine, store := newTestRouter(t)

	tests := []struct {
		name string
		id   string
	}{
		{"unknown uuid", uuid.NewString()},
		{"malformed uuid", "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := updateCode(t, engine, tt.id, []byte(`{"code": "LDA 5"}`))
			require.Equal(t, http.StatusNotFound, w.Code)

			var resp sdk.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Session not found", resp.Error)
		})
	}

	// No session rows were touched
	sessions, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestGetSessionNotFound(t *testing.T) {
	engine, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSessions(t *testing.T) {
	engine, _ := newTestRouter(t)
	createSession(t, engine, "")
	createSession(t, engine, "")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var sessions []sdk.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	assert.Len(t, sessions, 2)
}

func TestDeleteSession(t *testing.T) {
	engine, _ := newTestRouter(t)
	session := createSession(t, engine, "")

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions/"+session.ID, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Any operation against the deleted id reports not found
	w = updateCode(t, engine, session.ID, []byte(`{"code": "LDA 5"}`))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

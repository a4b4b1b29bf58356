package session_module

import (
	"errors"
	"net"
	"net/http"

	session_store "github.com/alokugamage/eightbit-backend/internal/stores/session"
	"github.com/alokugamage/eightbit-backend/pkg/sdk"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateSession handles POST requests to start a new simulator session,
// capturing the originating address from the forwarding chain if present
func CreateSession(c *gin.Context) {
	svc := GetService()

	session, err := svc.manager.StartSession(
		c.Request.Context(),
		c.GetHeader("X-Forwarded-For"),
		peerAddress(c.Request.RemoteAddr),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, toSDKSession(session))
}

// UpdateCode handles POST requests to record an executed code snippet
// against an existing session
func UpdateCode(c *gin.Context) {
	svc := GetService()

	// Session ids are opaque to callers, so a malformed uuid is just an
	// unknown session
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Session not found"})
		return
	}

	// The code field is optional and stored verbatim; an absent or empty
	// body records an empty entry
	var req sdk.UpdateCodeRequest
	_ = c.ShouldBindJSON(&req)

	count, err := svc.manager.AppendCode(c.Request.Context(), id, req.Code)
	if errors.Is(err, session_store.ErrNotFound) {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to update code"})
		return
	}

	c.JSON(http.StatusOK, sdk.UpdateCodeResponse{Status: "code updated", Entries: count})
}

// GetSession handles GET requests to retrieve an existing session by UUID
func GetSession(c *gin.Context) {
	svc := GetService()

	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Session not found"})
		return
	}

	session, err := svc.manager.FindSession(c.Request.Context(), id)
	if errors.Is(err, session_store.ErrNotFound) {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Session not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to get session"})
		return
	}

	c.JSON(http.StatusOK, toSDKSession(session))
}

// ListSessions handles GET requests to list all sessions
func ListSessions(c *gin.Context) {
	svc := GetService()

	sessions, err := svc.manager.ListSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to list sessions"})
		return
	}

	resp := make([]sdk.Session, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, toSDKSession(session))
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteSession handles DELETE requests to remove an existing session
func DeleteSession(c *gin.Context) {
	svc := GetService()

	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Session not found"})
		return
	}

	if err := svc.manager.RemoveSession(c.Request.Context(), id); err != nil {
		if errors.Is(err, session_store.ErrNotFound) {
			c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to delete session"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Helper method to strip the port from a request's remote address
func peerAddress(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// Helper method to convert an internal session to its sdk representation
func toSDKSession(session *session_store.Session) sdk.Session {
	resp := sdk.Session{
		ID:            session.ID.String(),
		OriginAddress: session.OriginAddress,
		CreatedAt:     session.CreatedAt,
		LastTouchedAt: session.LastTouchedAt,
		History:       []sdk.HistoryEntry{},
	}

	for _, entry := range session_store.DecodeHistory(session.History) {
		resp.History = append(resp.History, sdk.HistoryEntry{
			Timestamp: entry.Timestamp,
			Code:      entry.Code,
		})
	}

	return resp
}

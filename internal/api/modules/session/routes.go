package session_module

import "github.com/gin-gonic/gin"

// Register routes for the session module
func RegisterRoutes(g *gin.RouterGroup) {
	// Create base group for session routes
	group := g.Group("/sessions")

	group.POST("", CreateSession)                // Start a new simulator session
	group.GET("", ListSessions)                  // List all sessions
	group.GET("/:uuid", GetSession)              // Get an existing session by UUID
	group.DELETE("/:uuid", DeleteSession)        // Remove an existing session
	group.POST("/:uuid/update-code", UpdateCode) // Record executed code against a session
}

package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/alokugamage/eightbit-backend/pkg/sdk"
	"github.com/alokugamage/eightbit-backend/pkg/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	health_module "github.com/alokugamage/eightbit-backend/internal/api/modules/health"
	reference_module "github.com/alokugamage/eightbit-backend/internal/api/modules/reference"
	session_module "github.com/alokugamage/eightbit-backend/internal/api/modules/session"
)

func Start(cfg *utils.Config) {
	// Initialized configuration settings
	port := cfg.GetWithDefault("API_PORT", "8080")

	// Add app level settings/routes
	engine := gin.Default()
	engine.NoRoute(noRouteHandler)

	// Add trusted proxies
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	if err := session_module.Init(cfg); err != nil {
		log.Fatal("[API-MAIN]: Failed to initialize session module: ", err)
	}
	session_module.RegisterRoutes(baseGroup)

	if err := reference_module.Init(cfg); err != nil {
		log.Fatal("[API-MAIN]: Failed to initialize reference module: ", err)
	}
	reference_module.RegisterRoutes(baseGroup)

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}

// noRouteHandler returns a uniform error body for unknown routes
func noRouteHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Not found"})
}

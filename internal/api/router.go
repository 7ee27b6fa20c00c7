package api

import (
	"ideahub/internal/config"     // Configuration
	"ideahub/internal/middleware" // Custom middleware
	"ideahub/internal/storage"    // Upload backends
	"ideahub/internal/store"      // Persistence layer

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Deps are the collaborators every handler is built from
type Deps struct {
	Config  *config.Config  // Application configuration
	Store   *store.Store    // Persistence layer
	Redis   *redis.Client   // Cache and token denylist
	Storage storage.Storage // Upload backend
}

// NewRouter wires every route onto a new gin engine
func NewRouter(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigin)) // Let the frontend call the API

	r.GET("/healthz", HealthHandler(d.Store, d.Redis))        // Liveness endpoint
	r.GET("/uploads/:filename", ServeFileHandler(d.Storage)) // Public uploaded images

	apiGroup := r.Group("/api")
	// Public routes
	apiGroup.POST("/register", RegisterHandler(d.Store))                           // Registration endpoint
	apiGroup.POST("/login", LoginHandler(d.Store, cfg.JWTSecret, cfg.JWTTTL))      // Login endpoint
	apiGroup.GET("/ideas", ListIdeasHandler(d.Store, d.Redis, cfg.FeedCacheTTL))   // Public feed
	apiGroup.GET("/ideas/:id", GetIdeaHandler(d.Store, d.Redis, cfg.FeedCacheTTL)) // Idea detail

	// Protected routes: verify the token, then resolve the principal
	authed := apiGroup.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, d.Redis), middleware.CurrentUserMiddleware(d.Store))
	authed.POST("/logout", LogoutHandler(d.Redis))                      // Revoke the current token
	authed.POST("/upload", UploadHandler(d.Storage, cfg.MaxUploadSize)) // Image upload
	authed.POST("/ideas", SubmitIdeaHandler(d.Store, d.Redis))          // Submit an idea
	authed.GET("/draft", GetDraftHandler(d.Store))                      // Read draft
	authed.POST("/draft", SaveDraftHandler(d.Store))                    // Save draft
	authed.DELETE("/draft", DeleteDraftHandler(d.Store))                // Clear draft

	return r, nil
}

package api

import (
	"context"                     // Context for Redis operations
	"errors"                      // Error inspection
	"ideahub/internal/domain"     // Importing domain models
	"ideahub/internal/middleware" // Auth context helpers
	"ideahub/internal/storage"    // Upload name rules
	"ideahub/internal/store"      // Persistence layer
	"ideahub/internal/utils"      // Utility functions
	"net/http"                    // HTTP status codes
	"strconv"                     // String conversion
	"strings"                     // String manipulation
	"time"                        // Time durations
	"unicode/utf8"                // Length limits count characters

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// TimeLayout is how idea timestamps are shown to clients
const TimeLayout = "2006-01-02 15:04"

// Cache keys for the public read paths. The feed is cached per generation;
// every submission bumps the generation so older entries are never read again.
const (
	feedGenerationKey  = "ideas:feed:gen"
	feedCacheKeyPrefix = "ideas:feed:"
	ideaCacheKeyPrefix = "ideas:detail:"
)

// SubmitIdeaRequest represents a new idea
type SubmitIdeaRequest struct {
	Title         string  `json:"title"`          // Idea title
	Content       string  `json:"content"`        // Idea body
	ImageFilename *string `json:"image_filename"` // Name returned by the upload endpoint
}

// IdeaSummary is one entry of the public feed
type IdeaSummary struct {
	ID             uint    `json:"id"`              // Idea ID
	Title          string  `json:"title"`           // Idea title
	ContentSummary string  `json:"content_summary"` // Content cut to 100 characters
	Author         string  `json:"author"`          // Author username
	CreatedAt      string  `json:"created_at"`      // Formatted creation time
	ImageURL       *string `json:"image_url"`       // Image location or null
}

// IdeaDetail is the full view of one idea
type IdeaDetail struct {
	ID        uint    `json:"id"`         // Idea ID
	Title     string  `json:"title"`      // Idea title
	Content   string  `json:"content"`    // Full content
	Author    string  `json:"author"`     // Author username
	CreatedAt string  `json:"created_at"` // Formatted creation time
	ImageURL  *string `json:"image_url"`  // Image location or null
}

// imageURL derives the public URL of a stored upload
func imageURL(filename *string) *string {
	if filename == nil || *filename == "" {
		return nil
	}
	u := "/uploads/" + *filename
	return &u
}

// authorName returns the preloaded author's username
func authorName(idea *domain.Idea) string {
	if idea.User == nil {
		return ""
	}
	return idea.User.Username
}

// SubmitIdeaHandler publishes an idea and clears the author's draft
func SubmitIdeaHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.UserFrom(c) // Get the principal from context
		if !ok {
			respondError(c, newError(ErrAuth, "Unauthorized"), nil)
			return
		}
		var req SubmitIdeaRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, newError(ErrValidation, "Request body cannot be empty"), nil)
			return
		}
		// Title and content are both required
		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
			respondError(c, newError(ErrValidation, "Title and content are required"), nil)
			return
		}
		if utf8.RuneCountInString(req.Title) > domain.MaxTitleLength {
			respondError(c, newError(ErrValidation, titleTooLong), nil)
			return
		}
		if req.ImageFilename != nil && *req.ImageFilename == "" {
			req.ImageFilename = nil // Treat an empty name as no image
		}
		// Only names produced by the upload endpoint are accepted
		if req.ImageFilename != nil && !storage.IsSafeName(*req.ImageFilename) {
			respondError(c, newError(ErrValidation, "Invalid image filename"), nil)
			return
		}
		// Create the idea and delete the draft atomically
		idea, err := s.SubmitIdea(c.Request.Context(), user.ID, req.Title, req.Content, req.ImageFilename)
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		invalidateFeed(c.Request.Context(), rdb, idea.ID) // Next listing rebuilds from the database
		// Log successful submission
		logrus.WithFields(logrus.Fields{
			"user_id":   user.ID,                         // User ID
			"idea_id":   idea.ID,                         // Idea ID
			"has_image": idea.ImageFilename != nil,       // Image attached
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Idea submitted")
		c.JSON(http.StatusCreated, gin.H{"message": "Idea submitted successfully", "id": idea.ID})
	}
}

// ListIdeasHandler returns the public feed, newest first
func ListIdeasHandler(s *store.Store, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context() // Context for Redis and DB operations
		// The generation must be read before the ideas
		gen, err := utils.CacheGeneration(ctx, rdb, feedGenerationKey)
		useCache := err == nil
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Warn("Feed cache unavailable, reading from database")
		}
		cacheKey := feedCacheKey(gen) // Cache key for this generation
		var cached []IdeaSummary      // Cached feed
		// If cached data found, return it
		if useCache {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
		ideas, err := s.ListIdeas(ctx) // Fetch all ideas with authors
		if err != nil {
			respondError(c, err, nil)
			return
		}
		resp := make([]IdeaSummary, 0, len(ideas)) // Never encode as null
		// Map ideas to response format
		for i := range ideas {
			idea := &ideas[i]
			resp = append(resp, IdeaSummary{
				ID:             idea.ID,                                 // Idea ID
				Title:          idea.Title,                              // Idea title
				ContentSummary: utils.Summarize(idea.Content),           // Truncated content
				Author:         authorName(idea),                        // Author username
				CreatedAt:      idea.CreatedAt.UTC().Format(TimeLayout), // Formatted timestamp
				ImageURL:       imageURL(idea.ImageFilename),            // Image location
			})
		}
		// Cache the response for future requests
		if useCache {
			_ = utils.SetCache(ctx, rdb, cacheKey, resp, ttl)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetIdeaHandler returns one idea with its full content
func GetIdeaHandler(s *store.Store, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64) // Parse idea ID
		if err != nil || id == 0 {
			respondError(c, newError(ErrNotFound, "Idea not found"), nil)
			return
		}
		ctx := c.Request.Context()
		cacheKey := ideaCacheKeyPrefix + strconv.FormatUint(id, 10) // Cache key for this idea
		var cached IdeaDetail
		// Ideas are immutable, so a cached copy never goes stale
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		idea, err := s.GetIdea(ctx, uint(id))
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, newError(ErrNotFound, "Idea not found"), nil)
			return
		}
		if err != nil {
			respondError(c, err, logrus.Fields{"idea_id": id})
			return
		}
		resp := IdeaDetail{
			ID:        idea.ID,                                 // Idea ID
			Title:     idea.Title,                              // Idea title
			Content:   idea.Content,                            // Full content
			Author:    authorName(idea),                        // Author username
			CreatedAt: idea.CreatedAt.UTC().Format(TimeLayout), // Formatted timestamp
			ImageURL:  imageURL(idea.ImageFilename),            // Image location
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, ttl) // Cache the idea
		c.JSON(http.StatusOK, resp)
	}
}

// feedCacheKey names the cached feed of one generation
func feedCacheKey(gen int64) string {
	return feedCacheKeyPrefix + strconv.FormatInt(gen, 10)
}

// invalidateFeed moves the feed to a new generation. The idea is already
// committed, so a failure is logged rather than returned to the client.
func invalidateFeed(ctx context.Context, rdb *redis.Client, ideaID uint) {
	// Finish the bump even if the client has gone away
	if _, err := utils.BumpGeneration(context.WithoutCancel(ctx), rdb, feedGenerationKey); err != nil {
		logrus.WithFields(logrus.Fields{
			"idea_id": ideaID,      // Idea ID
			"error":   err.Error(), // Error message
		}).Error("Feed cache invalidation failed")
	}
}

package api

import (
	"errors"                      // Error inspection
	"ideahub/internal/domain"     // Column limits
	"ideahub/internal/middleware" // Auth context helpers
	"ideahub/internal/store"      // Persistence layer
	"io"                          // io.EOF for empty bodies
	"net/http"                    // HTTP status codes
	"unicode/utf8"                // Length limits count characters

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// DraftRequest represents a draft save; missing fields become empty strings
type DraftRequest struct {
	Title   string `json:"title"`   // Draft title
	Content string `json:"content"` // Draft body
}

// DraftResponse is the stored draft
type DraftResponse struct {
	Title   string `json:"title"`   // Draft title
	Content string `json:"content"` // Draft body
}

// GetDraftHandler returns the caller's draft or null
func GetDraftHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.UserFrom(c) // Get the principal from context
		if !ok {
			respondError(c, newError(ErrAuth, "Unauthorized"), nil)
			return
		}
		draft, err := s.GetDraft(c.Request.Context(), user.ID) // Fetch draft
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		// No draft is not an error
		if draft == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, DraftResponse{Title: draft.Title, Content: draft.Content})
	}
}

// SaveDraftHandler creates or overwrites the caller's draft
func SaveDraftHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.UserFrom(c) // Get the principal from context
		if !ok {
			respondError(c, newError(ErrAuth, "Unauthorized"), nil)
			return
		}
		var req DraftRequest // Bind JSON request to struct
		// An empty body saves an empty draft
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, newError(ErrValidation, "Invalid request"), nil)
			return
		}
		if utf8.RuneCountInString(req.Title) > domain.MaxTitleLength {
			respondError(c, newError(ErrValidation, titleTooLong), nil)
			return
		}
		if err := s.SaveDraft(c.Request.Context(), user.ID, req.Title, req.Content); err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		// Log the save
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // User ID
		}).Info("Draft saved")
		c.JSON(http.StatusOK, gin.H{"message": "Draft saved"})
	}
}

// DeleteDraftHandler clears the caller's draft
func DeleteDraftHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.UserFrom(c) // Get the principal from context
		if !ok {
			respondError(c, newError(ErrAuth, "Unauthorized"), nil)
			return
		}
		if err := s.DeleteDraft(c.Request.Context(), user.ID); err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Draft cleared"})
	}
}

package middleware

import (
	"errors"                  // Error inspection
	"ideahub/internal/domain" // Importing domain models
	"ideahub/internal/store"  // Persistence layer
	"net/http"                // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CurrentUserMiddleware resolves the token subject to a user on each request.
// Must run after JWTAuthMiddleware.
func CurrentUserMiddleware(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c) // Get claims from context
		// Check if claims exist in context
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		user, err := s.UserByEmail(c.Request.Context(), claims.Subject) // Fetch user from database
		if errors.Is(err, store.ErrNotFound) {
			// A valid token for a user that no longer exists
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email": claims.Subject, // Token subject
				"error": err.Error(),    // Error message
			}).Error("Failed to resolve current user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.Set(UserKey, user) // Store the principal in context
		c.Next()             // Proceed to the next handler
	}
}

// UserFrom returns the principal stored by CurrentUserMiddleware
func UserFrom(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

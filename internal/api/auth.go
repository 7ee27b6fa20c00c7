package api

import (
	"errors"                      // Error inspection
	"ideahub/internal/domain"     // Column limits
	"ideahub/internal/middleware" // Auth context helpers
	"ideahub/internal/store"      // Persistence layer
	"ideahub/internal/utils"      // Utility functions
	"net/http"                    // HTTP status codes
	"strings"                     // String manipulation
	"time"                        // Token lifetime
	"unicode/utf8"                // Length limits count characters

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username"` // Optional, defaults to the email
	Email    string `json:"email"`    // Email must be provided
	Password string `json:"password"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email"`    // Email must be provided
	Password string `json:"password"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	AccessToken string `json:"access_token"` // JWT token
}

// RegisterHandler creates a new user account
func RegisterHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, newError(ErrValidation, "Invalid request"), nil)
			return
		}
		req.Email = strings.TrimSpace(req.Email)       // Ignore surrounding whitespace
		req.Username = strings.TrimSpace(req.Username) // Ignore surrounding whitespace
		// Validate email and password
		if req.Email == "" || req.Password == "" {
			respondError(c, newError(ErrValidation, "Email and password are required"), nil)
			return
		}
		// Reject values wider than their columns
		if utf8.RuneCountInString(req.Email) > domain.MaxEmailLength {
			respondError(c, newError(ErrValidation, emailTooLong), nil)
			return
		}
		if utf8.RuneCountInString(req.Username) > domain.MaxUsernameLength {
			respondError(c, newError(ErrValidation, usernameTooLong), nil)
			return
		}
		// Hash the password and create the user
		user, err := s.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password)
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			respondError(c, newError(ErrConflict, "Email already registered"), nil)
			return
		case errors.Is(err, store.ErrUsernameTaken):
			respondError(c, newError(ErrConflict, "Username already taken"), nil)
			return
		case err != nil:
			respondError(c, err, logrus.Fields{"email": req.Email})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(s *store.Store, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, newError(ErrValidation, "Invalid request"), nil)
			return
		}
		req.Email = strings.TrimSpace(req.Email) // Ignore surrounding whitespace
		if req.Email == "" || req.Password == "" {
			respondError(c, newError(ErrValidation, "Email and password are required"), nil)
			return
		}
		// Unknown email and wrong password share one answer
		user, err := s.Authenticate(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, newError(ErrAuth, "Invalid credentials"), nil)
			return
		}
		if err != nil {
			respondError(c, err, logrus.Fields{"email": req.Email})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.Email, jwtSecret, ttl)
		if err != nil {
			// If token generation fails, return internal server error
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{AccessToken: token})
	}
}

// LogoutHandler revokes the presented token until it would have expired
func LogoutHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFrom(c) // Get claims from context
		if !ok {
			respondError(c, newError(ErrAuth, "Unauthorized"), nil)
			return
		}
		if err := utils.RevokeToken(c.Request.Context(), rdb, claims.ID, claims.Remaining()); err != nil {
			respondError(c, err, logrus.Fields{"email": claims.Subject})
			return
		}
		// Log the logout
		logrus.WithFields(logrus.Fields{
			"email": claims.Subject, // Token subject
		}).Info("Token revoked")
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

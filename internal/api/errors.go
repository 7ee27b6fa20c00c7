package api

import (
	"errors"                  // Sentinel errors
	"ideahub/internal/domain" // Column limits
	"net/http"                // HTTP status codes
	"strconv"                 // Limits in messages

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Error taxonomy surfaced to clients
var (
	ErrValidation = errors.New("validation error") // Missing or malformed input, 400
	ErrConflict   = errors.New("conflict")         // Duplicate registration, 400
	ErrAuth       = errors.New("unauthorized")     // Bad credentials or token, 401
	ErrNotFound   = errors.New("not found")        // Unknown idea or file, 404
)

// Messages for input wider than its column
var (
	titleTooLong    = "Title must be at most " + strconv.Itoa(domain.MaxTitleLength) + " characters"
	usernameTooLong = "Username must be at most " + strconv.Itoa(domain.MaxUsernameLength) + " characters"
	emailTooLong    = "Email must be at most " + strconv.Itoa(domain.MaxEmailLength) + " characters"
)

// clientError pairs a taxonomy error with the message shown to the client
type clientError struct {
	kind error
	msg  string
}

func (e *clientError) Error() string { return e.msg }
func (e *clientError) Unwrap() error { return e.kind }

// newError builds a client facing error of the given kind
func newError(kind error, msg string) error {
	return &clientError{kind: kind, msg: msg}
}

// statusFor maps the taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"message": ...}. Unexpected errors are logged and hidden.
func respondError(c *gin.Context, err error, fields logrus.Fields) {
	status := statusFor(err) // Status for the error kind
	var ce *clientError
	if status == http.StatusInternalServerError || !errors.As(err, &ce) {
		if fields == nil {
			fields = logrus.Fields{}
		}
		fields["error"] = err.Error() // Error message
		fields["path"] = c.FullPath() // Route that failed
		logrus.WithFields(fields).Error("Request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"message": ce.msg})
}

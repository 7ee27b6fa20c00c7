package api

import (
	"errors"                      // Error inspection
	"ideahub/internal/middleware" // Auth context helpers
	"ideahub/internal/storage"    // Upload backends
	"io"                          // Seeking back after sniffing
	"net/http"                    // HTTP status codes

	"github.com/dustin/go-humanize"      // Human readable sizes
	"github.com/gabriel-vasile/mimetype" // Content type sniffing
	"github.com/gin-gonic/gin"           // Gin web framework
	"github.com/sirupsen/logrus"         // Logging library
)

// UploadHandler stores a multipart "file" part and returns its stored name
func UploadHandler(st storage.Storage, maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.UserFrom(c) // Get the principal from context
		if !ok {
			respondError(c, newError(ErrAuth, "Unauthorized"), nil)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize) // Cap the body
		fh, err := c.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respondError(c, newError(ErrValidation, "File exceeds the "+humanize.Bytes(uint64(maxSize))+" limit"), nil)
				return
			}
			// Missing part, non-multipart body or an unnamed part
			respondError(c, newError(ErrValidation, "No file part in the request"), nil)
			return
		}
		if fh.Filename == "" {
			respondError(c, newError(ErrValidation, "No file selected"), nil)
			return
		}
		name := storage.UniqueName(fh.Filename) // Sanitized, collision free name
		if name == "" {
			respondError(c, newError(ErrValidation, "Invalid filename"), nil)
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		defer f.Close()
		mtype, err := mimetype.DetectReader(f) // Sniff the content type
		if err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID})
			return
		}
		if err := st.Save(c.Request.Context(), name, f, fh.Size, mtype.String()); err != nil {
			respondError(c, err, logrus.Fields{"user_id": user.ID, "filename": name})
			return
		}
		// Log successful upload
		logrus.WithFields(logrus.Fields{
			"user_id":      user.ID,                         // User ID
			"filename":     name,                            // Stored name
			"size":         humanize.Bytes(uint64(fh.Size)), // Upload size
			"content_type": mtype.String(),                  // Sniffed type
		}).Info("File uploaded")
		c.JSON(http.StatusOK, gin.H{"message": "File uploaded successfully", "filename": name})
	}
}

// ServeFileHandler streams a stored upload by name
func ServeFileHandler(st storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filename")
		// Anything that is not a bare sanitized name cannot exist in storage
		if !storage.IsSafeName(name) {
			respondError(c, newError(ErrNotFound, "File not found"), nil)
			return
		}
		obj, err := st.Open(c.Request.Context(), name)
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, newError(ErrNotFound, "File not found"), nil)
			return
		}
		if err != nil {
			respondError(c, err, logrus.Fields{"filename": name})
			return
		}
		defer obj.Body.Close()
		c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, map[string]string{
			"X-Content-Type-Options": "nosniff",
		})
	}
}

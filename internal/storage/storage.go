// Package storage keeps uploaded images on local disk or in an S3-compatible bucket.
package storage

import (
	"context" // Request scoped cancellation
	"errors"  // Sentinel errors
	"io"      // Streaming bodies
	"regexp"  // Character filtering
	"strings" // String manipulation
	"unicode" // ASCII range

	"github.com/google/uuid"         // Unique name prefixes
	"golang.org/x/text/unicode/norm" // Unicode decomposition
)

// ErrNotFound is returned by Open when no object exists under the name
var ErrNotFound = errors.New("file not found")

// MaxNameLength matches the width of the idea image_filename column
const MaxNameLength = 100

// Object describes a stored file being read back
type Object struct {
	Body        io.ReadCloser // Caller closes
	Size        int64         // Length in bytes
	ContentType string        // MIME type
}

// Storage is implemented by every upload backend
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error // Store under name
	Open(ctx context.Context, name string) (*Object, error)                                   // Read back by name
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`) // Everything outside the portable set

var windowsDeviceNames = map[string]bool{
	"CON": true, "AUX": true, "COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "PRN": true, "NUL": true,
}

// SanitizeFilename reduces a client supplied name to a safe bare filename.
// It may return "" when nothing usable is left.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r) // Accents decompose and their marks are dropped
		}
	}
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(b.String()) // Path separators become spaces
	name = strings.Join(strings.Fields(name), "_")                      // Whitespace runs become one underscore
	name = unsafeChars.ReplaceAllString(name, "")                       // Drop anything else
	name = strings.Trim(name, "._")                                     // No hidden or dangling names

	if name != "" && windowsDeviceNames[strings.ToUpper(strings.SplitN(name, ".", 2)[0])] {
		name = "_" + name
	}
	return name
}

// IsSafeName reports whether name is already a sanitized bare filename.
func IsSafeName(name string) bool {
	return name != "" && len(name) <= MaxNameLength && SanitizeFilename(name) == name
}

// UniqueName sanitizes name and prefixes it with a fresh uuid so two uploads never collide.
func UniqueName(name string) string {
	clean := SanitizeFilename(name)
	if clean == "" {
		return ""
	}
	prefix := uuid.NewString() + "_" // Fresh per upload
	if room := MaxNameLength - len(prefix); len(clean) > room {
		ext := ""
		if i := strings.LastIndex(clean, "."); i > 0 && len(clean)-i <= 10 {
			ext = clean[i:]
		}
		clean = strings.TrimRight(clean[:room-len(ext)], "._") + ext
	}
	return prefix + clean
}

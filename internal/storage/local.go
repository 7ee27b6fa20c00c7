package storage

import (
	"context"       // Request scoped cancellation
	"errors"        // Error inspection
	"fmt"           // Error wrapping
	"io"            // Streaming bodies
	"io/fs"         // Not-exist errors
	"mime"          // Content type from extension
	"os"            // File system access
	"path/filepath" // Path handling
)

// LocalStorage writes uploads into a single directory
type LocalStorage struct {
	dir string // Upload directory
}

// NewLocalStorage creates dir if needed
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// path confines name to the upload directory
func (s *LocalStorage) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save writes the file through a temp file so readers never see a partial upload
func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	tmp, err := os.CreateTemp(s.dir, ".upload-*") // Hidden temp file in the same directory
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // Gone after the rename, cleaned up on failure

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err // Request abandoned
	}
	return os.Rename(tmp.Name(), s.path(name)) // Publish atomically
}

// Open returns ErrNotFound for names that do not exist or are not regular files
func (s *LocalStorage) Open(_ context.Context, name string) (*Object, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, ErrNotFound // Directories and devices are never uploads
	}
	ct := mime.TypeByExtension(filepath.Ext(name)) // Type from the stored extension
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &Object{Body: f, Size: info.Size(), ContentType: ct}, nil
}

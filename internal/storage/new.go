package storage

import (
	"context"                 // Request scoped cancellation
	"fmt"                     // Error formatting
	"ideahub/internal/config" // Configuration
)

// New builds the backend named by cfg.StorageBackend
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageMinio:
		return NewMinioStorage(ctx, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket) // S3-compatible bucket
	case config.StorageLocal:
		return NewLocalStorage(cfg.UploadDir) // Local directory
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}

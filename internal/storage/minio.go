package storage

import (
	"context" // Request scoped cancellation
	"errors"  // Error construction
	"fmt"     // Error wrapping
	"io"      // Streaming bodies
	"strings" // Endpoint parsing

	"github.com/minio/minio-go/v7"                 // S3 compatible client
	"github.com/minio/minio-go/v7/pkg/credentials" // Static access keys
)

const uploadPrefix = "uploads/" // Key prefix for stored uploads

// MinioStorage keeps uploads as objects in an S3-compatible bucket
type MinioStorage struct {
	client *minio.Client // Bucket client
	bucket string        // Bucket holding the uploads
}

// splitEndpoint turns S3_ENDPOINT into the host form minio-go expects.
// "minio:9000" and "http://minio:9000" are plain HTTP, "https://..." is TLS.
func splitEndpoint(raw string) (host string, secure bool, err error) {
	scheme, host, found := strings.Cut(strings.TrimSpace(raw), "://")
	if !found {
		scheme, host = "http", scheme // No scheme given
	}
	switch scheme {
	case "http", "https":
	default:
		return "", false, fmt.Errorf("unsupported endpoint scheme %q", scheme)
	}
	host = strings.TrimSuffix(host, "/")
	if host == "" {
		return "", false, errors.New("empty S3 endpoint")
	}
	if strings.ContainsAny(host, "/?#") {
		return "", false, fmt.Errorf("S3 endpoint %q must not contain a path", raw)
	}
	return host, scheme == "https", nil
}

// NewMinioStorage connects to the endpoint and checks that the bucket exists
func NewMinioStorage(ctx context.Context, rawEndpoint, accessKey, secretKey, bucket string) (*MinioStorage, error) {
	host, secure, err := splitEndpoint(rawEndpoint) // Parse the endpoint
	if err != nil {
		return nil, err
	}
	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""), // Access keys
		Secure: secure,                                            // TLS
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return newMinioStorage(ctx, client, bucket)
}

// newMinioStorage wraps an existing client after checking the bucket
func newMinioStorage(ctx context.Context, client *minio.Client, bucket string) (*MinioStorage, error) {
	exists, err := client.BucketExists(ctx, bucket) // Check the bucket
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("minio bucket does not exist: %s", bucket)
	}
	return &MinioStorage{client: client, bucket: bucket}, nil
}

// Save uploads r under the uploads/ prefix with its sniffed content type
func (s *MinioStorage) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, uploadPrefix+name, r, size, minio.PutObjectOptions{
		ContentType: contentType, // Served back on download
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", name, err)
	}
	return nil
}

// Open streams an upload back, ErrNotFound when the key is missing
func (s *MinioStorage) Open(ctx context.Context, name string) (*Object, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, uploadPrefix+name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}
	info, err := obj.Stat() // GetObject is lazy; Stat surfaces a missing key
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" { // S3 error code for a missing object
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat object %s: %w", name, err)
	}
	return &Object{Body: obj, Size: info.Size, ContentType: info.ContentType}, nil
}

package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the object storage interface behind uploaded audio artifacts
// and exported ebooks. The backend choice happens once, at wiring time.
type Storage interface {
	// Upload writes the object and returns its access URL.
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Download opens the object for reading.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetPresignedDownloadURL returns a time-limited download URL.
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the object is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Type returns the backend type.
	Type() string
}

// Backend types.
const (
	TypeLocal = "local" // local filesystem
	TypeOSS   = "oss"   // Aliyun OSS
)

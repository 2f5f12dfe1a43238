package storage

import (
	"context"
	"io"
	"log/slog"

	"github.com/canstudy/tracker/internal/config"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Storage is the blob store behind uploaded documents.
type Storage interface {
	Save(path string, file io.Reader) error
	Open(path string) (io.ReadCloser, error)
	Delete(path string) error
}

// Signer is implemented by backends that can hand out direct download links.
type Signer interface {
	SignedURL(path string) (string, error)
}

// New builds the storage backend selected by STORAGE_DRIVER.
func New(ctx context.Context, c *config.Config) (Storage, error) {
	if c.StorageDriver == DriverS3 {
		slog.Info("initializing S3 storage", "bucket", c.S3Bucket, "region", c.S3Region, "endpoint", c.S3Endpoint)
		return NewS3Storage(ctx, S3Config{
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Endpoint:      c.S3Endpoint,
			PresignExpiry: c.S3PresignExpiry,
		})
	}

	slog.Info("initializing local storage", "dir", c.UploadDir)
	return NewLocalStorage(c.UploadDir)
}

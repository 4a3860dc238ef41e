package repository

import (
	"context"
	"io"
)

// StorageRepository defines the interface for remote object storage (S3).
type StorageRepository interface {
	Open(ctx context.Context, profile, uri string) (io.ReadCloser, error)
	Upload(ctx context.Context, profile, uri, localPath string) error
}

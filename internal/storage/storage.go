package storage

import (
	"context"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// FileStorage keeps generated documents. Objects are addressed by the key
// returned from UploadFile.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, objectName, contentType string) (string, error)

	GetFile(ctx context.Context, key string) ([]byte, error)

	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

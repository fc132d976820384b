package port

import (
	"context"
	"time"
)

// ObjectStorage is an opaque object store. Errors other than
// domain.ErrObjectNotFound are treated as retryable.
type ObjectStorage interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Put(ctx context.Context, path string, data []byte, contentType string) error
	Delete(ctx context.Context, path string) error
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for storing résumé blobs. Keys are
// namespaced per user; Save appends a uniqueness token to avoid collisions.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}

package storage

import (
	"context"
	"io"
)

// BlobStore is the key-value collaborator the record store persists into. Load reports
// false when nothing has been saved under key yet.
type BlobStore interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Close releases the backend's connections when it holds any.
func Close(b BlobStore) error {
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/chartmuseum/storage"
)

const blobExt = ".json"

// LocalStore keeps each blob as a JSON file under a root directory.
type LocalStore struct {
	backend *storage.LocalFilesystemBackend
}

// NewLocalStore builds a LocalStore backed by chartmuseum's filesystem backend.
func NewLocalStore(rootDir string) (*LocalStore, error) {
	if strings.TrimSpace(rootDir) == "" {
		return nil, fmt.Errorf("local storage directory must be provided")
	}
	return &LocalStore{backend: storage.NewLocalFilesystemBackend(rootDir)}, nil
}

func (s *LocalStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	object, err := s.backend.GetObject(objectName(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("local read %s: %w", key, err)
	}
	return object.Content, true, nil
}

func (s *LocalStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.backend.PutObject(objectName(key), data); err != nil {
		return fmt.Errorf("local write %s: %w", key, err)
	}
	return nil
}

func objectName(key string) string {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if strings.HasSuffix(key, blobExt) {
		return key
	}
	return key + blobExt
}

var _ BlobStore = (*LocalStore)(nil)

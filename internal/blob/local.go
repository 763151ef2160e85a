package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LocalStore writes uploads to a directory on the local filesystem.
type LocalStore struct {
	dir string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the file under a timestamp-prefixed name so repeated uploads of
// the same filename never collide, and returns the stored path as the URI.
func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	// filepath.Base strips any directory components a client smuggles into
	// the filename.
	stored := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(name))
	path := filepath.Join(s.dir, stored)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

package attach

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStorage implements the storage boundary on the local filesystem,
// used by the CLI. Files land under <root>/files/<ownerID>/.
type DiskStorage struct {
	root string
}

// NewDiskStorage creates a disk-backed attachment store rooted at dir
func NewDiskStorage(dir string) *DiskStorage {
	return &DiskStorage{root: dir}
}

// Upload writes the bytes to disk and returns a file URL for them
func (s *DiskStorage) Upload(_ context.Context, ownerID, filename string, data []byte) (string, error) {
	dir := filepath.Join(s.root, "files", ownerID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create attachment directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	return "file://" + path, nil
}

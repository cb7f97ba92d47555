package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no blob exists under the requested name.
var ErrNotFound = errors.New("blob not found")

// Store persists uploaded image bytes keyed by generated filename.
type Store interface {
	Put(filename string, data []byte) error
	Get(filename string) ([]byte, error)
}

// FileStore is a filesystem-backed Store rooted at a single directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the root directory if needed and returns a store
// over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Put writes a blob. An existing blob with the same name is overwritten;
// names are uuid-derived so collisions do not occur in practice.
func (s *FileStore) Put(filename string, data []byte) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to store blob %s: %w", filename, err)
	}
	return nil
}

// Get reads a blob, returning ErrNotFound when it is absent.
func (s *FileStore) Get(filename string) ([]byte, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", filename, err)
	}
	return data, nil
}

// resolve rejects names that would escape the store directory.
func (s *FileStore) resolve(filename string) (string, error) {
	clean := filepath.Base(filepath.Clean(filename))
	if clean == "." || clean == ".." || strings.ContainsAny(filename, "/\\") {
		return "", fmt.Errorf("invalid blob name: %s", filename)
	}
	return filepath.Join(s.dir, clean), nil
}

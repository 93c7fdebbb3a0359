package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore implements Store for the local filesystem
type LocalStore struct {
	basePath string
}

// NewLocalStore creates a new local store instance
func NewLocalStore(basePath string) (*LocalStore, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	return &LocalStore{
		basePath: basePath,
	}, nil
}

// Save writes an artifact to the local export directory
func (s *LocalStore) Save(ctx context.Context, name string, data io.Reader) error {
	fullPath := filepath.Join(s.basePath, filepath.Base(name))

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath) // Clean up on error
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Load retrieves an artifact from the local export directory
func (s *LocalStore) Load(ctx context.Context, name string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, filepath.Base(name))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("artifact not found: %s", name)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

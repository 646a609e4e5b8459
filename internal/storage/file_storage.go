package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage lays documents out as <root>/<module>/<file>.
type FileStorage struct {
	mu   sync.Mutex
	root string
}

func NewFileStorage(root string) (*FileStorage, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &FileStorage{root: root}, nil
}

// Path returns where a document would be written.
func (s *FileStorage) Path(module, fileName string) string {
	return filepath.Join(s.root, module, fileNameOrDefault(fileName))
}

func (s *FileStorage) Write(module, fileName, content string) error {
	if module == "" {
		return errors.New("module is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(module, fileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: write %s/%s: %w", module, fileNameOrDefault(fileName), err)
	}
	// Write to a sibling file first so readers never see a torn document.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("storage: write %s/%s: %w", module, fileNameOrDefault(fileName), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("storage: write %s/%s: %w", module, fileNameOrDefault(fileName), err)
	}
	return nil
}

func (s *FileStorage) Read(module, fileName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path(module, fileName))
	if err != nil {
		return "", fmt.Errorf("storage: read %s/%s: %w", module, fileNameOrDefault(fileName), err)
	}
	return string(data), nil
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"pastesync/internal/repositories"
)

// DBStorage keeps documents in the settings_documents table.
type DBStorage struct {
	docs repositories.SettingsDocumentRepository
	ctx  context.Context
}

func NewDBStorage(docs repositories.SettingsDocumentRepository) *DBStorage {
	return &DBStorage{docs: docs, ctx: context.Background()}
}

func (s *DBStorage) Write(module, fileName, content string) error {
	if module == "" {
		return errors.New("module is required")
	}
	if err := s.docs.Upsert(s.ctx, module, fileNameOrDefault(fileName), content); err != nil {
		return fmt.Errorf("storage: write %s/%s: %w", module, fileNameOrDefault(fileName), err)
	}
	return nil
}

func (s *DBStorage) Read(module, fileName string) (string, error) {
	doc, err := s.docs.Get(s.ctx, module, fileNameOrDefault(fileName))
	if err != nil {
		return "", fmt.Errorf("storage: read %s/%s: %w", module, fileNameOrDefault(fileName), err)
	}
	if doc == nil {
		return "", fmt.Errorf("storage: read %s/%s: %w", module, fileNameOrDefault(fileName), ErrNotExist)
	}
	return doc.Content, nil
}

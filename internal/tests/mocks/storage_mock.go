package mocks

import (
	"fmt"
	"sync"

	"pastesync/internal/storage"
)

type StorageMock struct {
	WriteFunc func(module, fileName, content string) error
	ReadFunc  func(module, fileName string) (string, error)

	mu   sync.Mutex
	Docs map[string]string
}

func docKey(module, fileName string) string {
	if fileName == "" {
		fileName = "settings.json"
	}
	return module + "/" + fileName
}

func (m *StorageMock) Write(module, fileName, content string) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(module, fileName, content)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Docs == nil {
		m.Docs = make(map[string]string)
	}
	m.Docs[docKey(module, fileName)] = content
	return nil
}

func (m *StorageMock) Read(module, fileName string) (string, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(module, fileName)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.Docs[docKey(module, fileName)]
	if !ok {
		return "", fmt.Errorf("mock read %s: %w", docKey(module, fileName), storage.ErrNotExist)
	}
	return content, nil
}

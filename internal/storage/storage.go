// Package storage provides the durable locations module settings are
// written to.
package storage

import (
	"io/fs"

	"pastesync/internal/models"
)

// ErrNotExist is returned by Read when nothing was stored at a location.
var ErrNotExist = fs.ErrNotExist

// Storage writes and reads settings documents keyed by module and file name.
// An empty file name selects the module's primary settings file.
type Storage interface {
	Write(module, fileName, content string) error
	Read(module, fileName string) (string, error)
}

func fileNameOrDefault(fileName string) string {
	if fileName == "" {
		return models.SettingsFileName
	}
	return fileName
}

package services

import (
	"pastesync/internal/repositories"
	"pastesync/internal/storage"

	"gorm.io/gorm"
)

// DbServices aggregates the collaborators backed by the database.
type DbServices struct {
	Documents storage.Storage
	Flags     *RepositoryFlagStore
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB) *DbServices {
	documentRepo := repositories.NewSettingsDocumentRepository(db)
	flagRepo := repositories.NewFlagRepository(db)

	return &DbServices{
		Documents: storage.NewDBStorage(documentRepo),
		Flags:     NewRepositoryFlagStore(flagRepo),
	}
}

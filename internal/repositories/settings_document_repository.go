package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pastesync/internal/models"
)

type SettingsDocumentRepository interface {
	// Get returns nil, nil when no document exists for module/fileName.
	Get(ctx context.Context, module, fileName string) (*models.SettingsDocument, error)
	Upsert(ctx context.Context, module, fileName, content string) error
	List(ctx context.Context, module string) ([]models.SettingsDocument, error)
}

type settingsDocumentRepository struct {
	db *gorm.DB
}

func NewSettingsDocumentRepository(db *gorm.DB) SettingsDocumentRepository {
	return &settingsDocumentRepository{db: db}
}

func (r *settingsDocumentRepository) Get(ctx context.Context, module, fileName string) (*models.SettingsDocument, error) {
	var doc models.SettingsDocument
	err := r.db.WithContext(ctx).
		Where("module = ? AND file_name = ?", module, fileName).
		Take(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting document %s/%s: %w", module, fileName, err)
	}
	return &doc, nil
}

func (r *settingsDocumentRepository) Upsert(ctx context.Context, module, fileName, content string) error {
	if module == "" {
		return fmt.Errorf("module is required")
	}
	if fileName == "" {
		return fmt.Errorf("file name is required")
	}
	doc := models.SettingsDocument{
		Module:   module,
		FileName: fileName,
		Content:  content,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "module"}, {Name: "file_name"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"content":    content,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("saving document %s/%s: %w", module, fileName, err)
	}
	return nil
}

func (r *settingsDocumentRepository) List(ctx context.Context, module string) ([]models.SettingsDocument, error) {
	var docs []models.SettingsDocument
	if err := r.db.WithContext(ctx).Where("module = ?", module).Order("file_name").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("listing documents for %s: %w", module, err)
	}
	return docs, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pastesync/internal/models"
)

// FlagRepository stores integer toggles per scope, standing in for the
// OS-level key/value store.
type FlagRepository interface {
	// Get returns ok=false when the flag was never written.
	Get(ctx context.Context, scope, key string) (value int, ok bool, err error)
	Set(ctx context.Context, scope, key string, value int) error
}

type flagRepository struct {
	db *gorm.DB
}

func NewFlagRepository(db *gorm.DB) FlagRepository {
	return &flagRepository{db: db}
}

func (r *flagRepository) Get(ctx context.Context, scope, key string) (int, bool, error) {
	var flag models.FlagSetting
	err := r.db.WithContext(ctx).Where("scope = ? AND flag_key = ?", scope, key).Take(&flag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("getting flag %s/%s: %w", scope, key, err)
	}
	return flag.Value, true, nil
}

func (r *flagRepository) Set(ctx context.Context, scope, key string, value int) error {
	if key == "" {
		return fmt.Errorf("flag key is required")
	}
	flag := models.FlagSetting{Scope: scope, Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "scope"}, {Name: "flag_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&flag).Error
	if err != nil {
		return fmt.Errorf("setting flag %s/%s: %w", scope, key, err)
	}
	return nil
}

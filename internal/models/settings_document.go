package models

import "time"

// SettingsDocument persists one settings file's content for a module.
type SettingsDocument struct {
	ID        uint      `gorm:"primaryKey"`
	Module    string    `gorm:"size:120;not null;uniqueIndex:idx_document_module_file"`
	FileName  string    `gorm:"size:255;not null;uniqueIndex:idx_document_module_file"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// Flag scopes. User flags are writable preferences, machine flags are
// administrator policy and only read.
const (
	FlagScopeUser    = "user"
	FlagScopeMachine = "machine"
)

// FlagSetting persists an integer OS-level toggle.
type FlagSetting struct {
	ID        uint      `gorm:"primaryKey"`
	Scope     string    `gorm:"size:20;not null;uniqueIndex:idx_flag_scope_key"`
	Key       string    `gorm:"column:flag_key;size:255;not null;uniqueIndex:idx_flag_scope_key"`
	Value     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

//go:build !prod

package database

import (
	"path/filepath"

	"pastesync/internal/utils"
)

// GetDefaultDBPath keeps the development database next to go.mod, or in the
// working directory when run outside the source tree.
func GetDefaultDBPath() string {
	root, err := utils.FindProjectRoot()
	if err != nil {
		return "pastesync-dev.db"
	}
	return filepath.Join(root, "pastesync-dev.db")
}

func IsDevelopment() bool {
	return true
}

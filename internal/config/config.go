// Package config loads runtime settings from an optional .env file,
// PASTESYNC_* environment variables and an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"pastesync/internal/debounce"
	"pastesync/internal/utils"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Storage  StorageConfig
	Database DatabaseConfig
	Debounce DebounceConfig
	Policy   PolicyConfig
	Keyring  KeyringConfig
	Log      LogConfig
}

type StorageConfig struct {
	Backend string
	Root    string
}

type DatabaseConfig struct {
	Path string
}

type DebounceConfig struct {
	Interval time.Duration
}

type PolicyConfig struct {
	File string
}

type KeyringConfig struct {
	Backend  string
	FileDir  string `mapstructure:"file_dir"`
	Password string
}

type LogConfig struct {
	Level string
}

func defaultRoot() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pastesync-data"
	}
	return filepath.Join(dir, "pastesync")
}

// Load reads configuration. A missing .env or config file is not an error.
func Load() (Config, error) {
	_ = utils.LoadEnv()

	v := viper.New()
	root := defaultRoot()
	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.root", root)
	v.SetDefault("database.path", filepath.Join(root, "pastesync.db"))
	v.SetDefault("debounce.interval", debounce.DefaultInterval)
	v.SetDefault("policy.file", "")
	v.SetDefault("keyring.backend", "")
	v.SetDefault("keyring.file_dir", filepath.Join(root, "keyring"))
	v.SetDefault("keyring.password", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	if path := os.Getenv("PASTESYNC_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(root)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PASTESYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, c.Validate()
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendFile, BackendSQLite, c.Storage.Backend)
	}
	if c.Debounce.Interval <= 0 {
		return fmt.Errorf("debounce.interval must be positive, got %s", c.Debounce.Interval)
	}
	return nil
}

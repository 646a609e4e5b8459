package policy

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"pastesync/internal/models"
)

// FileSource reads a machine policy file on every query so edits are picked
// up on the next refresh. Verdicts live under [policies], integer flags
// under [flags]:
//
//	[policies]
//	ConfigureEnabledUtilityAdvancedPaste = "disabled"
//
//	[flags]
//	AllowClipboardHistory = 0
//
// A missing file means every verdict is Unset.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) load() (*viper.Viper, error) {
	v := viper.New()
	if s.path == "" {
		return v, nil
	}
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return v, nil
	}
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("policy: read %s: %w", s.path, err)
	}
	return v, nil
}

func (s *FileSource) QueryVerdict(ruleID string) (models.Verdict, error) {
	v, err := s.load()
	if err != nil {
		return models.VerdictUnset, err
	}
	return ParseVerdict(v.Get("policies." + ruleID))
}

func (s *FileSource) GetPolicyFlag(key string) (int, bool, error) {
	v, err := s.load()
	if err != nil {
		return 0, false, err
	}
	k := "flags." + key
	if !v.IsSet(k) {
		return 0, false, nil
	}
	return v.GetInt(k), true, nil
}

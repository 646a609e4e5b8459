// Package policy reads administrator verdicts for governed capabilities.
// Sources are polled; nothing is pushed.
package policy

import (
	"fmt"
	"strings"
	"sync"

	"pastesync/internal/models"
)

// Source answers verdict queries for a rule id.
type Source interface {
	QueryVerdict(ruleID string) (models.Verdict, error)
}

// FlagReader reads machine-scope integer flags. ok is false when the flag is
// not configured.
type FlagReader interface {
	GetPolicyFlag(key string) (value int, ok bool, err error)
}

// StaticSource serves verdicts and flags from memory.
type StaticSource struct {
	mu       sync.RWMutex
	verdicts map[string]models.Verdict
	flags    map[string]int
}

func NewStaticSource() *StaticSource {
	return &StaticSource{
		verdicts: make(map[string]models.Verdict),
		flags:    make(map[string]int),
	}
}

// Set configures the verdict for ruleID; VerdictUnset removes it.
func (s *StaticSource) Set(ruleID string, v models.Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == models.VerdictUnset {
		delete(s.verdicts, ruleID)
		return
	}
	s.verdicts[ruleID] = v
}

func (s *StaticSource) SetFlag(key string, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[key] = value
}

func (s *StaticSource) QueryVerdict(ruleID string) (models.Verdict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.verdicts[ruleID], nil
}

func (s *StaticSource) GetPolicyFlag(key string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.flags[key]
	return v, ok, nil
}

// ParseVerdict accepts "enabled"/"disabled"/"unset" (any case), 1/0, and
// booleans. Nil is Unset.
func ParseVerdict(raw any) (models.Verdict, error) {
	switch v := raw.(type) {
	case nil:
		return models.VerdictUnset, nil
	case bool:
		if v {
			return models.VerdictForceEnabled, nil
		}
		return models.VerdictForceDisabled, nil
	case int:
		return verdictFromInt(v)
	case int64:
		return verdictFromInt(int(v))
	case float64:
		return verdictFromInt(int(v))
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "unset", "notconfigured", "not_configured":
			return models.VerdictUnset, nil
		case "enabled", "enable", "1", "true":
			return models.VerdictForceEnabled, nil
		case "disabled", "disable", "0", "false":
			return models.VerdictForceDisabled, nil
		}
		return models.VerdictUnset, fmt.Errorf("policy: unknown verdict %q", v)
	}
	return models.VerdictUnset, fmt.Errorf("policy: unsupported verdict value %v", raw)
}

func verdictFromInt(v int) (models.Verdict, error) {
	switch v {
	case 1:
		return models.VerdictForceEnabled, nil
	case 0:
		return models.VerdictForceDisabled, nil
	}
	return models.VerdictUnset, fmt.Errorf("policy: unknown verdict %d", v)
}

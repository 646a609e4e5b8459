package services

import (
	"context"
	"log/slog"

	"pastesync/internal/models"
	"pastesync/internal/policy"
	"pastesync/internal/repositories"
)

// Keys of the OS clipboard-history toggle.
const (
	ClipboardHistoryUserKey   = "EnableClipboardHistory"
	ClipboardHistoryPolicyKey = "AllowClipboardHistory"
)

// FlagStore reads and writes user-scope OS flags.
type FlagStore interface {
	GetFlag(key string) (bool, error)
	SetFlag(key string, value bool) error
}

// ClipboardHistoryService reads and toggles the OS clipboard history setting.
// Every failure reads as "off" and writes are best-effort.
type ClipboardHistoryService interface {
	Enabled() bool
	SetEnabled(value bool)
	DisabledByPolicy() bool
}

type clipboardHistoryService struct {
	flags  FlagStore
	policy policy.FlagReader
	logger *slog.Logger
}

func NewClipboardHistoryService(flags FlagStore, policyFlags policy.FlagReader, logger *slog.Logger) ClipboardHistoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &clipboardHistoryService{flags: flags, policy: policyFlags, logger: logger}
}

func (s *clipboardHistoryService) Enabled() bool {
	if s.DisabledByPolicy() {
		return false
	}
	on, err := s.flags.GetFlag(ClipboardHistoryUserKey)
	if err != nil {
		s.logger.Warn("read clipboard history flag", "error", err)
		return false
	}
	return on
}

func (s *clipboardHistoryService) SetEnabled(value bool) {
	current, err := s.flags.GetFlag(ClipboardHistoryUserKey)
	if err == nil && current == value {
		return
	}
	if err := s.flags.SetFlag(ClipboardHistoryUserKey, value); err != nil {
		s.logger.Warn("write clipboard history flag", "value", value, "error", err)
	}
}

// DisabledByPolicy is true only when the machine flag is present and zero.
func (s *clipboardHistoryService) DisabledByPolicy() bool {
	if s.policy == nil {
		return false
	}
	v, ok, err := s.policy.GetPolicyFlag(ClipboardHistoryPolicyKey)
	if err != nil {
		s.logger.Warn("read clipboard history policy", "error", err)
		return false
	}
	return ok && v == 0
}

// RepositoryFlagStore keeps user flags in the flags table.
type RepositoryFlagStore struct {
	repo repositories.FlagRepository
	ctx  context.Context
}

func NewRepositoryFlagStore(repo repositories.FlagRepository) *RepositoryFlagStore {
	return &RepositoryFlagStore{repo: repo, ctx: context.Background()}
}

func (s *RepositoryFlagStore) GetFlag(key string) (bool, error) {
	v, _, err := s.repo.Get(s.ctx, models.FlagScopeUser, key)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (s *RepositoryFlagStore) SetFlag(key string, value bool) error {
	v := 0
	if value {
		v = 1
	}
	return s.repo.Set(s.ctx, models.FlagScopeUser, key, v)
}

// GetPolicyFlag reads machine-scope flags from the same table.
func (s *RepositoryFlagStore) GetPolicyFlag(key string) (int, bool, error) {
	return s.repo.Get(s.ctx, models.FlagScopeMachine, key)
}

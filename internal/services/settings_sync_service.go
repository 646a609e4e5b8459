package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pastesync/internal/debounce"
	"pastesync/internal/events"
	"pastesync/internal/models"
	"pastesync/internal/shortcuts"
)

// SettingsSyncService owns the module settings and shortcut list, persists
// edits and notifies the host process. Mutating calls are expected from one
// caller goroutine; the debounced flush is the only concurrent path.
type SettingsSyncService interface {
	IsEnabled() bool
	IsEnabledPolicyLocked() bool
	SetEnabled(enabled bool)

	Shortcuts() []models.Shortcut
	Shortcut(id int) (models.Shortcut, error)
	AddShortcut(namePrefix string) (int, error)
	DeleteShortcut(id int) error
	UpdateShortcut(modified models.Shortcut) error
	RenameShortcut(id int, name string) error
	ReplaceShortcuts(list []models.Shortcut) error
	FocusRequested() bool
	ClearFocusRequest()

	Hotkey(slot models.HotkeySlot) models.HotkeySettings
	SetHotkey(slot models.HotkeySlot, chord models.HotkeySettings) error
	IsConflictingWithSystemChords() bool
	ShowCustomPreview() bool
	SetShowCustomPreview(show bool)

	EnableAI(secret string)
	DisableAI()
	IsAIEnabled() bool
	OnlineModelsDisallowed() bool
	ShowOnlineModelsWarning() bool

	ClipboardHistoryEnabled() bool
	SetClipboardHistoryEnabled(enabled bool)
	ClipboardHistoryDisabledByPolicy() bool

	Settings() models.ModuleSettings
	FlushPending() bool
	Refresh()
	Flush() error
	Close()
}

// SyncDeps wires the collaborators of the sync service. Persistence is
// required; every other collaborator has a no-op default.
type SyncDeps struct {
	Persistence      PersistenceGateway
	Sender           events.Sender
	Policy           PolicyResolver
	Credentials      CredentialStore
	ClipboardHistory ClipboardHistoryService
	Observer         events.Observer
	Logger           *slog.Logger
	DebounceInterval time.Duration

	Settings models.ModuleSettings
	General  models.GeneralSettings
}

type settingsSyncService struct {
	persistence PersistenceGateway
	sender      events.Sender
	policy      PolicyResolver
	credentials CredentialStore
	clipboard   ClipboardHistoryService
	observer    events.Observer
	logger      *slog.Logger
	notifier    *debounce.Notifier

	// mu guards everything below. It is never held while signalling the
	// notifier, since the flush acquires it from the notifier's lock.
	mu             sync.Mutex
	settings       models.ModuleSettings
	shortcuts      *shortcuts.Collection
	general        models.GeneralSettings
	enabled        bool
	policyState    PolicyState
	focusRequested bool
	pending        []events.Change
}

func NewSettingsSyncService(deps SyncDeps) (SettingsSyncService, error) {
	if deps.Persistence == nil {
		return nil, errors.New("persistence gateway is required")
	}
	s := &settingsSyncService{
		persistence: deps.Persistence,
		sender:      deps.Sender,
		policy:      deps.Policy,
		credentials: deps.Credentials,
		clipboard:   deps.ClipboardHistory,
		observer:    deps.Observer,
		logger:      deps.Logger,
		settings:    deps.Settings,
		general:     deps.General,
	}
	if s.sender == nil {
		s.sender = events.NopSender
	}
	if s.policy == nil {
		s.policy = NewPolicyResolver(nil, deps.Logger)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.settings.Name == "" {
		s.settings.Name = models.ModuleName
	}
	if s.settings.Version == "" {
		s.settings.Version = "1"
	}

	s.shortcuts = shortcuts.NewCollection(s.settings.Properties.Shortcuts.Value, s.onItemChanged)
	s.settings.Properties.Shortcuts.Value = nil
	s.notifier = debounce.NewNotifier(deps.DebounceInterval, s.flush, s.logger)

	s.applyPolicy()
	return s, nil
}

// applyPolicy recomputes effective enablement. A hard block on online models
// removes the stored credential; a feature-wide block only hides it.
func (s *settingsSyncService) applyPolicy() {
	state := s.policy.Evaluate()

	s.mu.Lock()
	s.policyState = state
	s.enabled, _ = EffectiveEnabled(state.FeatureVerdict, s.general.Enabled.AdvancedPaste)
	s.mu.Unlock()

	if state.OnlineAIVerdict == models.VerdictForceDisabled {
		s.DisableAI()
	}
}

func (s *settingsSyncService) IsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

func (s *settingsSyncService) IsEnabledPolicyLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policyState.FeatureLocked()
}

func (s *settingsSyncService) SetEnabled(enabled bool) {
	s.mu.Lock()
	if s.policyState.FeatureLocked() || s.enabled == enabled {
		s.mu.Unlock()
		return
	}
	s.enabled = enabled
	s.general.Enabled.AdvancedPaste = enabled
	general := s.general
	s.mu.Unlock()

	s.emit(events.NewChange(events.PropIsEnabled))

	msg, err := events.GeneralSettingsMessage(general)
	if err != nil {
		s.logger.Error("encode general settings", "error", err)
		return
	}
	s.sender.Send(msg)
}

func (s *settingsSyncService) Shortcuts() []models.Shortcut {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shortcuts.Snapshot()
}

func (s *settingsSyncService) Shortcut(id int) (models.Shortcut, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shortcuts.Resolve(id)
}

func (s *settingsSyncService) AddShortcut(namePrefix string) (int, error) {
	s.mu.Lock()
	added := s.shortcuts.Add(namePrefix)
	s.focusRequested = true
	list := s.shortcuts.Snapshot()
	s.mu.Unlock()

	s.emit(events.NewChange(events.PropShortcuts))
	return added.ID, s.persistShortcuts(list)
}

func (s *settingsSyncService) DeleteShortcut(id int) error {
	s.mu.Lock()
	if _, err := s.shortcuts.Resolve(id); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.shortcuts.Remove(id); err != nil {
		s.mu.Unlock()
		return err
	}
	list := s.shortcuts.Snapshot()
	s.mu.Unlock()

	s.emit(events.NewChange(events.PropShortcuts))
	return s.persistShortcuts(list)
}

func (s *settingsSyncService) UpdateShortcut(modified models.Shortcut) error {
	s.mu.Lock()
	changed, err := s.shortcuts.UpdateFrom(modified.ID, modified)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	list := s.shortcuts.Snapshot()
	s.mu.Unlock()

	s.emitPending()
	if len(changed) == 0 {
		return nil
	}
	return s.persistShortcuts(list)
}

func (s *settingsSyncService) RenameShortcut(id int, name string) error {
	s.mu.Lock()
	changed, err := s.shortcuts.Rename(id, name)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	list := s.shortcuts.Snapshot()
	s.mu.Unlock()

	s.emitPending()
	if !changed {
		return nil
	}
	return s.persistShortcuts(list)
}

func (s *settingsSyncService) ReplaceShortcuts(list []models.Shortcut) error {
	seen := make(map[int]struct{}, len(list))
	for _, sc := range list {
		if _, dup := seen[sc.ID]; dup {
			return fmt.Errorf("replace shortcuts: duplicate id %d", sc.ID)
		}
		seen[sc.ID] = struct{}{}
	}

	s.mu.Lock()
	s.shortcuts.Reset(list)
	snapshot := s.shortcuts.Snapshot()
	s.mu.Unlock()

	s.emit(events.NewChange(events.PropShortcuts))
	return s.persistShortcuts(snapshot)
}

func (s *settingsSyncService) FocusRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focusRequested
}

func (s *settingsSyncService) ClearFocusRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focusRequested = false
}

// onItemChanged runs inside collection calls, with mu held.
func (s *settingsSyncService) onItemChanged(itemID int, field string) {
	s.pending = append(s.pending, events.NewItemChange(itemID, field))
}

// persistShortcuts writes the shortcut file now and schedules the full
// settings flush.
func (s *settingsSyncService) persistShortcuts(list []models.Shortcut) error {
	if err := s.persistence.SaveShortcuts(list); err != nil {
		return err
	}
	s.notifier.Signal()
	return nil
}

func (s *settingsSyncService) Hotkey(slot models.HotkeySlot) models.HotkeySettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Properties.Hotkey(slot)
}

func (s *settingsSyncService) SetHotkey(slot models.HotkeySlot, chord models.HotkeySettings) error {
	if chord.IsEmpty() {
		chord = models.DefaultHotkey(slot)
	}

	s.mu.Lock()
	current := s.settings.Properties.Hotkey(slot)
	if current == chord {
		s.mu.Unlock()
		return nil
	}
	if !s.settings.Properties.SetHotkey(slot, chord) {
		s.mu.Unlock()
		return fmt.Errorf("unknown hotkey slot %q", slot)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(events.NewChange(string(slot)))
	s.emit(events.NewChange(events.PropIsConflictingShortcut))

	if err := s.persistence.SaveSettings(snapshot); err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

func (s *settingsSyncService) IsConflictingWithSystemChords() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, slot := range models.HotkeySlots {
		chord := s.settings.Properties.Hotkey(slot)
		for _, system := range models.SystemPasteChords {
			if chord.Equal(system) {
				return true
			}
		}
	}
	return false
}

func (s *settingsSyncService) ShowCustomPreview() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Properties.ShowCustomPreview
}

func (s *settingsSyncService) SetShowCustomPreview(show bool) {
	s.mu.Lock()
	if s.settings.Properties.ShowCustomPreview == show {
		s.mu.Unlock()
		return
	}
	s.settings.Properties.ShowCustomPreview = show
	s.mu.Unlock()

	s.emit(events.NewChange(events.PropShowCustomPreview))
	s.notifier.Signal()
}

func (s *settingsSyncService) EnableAI(secret string) {
	if s.credentials == nil {
		return
	}
	if secret == "" {
		s.logger.Warn("store AI credential", "error", ErrSecretEmpty)
		return
	}
	if err := s.credentials.Store(AICredentialResource, AICredentialAccount, secret); err != nil {
		s.logger.Warn("store AI credential", "error", err)
		return
	}
	s.emit(events.NewChange(events.PropIsAIEnabled))
}

func (s *settingsSyncService) DisableAI() {
	if s.credentials == nil {
		return
	}
	if err := s.credentials.Remove(AICredentialResource, AICredentialAccount); err != nil {
		if !errors.Is(err, ErrCredentialNotFound) {
			s.logger.Warn("remove AI credential", "error", err)
		}
		return
	}
	s.emit(events.NewChange(events.PropIsAIEnabled))
}

// IsAIEnabled is true when a credential is stored and policy allows online
// models. Any store failure reads as not enabled.
func (s *settingsSyncService) IsAIEnabled() bool {
	if s.OnlineModelsDisallowed() || s.credentials == nil {
		return false
	}
	secret, err := s.credentials.Retrieve(AICredentialResource, AICredentialAccount)
	if err != nil {
		if !errors.Is(err, ErrCredentialNotFound) {
			s.logger.Warn("retrieve AI credential", "error", err)
		}
		return false
	}
	return secret != ""
}

func (s *settingsSyncService) OnlineModelsDisallowed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policyState.OnlineModelsDisallowed()
}

func (s *settingsSyncService) ShowOnlineModelsWarning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policyState.ShowOnlineModelsWarning()
}

func (s *settingsSyncService) ClipboardHistoryEnabled() bool {
	if s.clipboard == nil {
		return false
	}
	return s.clipboard.Enabled()
}

func (s *settingsSyncService) SetClipboardHistoryEnabled(enabled bool) {
	if s.clipboard == nil || s.clipboard.Enabled() == enabled {
		return
	}
	s.clipboard.SetEnabled(enabled)
	s.emit(events.NewChange(events.PropClipboardHistory))
}

func (s *settingsSyncService) ClipboardHistoryDisabledByPolicy() bool {
	if s.clipboard == nil {
		return false
	}
	return s.clipboard.DisabledByPolicy()
}

// Settings returns a detached copy of the full settings document.
func (s *settingsSyncService) Settings() models.ModuleSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *settingsSyncService) FlushPending() bool {
	return s.notifier.State() == debounce.Armed
}

func (s *settingsSyncService) Refresh() {
	s.applyPolicy()
	s.emit(events.NewChange(events.PropIsEnabled))
}

// Flush writes and publishes the settings now, dropping any pending
// debounced flush.
func (s *settingsSyncService) Flush() error {
	return s.notifier.FlushNow()
}

// Close cancels a pending flush. A write already in progress completes.
func (s *settingsSyncService) Close() {
	s.notifier.Dispose()
}

func (s *settingsSyncService) flush() error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persistence.SaveSettings(snapshot); err != nil {
		return err
	}
	s.notify(snapshot)
	return nil
}

func (s *settingsSyncService) notify(settings models.ModuleSettings) {
	msg, err := events.ModuleSettingsMessage(settings.Name, settings)
	if err != nil {
		s.logger.Error("encode module settings", "error", err)
		return
	}
	s.sender.Send(msg)
}

func (s *settingsSyncService) snapshotLocked() models.ModuleSettings {
	out := s.settings
	out.Properties.Shortcuts = models.ShortcutList{Value: s.shortcuts.Snapshot()}
	return out
}

func (s *settingsSyncService) emitPending() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, c := range pending {
		s.emit(c)
	}
}

func (s *settingsSyncService) emit(c events.Change) {
	if s.observer != nil {
		s.observer(c)
	}
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/99designs/keyring"
	"gorm.io/gorm/logger"

	"pastesync/internal/config"
	"pastesync/internal/database"
	"pastesync/internal/events"
	"pastesync/internal/models"
	"pastesync/internal/policy"
	"pastesync/internal/services"
	"pastesync/internal/storage"
)

const generalModule = "general"

// App wires one sync service against the configured storage.
type App struct {
	cfg     config.Config
	logger  *slog.Logger
	store   storage.Storage
	Sync    services.SettingsSyncService
	dbClose func() error
}

func newApp(cfg config.Config, log *slog.Logger, ipcOut, eventOut io.Writer) (*App, error) {
	a := &App{cfg: cfg, logger: log}

	db, err := database.Init(database.Config{Path: cfg.Database.Path, LogLevel: gormLevel(cfg.Log.Level)})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		a.dbClose = sqlDB.Close
	}

	dbServices := services.NewDbServices(db)

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		a.store = dbServices.Documents
	default:
		fs, err := storage.NewFileStorage(cfg.Storage.Root)
		if err != nil {
			a.shutdown()
			return nil, err
		}
		a.store = fs
	}

	gateway := services.NewPersistenceGateway(a.store, models.ModuleName)
	settings, err := gateway.Load()
	if err != nil {
		a.shutdown()
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	general, err := a.loadGeneral()
	if err != nil {
		a.shutdown()
		return nil, fmt.Errorf("loading general settings: %w", err)
	}

	flags := dbServices.Flags
	var (
		policySource policy.Source     = policy.NewStaticSource()
		policyFlags  policy.FlagReader = flags
	)
	if cfg.Policy.File != "" {
		fileSource := policy.NewFileSource(cfg.Policy.File)
		policySource = fileSource
		policyFlags = fileSource
	}

	observer := events.LogObserver(log)
	if eventOut != nil {
		emitter := services.NewEventEmitterService(eventOut)
		emitter.StartStream()
		observer = events.Chain(observer, emitter.Observer())
	}

	syncSvc, err := services.NewSettingsSyncService(services.SyncDeps{
		Persistence:      gateway,
		Sender:           &hostSender{out: events.NewWriterSender(ipcOut, log), app: a},
		Policy:           services.NewPolicyResolver(policySource, log),
		Credentials:      services.NewKeyringService(keyringConfig(cfg.Keyring)),
		ClipboardHistory: services.NewClipboardHistoryService(flags, policyFlags, log),
		Observer:         observer,
		Logger:           log,
		DebounceInterval: cfg.Debounce.Interval,
		Settings:         settings,
		General:          general,
	})
	if err != nil {
		a.shutdown()
		return nil, err
	}
	a.Sync = syncSvc
	return a, nil
}

// shutdown flushes pending settings and releases resources.
func (a *App) shutdown() error {
	var errs []error
	if a.Sync != nil {
		if a.Sync.FlushPending() {
			if err := a.Sync.Flush(); err != nil {
				errs = append(errs, fmt.Errorf("flush settings: %w", err))
			}
		}
		a.Sync.Close()
	}
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
		a.dbClose = nil
	}
	return errors.Join(errs...)
}

func (a *App) loadGeneral() (models.GeneralSettings, error) {
	general := models.GeneralSettings{Enabled: models.EnabledModules{AdvancedPaste: true}}
	content, err := a.store.Read(generalModule, "")
	if errors.Is(err, storage.ErrNotExist) {
		return general, nil
	}
	if err != nil {
		return general, err
	}
	if err := json.Unmarshal([]byte(content), &general); err != nil {
		return general, fmt.Errorf("decode general settings: %w", err)
	}
	return general, nil
}

// hostSender stands in for the host process: it forwards every message to
// the IPC writer and persists general settings the way the host would.
type hostSender struct {
	out events.Sender
	app *App
}

func (h *hostSender) Send(message string) int {
	var envelope struct {
		General *models.GeneralSettings `json:"general"`
	}
	if err := json.Unmarshal([]byte(message), &envelope); err == nil && envelope.General != nil {
		data, err := json.MarshalIndent(envelope.General, "", "  ")
		if err == nil {
			err = h.app.store.Write(generalModule, "", string(data))
		}
		if err != nil {
			h.app.logger.Error("persist general settings", "error", err)
		}
	}
	return h.out.Send(message)
}

func keyringConfig(cfg config.KeyringConfig) keyring.Config {
	kc := keyring.Config{
		ServiceName: models.ModuleName,
	}
	if cfg.Backend != "" {
		kc.AllowedBackends = []keyring.BackendType{keyring.BackendType(cfg.Backend)}
	}
	if cfg.Backend == string(keyring.FileBackend) {
		kc.FileDir = cfg.FileDir
		kc.FilePasswordFunc = keyring.FixedStringPrompt(cfg.Password)
	}
	return kc
}

func gormLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	}
	if database.IsDevelopment() {
		return logger.Warn
	}
	return logger.Error
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

package main

import (
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/younwookim/gardengun/internal/application/level"
	"github.com/younwookim/gardengun/internal/application/session"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
	"github.com/younwookim/gardengun/internal/infrastructure/storage"
)

// Progress storage kinds for --store
const (
	storeGdata  = "gdata"
	storeSQLite = "sqlite"
	storeMemory = "memory"
)

// progressStore is a level.Store that holds an open resource
type progressStore interface {
	level.Store
	Close() error
}

// app is everything one run of the game needs
type app struct {
	Config   *config.GameConfig
	Loader   *config.Loader
	Index    *level.IndexHandle
	Progress *level.Progress
	Session  *session.Session

	store  progressStore
	logger *log.Logger
}

// appSettings are the global flags
type appSettings struct {
	DataDir string
	Store   string
	DBPath  string
}

func currentSettings() appSettings {
	return appSettings{DataDir: flagDataDir, Store: flagStore, DBPath: flagDBPath}
}

// openApp loads game.yaml, starts loading the level index in the background,
// opens progress storage and creates the session
func openApp(logger *log.Logger, opts session.Options) (*app, error) {
	return openAppWith(currentSettings(), logger, opts)
}

func openAppWith(settings appSettings, logger *log.Logger, opts session.Options) (*app, error) {
	loader, err := newLoader(settings.DataDir)
	if err != nil {
		return nil, err
	}
	cfg, err := loader.LoadGame()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := openStore(settings.Store, settings.DBPath, logger)
	if err != nil {
		return nil, err
	}

	index := level.LoadIndex(loader.LoadLevelIndex, logger)
	progress := level.NewProgress(index, store, logger)
	s, err := session.New(cfg, loader, progress, logger, opts)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &app{
		Config:   cfg,
		Loader:   loader,
		Index:    index,
		Progress: progress,
		Session:  s,
		store:    store,
		logger:   logger,
	}, nil
}

// Close releases progress storage
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close progress storage", "err", err)
	}
}

// newLoader reads from dir, or from the embedded configs when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// openStore opens the requested storage. Saving progress is best effort: a
// store that cannot be opened is replaced by an in-memory one.
func openStore(kind, dbPath string, logger *log.Logger) (progressStore, error) {
	var (
		store progressStore
		err   error
	)
	switch kind {
	case storeGdata:
		store, err = storage.OpenGdata(AppName)
	case storeSQLite:
		store, err = storage.OpenSQLite(dbPath)
	case storeMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q (want %s, %s or %s)", kind, storeGdata, storeSQLite, storeMemory)
	}
	if err != nil {
		logger.Warn("progress will not be saved", "store", kind, "err", err)
		return storage.NewMemoryStore(), nil
	}
	return store, nil
}

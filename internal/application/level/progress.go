// Package level tracks which levels are unlocked, which one is being played
// and persists the furthest completed level.
package level

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/younwookim/gardengun/internal/infrastructure/config"
	"github.com/younwookim/gardengun/internal/infrastructure/storage"
)

// ProgressKey is the storage key holding the filename of the furthest completed level
const ProgressKey = "completed_up_to_level"

var (
	ErrLevelLocked    = errors.New("level is locked")
	ErrUnknownLevel   = errors.New("unknown level")
	ErrNoCurrentLevel = errors.New("no current level")
	ErrIndexNotLoaded = errors.New("level index not loaded")
)

// Store is the persistent string key-value storage progress is saved to
type Store interface {
	GetString(key string) (string, error)
	SetString(key, value string) error
}

// Progress is the process-wide level progression state. CurrentLevel and
// JustCompleted are level filenames; empty means none.
type Progress struct {
	JustCompleted     string
	CurrentLevel      string
	NumLevelsUnlocked int

	index  *IndexHandle
	store  Store
	logger *log.Logger
}

// NewProgress creates progress that is initialized by ReadPersisted
func NewProgress(index *IndexHandle, store Store, logger *log.Logger) *Progress {
	return &Progress{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Initialized reports whether the unlocked count has been computed
func (p *Progress) Initialized() bool {
	return p.NumLevelsUnlocked > 0
}

// ReadPersisted computes NumLevelsUnlocked from storage. It is called every
// frame and does nothing once initialized. When a completed level is stored
// but the index is not loaded yet it returns false and tries again later.
func (p *Progress) ReadPersisted() bool {
	if p.Initialized() {
		return true
	}

	completed, err := p.store.GetString(ProgressKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Error("unable to read level progress, starting anew", "err", err)
		}
		p.NumLevelsUnlocked = 1
		return true
	}

	levels, ok := p.index.Get()
	if !ok {
		return false
	}
	if i, found := indexOf(levels, completed); found {
		p.NumLevelsUnlocked = i + 2
	} else {
		p.logger.Error("unable to find level, starting anew", "file", completed)
		p.NumLevelsUnlocked = 1
	}
	return true
}

// Levels returns the level index once loaded
func (p *Progress) Levels() ([]config.LevelDescriptor, error) {
	levels, ok := p.index.Get()
	if !ok {
		return nil, ErrIndexNotLoaded
	}
	return levels, nil
}

// IsUnlocked reports whether the level at index i may be selected
func (p *Progress) IsUnlocked(i int) bool {
	return i >= 0 && i < p.NumLevelsUnlocked
}

// Select makes the level at index i current
func (p *Progress) Select(i int) error {
	levels, err := p.Levels()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(levels) {
		return fmt.Errorf("%w: index %d", ErrUnknownLevel, i)
	}
	if !p.IsUnlocked(i) {
		return fmt.Errorf("%w: index %d, %d unlocked", ErrLevelLocked, i, p.NumLevelsUnlocked)
	}
	p.CurrentLevel = levels[i].Filename
	return nil
}

// SetCurrent makes filename current without checking the index
func (p *Progress) SetCurrent(filename string) {
	p.CurrentLevel = filename
}

// Current returns the level being played
func (p *Progress) Current() (string, error) {
	if p.CurrentLevel == "" {
		return "", ErrNoCurrentLevel
	}
	return p.CurrentLevel, nil
}

// Complete takes the current level, unlocks the next one if it is the
// furthest reached and persists that. A failed write is logged and progress
// is kept in memory.
func (p *Progress) Complete() (string, error) {
	finished, err := p.Current()
	if err != nil {
		return "", err
	}
	p.CurrentLevel = ""

	if levels, ok := p.index.Get(); ok {
		if i, found := indexOf(levels, finished); found && p.NumLevelsUnlocked < i+2 {
			p.NumLevelsUnlocked = i + 2
			if err := p.store.SetString(ProgressKey, finished); err != nil {
				p.logger.Error("unable to save level progress", "err", err)
			}
		}
	}

	p.JustCompleted = finished
	p.logger.Info("level completed", "file", finished, "unlocked", p.NumLevelsUnlocked)
	return finished, nil
}

func indexOf(levels []config.LevelDescriptor, filename string) (int, bool) {
	for i, l := range levels {
		if l.Filename == filename {
			return i, true
		}
	}
	return 0, false
}

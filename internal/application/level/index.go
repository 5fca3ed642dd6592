package level

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

// IndexHandle is a level index that loads in the background
type IndexHandle struct {
	done   chan struct{}
	levels []config.LevelDescriptor
	err    error
}

// LoadIndex starts loading the index on its own goroutine. Load errors are
// logged and leave the handle empty.
func LoadIndex(load func() ([]config.LevelDescriptor, error), logger *log.Logger) *IndexHandle {
	h := &IndexHandle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		levels, err := load()
		if err != nil {
			logger.Error("unable to load level index", "err", err)
			h.err = err
			return
		}
		h.levels = levels
	}()
	return h
}

// LoadedIndex returns a handle that is already available
func LoadedIndex(levels []config.LevelDescriptor) *IndexHandle {
	h := &IndexHandle{done: make(chan struct{}), levels: levels}
	close(h.done)
	return h
}

// Get returns the levels without blocking; ok is false until loaded
func (h *IndexHandle) Get() ([]config.LevelDescriptor, bool) {
	select {
	case <-h.done:
		if h.err != nil {
			return nil, false
		}
		return h.levels, true
	default:
		return nil, false
	}
}

// Wait blocks until the load finishes or ctx is done
func (h *IndexHandle) Wait(ctx context.Context) ([]config.LevelDescriptor, error) {
	select {
	case <-h.done:
		return h.levels, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

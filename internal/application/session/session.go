// Package session owns one running game: the world, the app state machine,
// level progress and the per-frame schedule. It has no window and no clock of
// its own, so the live game, the replayer and tests all drive it the same way.
package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/younwookim/gardengun/internal/application/input"
	"github.com/younwookim/gardengun/internal/application/level"
	"github.com/younwookim/gardengun/internal/application/menu"
	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/application/system"
	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

// ErrEditorNeedsLevel is returned when editor mode starts without a level
var ErrEditorNeedsLevel = errors.New("editor mode needs a level to edit")

// Options select how the session starts
type Options struct {
	// Editor loads StartLevel with physics off; P play-tests, R reloads the file
	Editor bool
	// StartLevel is a level filename to load right away instead of the main menu
	StartLevel string
}

// Session is a running game
type Session struct {
	config    *config.GameConfig
	loader    *config.Loader
	logger    *log.Logger
	editor    bool
	ctx       *system.Context
	schedule  *system.Schedule
	populator *system.Populator
	machine   *state.Machine
	progress  *level.Progress

	menu      menu.Menu
	menuReady bool

	level    *config.LevelConfig
	authored []ecs.EntityID
	// played is set once an editor play-test touched the world
	played bool

	frame int
	quit  bool
	err   error
}

// New creates a session in the main menu, or loading opts.StartLevel
func New(cfg *config.GameConfig, loader *config.Loader, progress *level.Progress, logger *log.Logger, opts Options) (*Session, error) {
	if opts.Editor && opts.StartLevel == "" {
		return nil, ErrEditorNeedsLevel
	}

	machine := state.NewMachine(state.MainMenu, logger)
	w := ecs.NewWorld()
	s := &Session{
		config:    cfg,
		loader:    loader,
		logger:    logger,
		editor:    opts.Editor,
		ctx:       system.NewContext(w, machine, cfg.Display.DT(), logger),
		schedule:  system.NewSchedule(cfg),
		populator: system.NewPopulator(cfg),
		machine:   machine,
		progress:  progress,
	}

	machine.OnEnter(state.LoadLevel, s.enterLoadLevel)
	machine.OnEnter(state.LevelCompleted, s.enterLevelCompleted)
	machine.OnEnter(state.Editor, s.enterEditor)
	machine.OnExit(state.Editor, func() { s.played = true })
	for _, st := range []state.AppState{state.MainMenu, state.PauseMenu, state.LevelSelectMenu, state.GameOver} {
		machine.OnEnter(st, s.rebuildMenu)
	}
	s.rebuildMenu()

	if opts.StartLevel != "" {
		progress.SetCurrent(opts.StartLevel)
		machine.Request(state.LoadLevel)
	}
	return s, nil
}

// Step advances the session by one frame. Requested state changes take effect
// at the start of the next Step. A level that cannot be loaded ends the session
// with an error.
func (s *Session) Step(in input.Frame) error {
	s.frame++
	s.progress.ReadPersisted()
	if _, err := s.machine.Apply(); err != nil {
		s.logger.Debug("state change dropped", "err", err)
	}
	if s.err != nil {
		return s.err
	}

	current := s.machine.Current()
	switch {
	case current == state.Game:
		s.handleGameKeys(in)
	case current == state.Editor:
		s.handleEditorKeys(in)
	case current.IsMenu():
		s.handleMenu(current, in)
	}

	s.schedule.Run(s.ctx, in)
	return nil
}

func (s *Session) handleGameKeys(in input.Frame) {
	if !s.editor {
		if in.Pause {
			s.machine.Request(state.PauseMenu)
		}
		return
	}
	if in.PlayTest || in.Pause {
		s.machine.Request(state.Editor)
	}
}

func (s *Session) handleEditorKeys(in input.Frame) {
	switch {
	case in.PlayTest:
		s.machine.Request(state.Game)
	case in.Reload:
		if err := s.reloadLevelFile(); err != nil {
			s.logger.Error("unable to reload level", "err", err)
		}
	}
}

func (s *Session) handleMenu(current state.AppState, in input.Frame) {
	if s.editor && current == state.GameOver {
		s.machine.Request(state.Editor)
		return
	}
	if current == state.LevelSelectMenu && !s.menuReady {
		s.rebuildMenu()
	}

	it, ok := s.menu.Navigate(in)
	if !ok {
		if in.Pause && current == state.PauseMenu {
			s.machine.Request(state.Game)
		}
		return
	}

	switch it.Action {
	case menu.ActionStart, menu.ActionLevelSelect:
		s.machine.Request(state.LevelSelectMenu)
	case menu.ActionExit:
		s.quit = true
	case menu.ActionResume:
		s.machine.Request(state.Game)
	case menu.ActionRetry:
		s.machine.Request(state.LoadLevel)
	case menu.ActionMainMenu:
		s.machine.Request(state.MainMenu)
	case menu.ActionPlayLevel:
		if err := s.progress.Select(it.Level); err != nil {
			s.logger.Warn("level not selectable", "index", it.Level, "err", err)
			return
		}
		s.machine.Request(state.LoadLevel)
	}
}

func (s *Session) rebuildMenu() {
	m, ok := menu.Build(s.machine.Current(), s.progress)
	if !ok {
		return
	}
	s.menu = m
	_, err := s.progress.Levels()
	s.menuReady = err == nil && s.progress.Initialized()
}

// enterLoadLevel clears the previous level and spawns the current one
func (s *Session) enterLoadLevel() {
	name, err := s.progress.Current()
	if err != nil {
		s.err = fmt.Errorf("load level: %w", err)
		return
	}
	lvl, err := s.loader.LoadLevel(name)
	if err != nil {
		s.err = fmt.Errorf("load level: %w", err)
		return
	}
	if err := s.spawnLevel(lvl); err != nil {
		s.err = fmt.Errorf("load level %s: %w", name, err)
		return
	}
	s.played = false
	s.logger.Info("level loaded", "file", name, "entities", len(s.authored), "editor", s.editor)

	if s.editor {
		s.machine.Request(state.Editor)
	} else {
		s.machine.Request(state.Game)
	}
}

func (s *Session) enterLevelCompleted() {
	if s.editor {
		s.machine.Request(state.Editor)
		return
	}
	if _, err := s.progress.Complete(); err != nil {
		s.logger.Error("level completed without a current level", "err", err)
	}
	s.machine.Request(state.LevelSelectMenu)
}

// enterEditor puts the authored level back after a play-test
func (s *Session) enterEditor() {
	if !s.played || s.level == nil {
		return
	}
	if err := s.spawnLevel(s.level); err != nil {
		s.logger.Error("unable to restore level after play-test", "err", err)
	}
	s.played = false
}

// spawnLevel replaces every level entity with the entities of lvl
func (s *Session) spawnLevel(lvl *config.LevelConfig) error {
	w := s.ctx.World
	s.ctx.Commands.Flush()
	for _, id := range ecs.SortedIDs(w.BelongsToLevel) {
		w.DespawnRecursive(id)
	}
	s.schedule.Physics.Reset()
	s.ctx.Events.Clear()
	s.ctx.Collisions = nil

	ids, err := s.populator.SpawnLevel(w, lvl, s.editor)
	s.level = lvl
	s.authored = ids
	if err != nil {
		return err
	}
	s.snapCamera()
	return nil
}

// reloadLevelFile re-reads the current level. When the file still lists the
// same entity types in the same order the existing entities are re-populated
// in place; otherwise the level is spawned anew.
func (s *Session) reloadLevelFile() error {
	name, err := s.progress.Current()
	if err != nil {
		return err
	}
	lvl, err := s.loader.LoadLevel(name)
	if err != nil {
		return err
	}

	w := s.ctx.World
	if !sameLayout(w, s.authored, lvl) {
		s.logger.Info("level layout changed, respawning", "file", name)
		return s.spawnLevel(lvl)
	}
	pctx := system.PopulateContext{FirstTime: false, InEditor: s.editor}
	for i, e := range lvl.Entities {
		if err := s.populator.Populate(pctx, w, s.authored[i], e); err != nil {
			return err
		}
	}
	s.level = lvl
	s.logger.Info("level refreshed", "file", name, "entities", len(s.authored))
	return nil
}

func sameLayout(w *ecs.World, ids []ecs.EntityID, lvl *config.LevelConfig) bool {
	if len(ids) != len(lvl.Entities) {
		return false
	}
	types := make([]string, len(ids))
	for i, id := range ids {
		if !w.Exists(id) {
			return false
		}
		types[i] = w.EntityType[id]
	}
	want := make([]string, len(lvl.Entities))
	for i, e := range lvl.Entities {
		want[i] = e.Type
	}
	return slices.Equal(types, want)
}

func (s *Session) snapCamera() {
	w := s.ctx.World
	if player, ok := w.Player(); ok {
		s.schedule.Camera.Snap(w.GlobalTransform(player).Translation.X)
	}
}

// World returns the entity world
func (s *Session) World() *ecs.World {
	return s.ctx.World
}

// Camera returns the camera rig
func (s *Session) Camera() *system.CameraRig {
	return s.schedule.Camera
}

// State returns the current app state
func (s *Session) State() state.AppState {
	return s.machine.Current()
}

// Menu returns the menu of the current state, if it has one
func (s *Session) Menu() (menu.Menu, bool) {
	if !s.machine.Current().IsMenu() {
		return menu.Menu{}, false
	}
	return s.menu, true
}

// Progress returns level progress
func (s *Session) Progress() *level.Progress {
	return s.progress
}

// Editor reports whether the session runs in editor mode
func (s *Session) Editor() bool {
	return s.editor
}

// Frame returns the number of steps taken
func (s *Session) Frame() int {
	return s.frame
}

// Done reports whether the player chose Exit
func (s *Session) Done() bool {
	return s.quit
}

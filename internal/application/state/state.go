package state

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrInvalidTransition is returned when a requested state cannot follow the current one
var ErrInvalidTransition = errors.New("invalid state transition")

// AppState represents the top-level state of the application
type AppState int

const (
	MainMenu AppState = iota
	PauseMenu
	LevelSelectMenu
	LoadLevel
	Editor
	Game
	LevelCompleted
	GameOver
)

// String returns the string representation of the app state
func (s AppState) String() string {
	switch s {
	case MainMenu:
		return "MainMenu"
	case PauseMenu:
		return "PauseMenu"
	case LevelSelectMenu:
		return "LevelSelectMenu"
	case LoadLevel:
		return "LoadLevel"
	case Editor:
		return "Editor"
	case Game:
		return "Game"
	case LevelCompleted:
		return "LevelCompleted"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// IsMenu reports whether the state shows a menu instead of the level
func (s AppState) IsMenu() bool {
	switch s {
	case MainMenu, PauseMenu, LevelSelectMenu, GameOver:
		return true
	default:
		return false
	}
}

// PhysicsActive reports whether the simulation runs in this state
func (s AppState) PhysicsActive() bool {
	return s == Game
}

var transitions = map[AppState][]AppState{
	MainMenu:        {LevelSelectMenu, LoadLevel, Editor},
	LevelSelectMenu: {LoadLevel, MainMenu},
	LoadLevel:       {Game, Editor},
	Game:            {PauseMenu, GameOver, LevelCompleted, Editor},
	PauseMenu:       {Game, LoadLevel, LevelSelectMenu, MainMenu},
	GameOver:        {LoadLevel, LevelSelectMenu, MainMenu, Editor},
	LevelCompleted:  {LevelSelectMenu, Editor},
	Editor:          {Game, LoadLevel},
}

// CanTransition reports whether to may follow from
func CanTransition(from, to AppState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Hook runs when a state is entered or exited
type Hook func()

// Machine holds the current state and at most one pending request. Requests
// made during a frame are applied by Apply at the frame boundary; the last
// request of a frame wins.
type Machine struct {
	current    AppState
	pending    AppState
	hasPending bool

	onEnter map[AppState][]Hook
	onExit  map[AppState][]Hook
	logger  *log.Logger
}

// NewMachine starts in initial
func NewMachine(initial AppState, logger *log.Logger) *Machine {
	return &Machine{
		current: initial,
		onEnter: make(map[AppState][]Hook),
		onExit:  make(map[AppState][]Hook),
		logger:  logger,
	}
}

// Current returns the active state
func (m *Machine) Current() AppState {
	return m.current
}

// Pending returns the requested next state, if any
func (m *Machine) Pending() (AppState, bool) {
	return m.pending, m.hasPending
}

// Request asks for a transition at the next Apply
func (m *Machine) Request(next AppState) {
	m.pending = next
	m.hasPending = true
}

// OnEnter registers a hook run after s becomes current
func (m *Machine) OnEnter(s AppState, h Hook) {
	m.onEnter[s] = append(m.onEnter[s], h)
}

// OnExit registers a hook run before s stops being current
func (m *Machine) OnExit(s AppState, h Hook) {
	m.onExit[s] = append(m.onExit[s], h)
}

// Apply performs the pending transition, if any. Hooks may Request another
// state; that request is applied on the next call.
func (m *Machine) Apply() (bool, error) {
	if !m.hasPending {
		return false, nil
	}
	next := m.pending
	m.hasPending = false

	if next == m.current {
		return false, nil
	}
	if !CanTransition(m.current, next) {
		err := fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, next)
		m.logger.Warn("rejected state transition", "from", m.current, "to", next)
		return false, err
	}

	prev := m.current
	for _, h := range m.onExit[prev] {
		h()
	}
	m.current = next
	m.logger.Debug("state transition", "from", prev, "to", next)
	for _, h := range m.onEnter[next] {
		h()
	}
	return true, nil
}

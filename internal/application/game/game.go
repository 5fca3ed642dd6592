// Package game adapts a Scene to ebiten's game loop.
package game

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/gardengun/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	logger  *log.Logger
	ended   bool
}

// New creates a Game with the given initial scene, stepping dt seconds per
// update. The initial scene's OnEnter is called immediately.
func New(initial scene.Scene, screenW, screenH int, dt float64, logger *log.Logger) *Game {
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
		dt:      dt,
		logger:  logger,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.ended {
		return ebiten.Termination
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		g.end()
		if errors.Is(err, scene.ErrQuit) {
			return ebiten.Termination
		}
		g.logger.Error("game stopped", "err", err)
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// end exits the current scene once
func (g *Game) end() {
	if g.ended {
		return
	}
	g.ended = true
	g.current.OnExit()
}

// Close exits the current scene if the loop stopped without Update seeing it,
// such as when the window was closed
func (g *Game) Close() {
	g.end()
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.screenW, g.screenH
}

// SetDT sets the delta time used for updates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}

// DT returns the delta time used for updates
func (g *Game) DT() float64 {
	return g.dt
}

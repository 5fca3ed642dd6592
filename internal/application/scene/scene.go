// Package scene defines the Scene interface for game screens.
//
// The game loop delegates Update and Draw to the current scene and switches
// scenes when Update returns a new one.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned by Update when the player asked to leave or a replay ran
// out of input. The game loop ends without reporting an error.
var ErrQuit = errors.New("quit")

// Scene represents a game screen
type Scene interface {
	// Update advances the scene by dt seconds.
	// Returns the next scene to switch to, or nil to stay.
	// Any error other than ErrQuit terminates the game with that error.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when the scene becomes current.
	OnEnter()

	// OnExit is called when the scene stops being current or the game ends.
	OnExit()
}

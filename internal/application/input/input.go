// Package input turns keyboard state into a per-frame snapshot that the game,
// the recorder and the replayer all share.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Frame is the input of a single frame
type Frame struct {
	Run   float64 `json:"run,omitempty"` // -1..1, horizontal
	Jump  bool    `json:"j,omitempty"`
	Shoot bool    `json:"s,omitempty"` // just pressed

	// Menu and mode keys, just pressed
	Pause    bool `json:"p,omitempty"`
	Up       bool `json:"u,omitempty"`
	Down     bool `json:"d,omitempty"`
	Confirm  bool `json:"c,omitempty"`
	PlayTest bool `json:"pt,omitempty"`
	Reload   bool `json:"rl,omitempty"`
}

// IsZero reports whether nothing was pressed
func (f Frame) IsZero() bool {
	return f == Frame{}
}

// Read samples the keyboard. Arrows or A/D run, Z/J jump, X/K shoot,
// Escape pauses, Enter/Space confirm in menus, P toggles editor play-test,
// R reloads the level in the editor.
func Read() Frame {
	var run float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		run--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		run++
	}

	return Frame{
		Run:      run,
		Jump:     ebiten.IsKeyPressed(ebiten.KeyZ) || ebiten.IsKeyPressed(ebiten.KeyJ),
		Shoot:    inpututil.IsKeyJustPressed(ebiten.KeyX) || inpututil.IsKeyJustPressed(ebiten.KeyK),
		Pause:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		Up:       inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyW),
		Down:     inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyS),
		Confirm:  inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		PlayTest: inpututil.IsKeyJustPressed(ebiten.KeyP),
		Reload:   inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// Source yields one frame of input per call
type Source interface {
	Next() (Frame, bool)
}

// Keyboard is the live Source
type Keyboard struct{}

// Next always succeeds with the current keyboard state
func (Keyboard) Next() (Frame, bool) {
	return Read(), true
}

// Package replay records per-frame input to a JSON file and plays it back.
// The game is deterministic for a given input sequence, so a recording
// reproduces a session exactly.
package replay

import "github.com/younwookim/gardengun/internal/application/input"

// Version of the replay file format
const Version = "2.0"

// FrameInput is the input of one recorded frame
type FrameInput struct {
	F int `json:"f"` // Frame number
	input.Frame
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Level     string       `json:"level,omitempty"` // level loaded at start, empty for the main menu
	Editor    bool         `json:"editor,omitempty"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

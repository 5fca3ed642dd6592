package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/gardengun/internal/application/input"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (input.Frame, bool) {
	if r.frame >= len(r.data.Frames) {
		return input.Frame{}, false
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Frame, true
}

// Next implements input.Source
func (r *Replayer) Next() (input.Frame, bool) {
	return r.GetInput()
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Level returns the level the recording started in
func (r *Replayer) Level() string {
	return r.data.Level
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing from a sequence of
// inputs, each held for the given number of frames
func CreateTestReplayData(level string, steps ...Step) ReplayData {
	data := ReplayData{
		Version:   Version,
		Level:     level,
		StartTime: time.Now().Format(time.RFC3339),
	}
	for _, s := range steps {
		for range s.Frames {
			data.Frames = append(data.Frames, FrameInput{F: len(data.Frames), Frame: s.Input})
		}
	}
	return data
}

// Step is an input held for a number of frames
type Step struct {
	Input  input.Frame
	Frames int
}

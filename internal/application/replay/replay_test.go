package replay

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gardengun/internal/application/input"
)

func TestFrameInput_JSONIsFlat(t *testing.T) {
	fi := FrameInput{F: 10, Frame: input.Frame{Run: -1, Jump: true}}

	data, err := json.Marshal(fi)
	require.NoError(t, err)
	assert.JSONEq(t, `{"f": 10, "run": -1, "j": true}`, string(data))

	var decoded FrameInput
	require.NoError(t, json.Unmarshal([]byte(`{"f": 3, "s": true, "pt": true}`), &decoded))
	assert.Equal(t, FrameInput{F: 3, Frame: input.Frame{Shoot: true, PlayTest: true}}, decoded)
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Level:   "level-1.yaml",
		Frames: []FrameInput{
			{F: 0, Frame: input.Frame{Run: -1}},
			{F: 1, Frame: input.Frame{Run: 1, Jump: true}},
			{F: 2},
		},
	}

	replayer := NewReplayer(data)
	assert.Equal(t, "level-1.yaml", replayer.Level())

	in, ok := replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, -1.0, in.Run)

	in, ok = replayer.Next()
	require.True(t, ok)
	assert.Equal(t, 1.0, in.Run)
	assert.True(t, in.Jump)

	in, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, in.IsZero())

	// End of frames
	_, ok = replayer.GetInput()
	assert.False(t, ok)
	assert.Equal(t, 3, replayer.CurrentFrame())
}

func TestReplayer_Reset(t *testing.T) {
	data := CreateTestReplayData("", Step{Input: input.Frame{Confirm: true}, Frames: 3})
	replayer := NewReplayer(data)
	assert.Equal(t, 3, replayer.TotalFrames())

	for range 3 {
		replayer.GetInput()
	}
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	in, ok := replayer.GetInput()
	assert.True(t, ok)
	assert.True(t, in.Confirm)
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData("level-2.yaml",
		Step{Frames: 2},
		Step{Input: input.Frame{Run: 1}, Frames: 3},
	)

	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "level-2.yaml", data.Level)
	require.Len(t, data.Frames, 5)
	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
	}
	assert.Zero(t, data.Frames[1].Run)
	assert.Equal(t, 1.0, data.Frames[2].Run)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	r := NewRecorder("level-3.yaml", true)
	assert.True(t, r.IsRecording())

	r.RecordFrame(input.Frame{Run: 1})
	r.RecordFrame(input.Frame{Shoot: true})
	r.Stop()
	r.RecordFrame(input.Frame{Jump: true})
	assert.False(t, r.IsRecording())
	assert.Equal(t, 2, r.FrameCount())

	path := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, r.Save(path))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, r.Data().Frames, loaded.Frames)
	assert.Equal(t, "level-3.yaml", loaded.Level)
	assert.True(t, loaded.Editor)
	assert.Equal(t, Version, loaded.Version)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	r := NewRecorder("", false)
	err := r.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, ErrNothingRecorded)
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

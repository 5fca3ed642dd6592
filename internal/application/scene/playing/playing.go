// Package playing provides the gameplay scene: it feeds one frame of input per
// tick into a session and draws the result.
package playing

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/gardengun/internal/application/input"
	"github.com/younwookim/gardengun/internal/application/replay"
	"github.com/younwookim/gardengun/internal/application/scene"
	"github.com/younwookim/gardengun/internal/application/session"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

// Playing is the main gameplay scene
type Playing struct {
	session  *session.Session
	source   input.Source
	renderer *renderer
	logger   *log.Logger

	// Input recording
	recorder       *replay.Recorder
	recordFilename string
}

// New creates a Playing scene reading input from source
func New(cfg *config.GameConfig, s *session.Session, source input.Source, logger *log.Logger) *Playing {
	return &Playing{
		session:  s,
		source:   source,
		renderer: newRenderer(cfg.Display),
		logger:   logger,
	}
}

// WithRecorder records every frame of input and saves it to filename when the
// scene exits. An empty filename picks a timestamped one.
func (p *Playing) WithRecorder(rec *replay.Recorder, filename string) *Playing {
	p.recorder = rec
	p.recordFilename = filename
	return p
}

// Session returns the driven session
func (p *Playing) Session() *session.Session {
	return p.session
}

// Update steps the session once. The session's fixed frame duration is used,
// not dt, so recordings replay identically.
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	in, ok := p.source.Next()
	if !ok {
		return nil, scene.ErrQuit
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	if err := p.session.Step(in); err != nil {
		return nil, err
	}
	if p.session.Done() {
		return nil, scene.ErrQuit
	}
	return nil, nil // nil = stay on this scene
}

// Draw renders the world and any overlay of the current state
func (p *Playing) Draw(screen *ebiten.Image) {
	p.renderer.draw(screen, p.session)
}

// OnEnter is called when the scene becomes active
func (p *Playing) OnEnter() {
	p.logger.Debug("playing", "state", p.session.State(), "editor", p.session.Editor())
}

// OnExit saves the recording, if any
func (p *Playing) OnExit() {
	p.saveRecording()
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.recorder.Stop()

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	err := p.recorder.Save(filename)
	if errors.Is(err, replay.ErrNothingRecorded) {
		p.logger.Debug("nothing recorded")
		return
	}
	if err != nil {
		p.logger.Error("failed to save recording", "file", filename, "err", err)
		return
	}
	p.logger.Info("recording saved", "file", filename, "frames", p.recorder.FrameCount())
}

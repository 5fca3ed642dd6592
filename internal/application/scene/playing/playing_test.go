package playing

import (
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gardengun/internal/application/input"
	"github.com/younwookim/gardengun/internal/application/level"
	"github.com/younwookim/gardengun/internal/application/menu"
	"github.com/younwookim/gardengun/internal/application/replay"
	"github.com/younwookim/gardengun/internal/application/scene"
	"github.com/younwookim/gardengun/internal/application/session"
	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/application/system"
	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
	"github.com/younwookim/gardengun/internal/infrastructure/logging"
	"github.com/younwookim/gardengun/internal/infrastructure/storage"
)

const configDir = "../../../../cmd/game/configs"

// createTestPlaying builds a scene over the shipped configs, replaying steps
func createTestPlaying(t *testing.T, opts session.Options, steps ...replay.Step) *Playing {
	t.Helper()
	loader := config.NewLoader(configDir)
	cfg, err := loader.LoadGame()
	require.NoError(t, err)
	levels, err := loader.LoadLevelIndex()
	require.NoError(t, err)

	progress := level.NewProgress(level.LoadedIndex(levels), storage.NewMemoryStore(), logging.Discard())
	s, err := session.New(cfg, loader, progress, logging.Discard(), opts)
	require.NoError(t, err)

	source := replay.NewReplayer(replay.CreateTestReplayData(opts.StartLevel, steps...))
	return New(cfg, s, source, logging.Discard())
}

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
}

func TestPlaying_Update_StepsSession(t *testing.T) {
	p := createTestPlaying(t, session.Options{StartLevel: "level-1.yaml"},
		replay.Step{Frames: 3})

	for i := 0; i < 3; i++ {
		next, err := p.Update(1.0 / 60)
		require.NoError(t, err)
		assert.Nil(t, next, "stays on this scene")
	}
	assert.Equal(t, 3, p.Session().Frame())
	assert.Equal(t, state.Game, p.Session().State())

	_, err := p.Update(1.0 / 60)
	assert.ErrorIs(t, err, scene.ErrQuit, "quits when the input runs out")
	assert.Equal(t, 3, p.Session().Frame())
}

func TestPlaying_ExitQuits(t *testing.T) {
	p := createTestPlaying(t, session.Options{},
		replay.Step{Input: input.Frame{Down: true}, Frames: 1},
		replay.Step{Input: input.Frame{Confirm: true}, Frames: 1},
		replay.Step{Frames: 10})

	_, err := p.Update(1.0 / 60)
	require.NoError(t, err)
	_, err = p.Update(1.0 / 60)
	assert.ErrorIs(t, err, scene.ErrQuit)
}

func TestPlaying_SessionErrorPropagates(t *testing.T) {
	p := createTestPlaying(t, session.Options{StartLevel: "missing.yaml"}, replay.Step{Frames: 1})

	_, err := p.Update(1.0 / 60)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, scene.ErrQuit)
}

func TestPlaying_WithRecorder(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "run.json")
	rec := replay.NewRecorder("level-1.yaml", false)
	p := createTestPlaying(t, session.Options{StartLevel: "level-1.yaml"},
		replay.Step{Frames: 2},
		replay.Step{Input: input.Frame{Run: 1}, Frames: 3}).
		WithRecorder(rec, filename)

	p.OnEnter()
	for i := 0; i < 5; i++ {
		_, err := p.Update(1.0 / 60)
		require.NoError(t, err)
	}
	p.OnExit()
	assert.False(t, rec.IsRecording())

	data, err := replay.LoadReplay(filename)
	require.NoError(t, err)
	assert.Equal(t, "level-1.yaml", data.Level)
	require.Len(t, data.Frames, 5)
	assert.Equal(t, 1.0, data.Frames[4].Run)

	// a second exit does not overwrite or fail
	p.OnExit()
}

func TestPlaying_OnExitWithoutFrames(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.json")
	rec := replay.NewRecorder("", false)
	p := createTestPlaying(t, session.Options{}).WithRecorder(rec, filename)

	p.OnExit()
	assert.NoFileExists(t, filename)
}

func TestPlaying_Draw(t *testing.T) {
	p := createTestPlaying(t, session.Options{StartLevel: "level-1.yaml"}, replay.Step{Frames: 3})
	screen := ebiten.NewImage(800, 600)

	assert.NotPanics(t, func() { p.Draw(screen) }, "before the level loads")
	for i := 0; i < 3; i++ {
		_, err := p.Update(1.0 / 60)
		require.NoError(t, err)
	}
	assert.NotPanics(t, func() { p.Draw(screen) }, "in game")
}

func TestPlaying_DrawEditor(t *testing.T) {
	p := createTestPlaying(t, session.Options{Editor: true, StartLevel: "level-1.yaml"}, replay.Step{Frames: 2})
	for i := 0; i < 2; i++ {
		_, err := p.Update(1.0 / 60)
		require.NoError(t, err)
	}
	require.Equal(t, state.Editor, p.Session().State())
	assert.NotPanics(t, func() { p.Draw(ebiten.NewImage(800, 600)) })
}

func TestRenderer_Project(t *testing.T) {
	r := newRenderer(config.DisplayConfig{ScreenWidth: 800, ScreenHeight: 600, PixelsPerUnit: 32})

	x, y := r.project(ecs.V2(0, 3), ecs.V3(0, 3, 0))
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)

	x, y = r.project(ecs.V2(1, 3), ecs.V3(2, 4, 5))
	assert.Equal(t, 432.0, x, "right of the scroll point")
	assert.Equal(t, 268.0, y, "world up is screen up")
}

func TestViewOf(t *testing.T) {
	rig := system.NewCameraRig(config.CameraConfig{Offset: ecs.V3(0, 5, 10)})
	rig.Snap(4)

	view := viewOf(rig)
	assert.Equal(t, 4.0, view.X, "follows camera_at")
	assert.Equal(t, 2.5, view.Y, "halfway between look target and eye")

	rig = system.NewCameraRig(config.CameraConfig{Offset: ecs.V3(0, 8, 10)})
	assert.Equal(t, 4.0, viewOf(rig).Y, "eye height moves the view")
}

func TestRenderer_BackdropShift(t *testing.T) {
	r := newRenderer(config.DisplayConfig{ScreenWidth: 800, ScreenHeight: 600, PixelsPerUnit: 32})
	spacing := backdropSpacing * r.ppu

	assert.Equal(t, 0.0, r.backdropShift(0))
	assert.InDelta(t, spacing-backdropParallax*32, r.backdropShift(1), 1e-9, "hills drift left as the look target moves right")
	assert.InDelta(t, backdropParallax*32, r.backdropShift(-1), 1e-9)
	for _, lookX := range []float64{-37.5, 0.25, 12, 1000} {
		shift := r.backdropShift(lookX)
		assert.GreaterOrEqual(t, shift, 0.0)
		assert.Less(t, shift, spacing)
	}
}

func TestRenderer_DefaultPixelsPerUnit(t *testing.T) {
	r := newRenderer(config.DisplayConfig{ScreenWidth: 800, ScreenHeight: 600})
	assert.Equal(t, 32.0, r.ppu)
}

func TestBodyColor(t *testing.T) {
	w := ecs.NewWorld()

	player := w.Spawn()
	ecs.Tag(w.IsPlayer, player)
	w.Killable[player] = ecs.NewKillable()

	deadGoblin := w.Spawn()
	ecs.Tag(w.IsGoblin, deadGoblin)
	w.Killable[deadGoblin] = ecs.Killable{Alive: false}

	barren := w.Spawn()
	ecs.Tag(w.IsBlock, barren)

	fertile := w.Spawn()
	ecs.Tag(w.IsBlock, fertile)
	ecs.Tag(w.FertileGround, fertile)

	openGate := w.Spawn()
	w.Gate[openGate] = ecs.Gate{IsOpen: true}

	plant := w.Spawn()
	w.PlantType[plant] = ecs.PlantTree

	ammo := w.Spawn()
	w.PlantType[ammo] = ecs.PlantTree
	ecs.Tag(w.Pickable, ammo)

	plain := w.Spawn()

	tests := []struct {
		name string
		id   ecs.EntityID
		want any
		ok   bool
	}{
		{"player", player, colorPlayer, true},
		{"dead goblin", deadGoblin, colorDead, true},
		{"barren block", barren, colorBarren, true},
		{"fertile block", fertile, colorFertile, true},
		{"open gate", openGate, colorGateOpen, true},
		{"plant", plant, colorPlant, true},
		{"ammo before plant type", ammo, colorAmmo, true},
		{"nothing to draw", plain, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := bodyColor(w, tt.id)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, c)
			}
		})
	}
}

func TestMenuLine(t *testing.T) {
	tests := []struct {
		name    string
		item    menu.Item
		focused bool
		want    string
	}{
		{"focused", menu.Item{Label: "Resume", Action: menu.ActionResume, Enabled: true}, true, "> Resume"},
		{"unfocused", menu.Item{Label: "Resume", Action: menu.ActionResume, Enabled: true}, false, "  Resume"},
		{"locked level", menu.Item{Label: "2. ambush", Action: menu.ActionPlayLevel}, false, "  2. ambush (locked)"},
		{"just completed", menu.Item{Label: "1. exit", Action: menu.ActionPlayLevel, Enabled: true, Marked: true}, true, "> 1. exit *"},
		{"loading", menu.Item{Label: "Loading..."}, false, "  Loading..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, menuLine(tt.item, tt.focused))
		})
	}
}

package playing

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/gardengun/internal/application/menu"
	"github.com/younwookim/gardengun/internal/application/session"
	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/application/system"
	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorGoblin     = color.RGBA{200, 100, 100, 255}
	colorDead       = color.RGBA{90, 90, 90, 255}
	colorFertile    = color.RGBA{110, 80, 50, 255}
	colorBarren     = color.RGBA{80, 80, 100, 255}
	colorGateClosed = color.RGBA{150, 60, 200, 255}
	colorGateOpen   = color.RGBA{220, 180, 255, 120}
	colorAmmo       = color.RGBA{255, 160, 40, 255}
	colorBullet     = color.RGBA{255, 215, 0, 255}
	colorPlant      = color.RGBA{40, 160, 60, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 160}
	colorEditorGrid = color.RGBA{255, 255, 255, 24}
	colorBackdrop   = color.RGBA{36, 40, 64, 255}
)

// Backdrop hills scroll with looking_at at this fraction of the world's rate
const (
	backdropParallax = 0.5
	backdropSpacing  = 6.0 // units between hills
)

// renderer draws a session as flat rectangles seen from the front
type renderer struct {
	screenW int
	screenH int
	ppu     float64
}

func newRenderer(cfg config.DisplayConfig) *renderer {
	ppu := cfg.PixelsPerUnit
	if ppu <= 0 {
		ppu = 32
	}
	return &renderer{screenW: cfg.ScreenWidth, screenH: cfg.ScreenHeight, ppu: ppu}
}

// viewOf is the world point drawn at the screen centre: camera_at across,
// halfway between the eye and the look target up
func viewOf(c *system.CameraRig) ecs.Vec2 {
	return ecs.V2(c.ScrollX(), (c.Eye().Y+c.LookTarget().Y)/2)
}

// project maps a world point to screen pixels, Y up in the world and down on screen
func (r *renderer) project(view ecs.Vec2, p ecs.Vec3) (float64, float64) {
	x := float64(r.screenW)/2 + (p.X-view.X)*r.ppu
	y := float64(r.screenH)/2 - (p.Y-view.Y)*r.ppu
	return x, y
}

// backdropShift is the pixel offset of the hill pattern for a look target,
// in [0, spacing)
func (r *renderer) backdropShift(lookX float64) float64 {
	spacing := backdropSpacing * r.ppu
	shift := math.Mod(-lookX*backdropParallax*r.ppu, spacing)
	if shift < 0 {
		shift += spacing
	}
	return shift
}

// bodyColor picks the fill of a collider-bearing entity
func bodyColor(w *ecs.World, id ecs.EntityID) (color.RGBA, bool) {
	if k, ok := w.Killable[id]; ok && !k.Alive {
		return colorDead, true
	}
	switch {
	case ecs.Has(w.IsPlayer, id):
		return colorPlayer, true
	case ecs.Has(w.IsGoblin, id):
		return colorGoblin, true
	case ecs.Has(w.IsBlock, id):
		if ecs.Has(w.FertileGround, id) {
			return colorFertile, true
		}
		return colorBarren, true
	case ecs.Has(w.Gate, id):
		if w.Gate[id].IsOpen {
			return colorGateOpen, true
		}
		return colorGateClosed, true
	case ecs.Has(w.Bullet, id):
		return colorBullet, true
	case ecs.Has(w.Pickable, id), ecs.Has(w.FlyingSeed, id):
		return colorAmmo, true
	case ecs.Has(w.PlantType, id):
		return colorPlant, true
	}
	return color.RGBA{}, false
}

func (r *renderer) draw(screen *ebiten.Image, s *session.Session) {
	screen.Fill(colorBG)

	current := s.State()
	if current != state.LoadLevel {
		r.drawBackdrop(screen, s.Camera().LookTarget().X)
		r.drawWorld(screen, s.World(), viewOf(s.Camera()))
	}
	if current == state.Editor {
		r.drawEditorHUD(screen, s)
	}
	if m, ok := s.Menu(); ok {
		r.drawMenu(screen, m)
	}
}

func (r *renderer) drawBackdrop(screen *ebiten.Image, lookX float64) {
	spacing := backdropSpacing * r.ppu
	width := float32(spacing * 0.6)
	height := float32(r.screenH) / 5
	for x := r.backdropShift(lookX) - spacing; x < float64(r.screenW); x += spacing {
		vector.DrawFilledRect(screen, float32(x), float32(r.screenH)-height, width, height, colorBackdrop, false)
	}
}

func (r *renderer) drawWorld(screen *ebiten.Image, w *ecs.World, view ecs.Vec2) {
	for _, id := range ecs.SortedIDs(w.Collider) {
		c, ok := bodyColor(w, id)
		if !ok {
			continue
		}
		gt := w.GlobalTransform(id)
		half := w.Collider[id].HalfExtents.Mul(gt.Scale.Truncate())
		x, y := r.project(view, gt.Translation)
		vector.DrawFilledRect(screen,
			float32(x-half.X*r.ppu), float32(y-half.Y*r.ppu),
			float32(2*half.X*r.ppu), float32(2*half.Y*r.ppu),
			c, false)
	}

	// carried ammunition has no collider while held
	for _, id := range ecs.SortedIDs(w.CarriedAmmo) {
		gt := w.GlobalTransform(id)
		x, y := r.project(view, gt.Translation)
		radius := 0.25 * gt.Scale.X * r.ppu
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius), colorAmmo, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprint(w.CarriedAmmo[id].RemainingShots), int(x)+6, int(y)-16)
	}

	for _, id := range ecs.SortedIDs(w.FloatingText) {
		x, y := r.project(view, w.GlobalTransform(id).Translation)
		ebitenutil.DebugPrintAt(screen, w.FloatingText[id].Text, int(x), int(y))
	}
}

func (r *renderer) drawEditorHUD(screen *ebiten.Image, s *session.Session) {
	// unit grid around the view
	view := viewOf(s.Camera())
	scrollX := view.X
	halfUnits := float64(r.screenW) / 2 / r.ppu
	for gx := math.Floor(scrollX - halfUnits); gx <= scrollX+halfUnits; gx++ {
		x, _ := r.project(view, ecs.V3(gx, 0, 0))
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(r.screenH), 1, colorEditorGrid, false)
	}

	text := fmt.Sprintf("EDITOR %s | P: play-test | R: reload file", s.Progress().CurrentLevel)
	ebitenutil.DebugPrintAt(screen, text, 10, r.screenH-20)
}

func (r *renderer) drawMenu(screen *ebiten.Image, m menu.Menu) {
	vector.DrawFilledRect(screen, 0, 0, float32(r.screenW), float32(r.screenH), colorOverlay, false)

	x := r.screenW/2 - 60
	y := r.screenH/2 - 16*(len(m.Items)+2)/2
	ebitenutil.DebugPrintAt(screen, m.Title, x, y)
	for i, item := range m.Items {
		ebitenutil.DebugPrintAt(screen, menuLine(item, i == m.Focus), x, y+16*(i+2))
	}
}

// menuLine formats one menu entry: focus cursor, label and lock or completion marks
func menuLine(item menu.Item, focused bool) string {
	cursor := "  "
	if focused {
		cursor = "> "
	}
	line := cursor + item.Label
	if !item.Enabled && item.Action == menu.ActionPlayLevel {
		line += " (locked)"
	}
	if item.Marked {
		line += " *"
	}
	return line
}

package system

import (
	"fmt"
	"math"

	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

// Default authored values
const (
	DefaultFloatingText     = "<TEXT>"
	DefaultFloatingFontSize = 24.0
	gateDepth               = -0.5
	floatingTextDepth       = -1.0
)

// PopulateContext tells a populate routine why it runs
type PopulateContext struct {
	// FirstTime is false when authored fields of an existing entity changed
	FirstTime bool
	InEditor  bool
}

// PopulateFunc attaches runtime components to a level entity from its authored fields
type PopulateFunc func(ctx PopulateContext, w *ecs.World, id ecs.EntityID, e config.EntityConfig)

// Populator builds level entities by type
type Populator struct {
	config   *config.GameConfig
	shooting *ShootingSystem
	registry map[string]PopulateFunc
}

// NewPopulator registers the routines for every level entity type
func NewPopulator(cfg *config.GameConfig) *Populator {
	p := &Populator{
		config:   cfg,
		shooting: NewShootingSystem(cfg.Shooting),
		registry: make(map[string]PopulateFunc),
	}
	p.Register(config.TypePlayer, p.populatePlayer)
	p.Register(config.TypeGoblin, p.populateGoblin)
	p.Register(config.TypePickableAmmo, p.populatePickableAmmo)
	p.Register(config.TypeGate, p.populateGate)
	p.Register(config.TypeBlock, p.populateBlock)
	p.Register(config.TypeFloatingText, p.populateFloatingText)
	return p
}

// Register sets the routine for an entity type
func (p *Populator) Register(entityType string, fn PopulateFunc) {
	p.registry[entityType] = fn
}

// Spawn creates a level entity and populates it for the first time
func (p *Populator) Spawn(w *ecs.World, e config.EntityConfig, inEditor bool) (ecs.EntityID, error) {
	if _, ok := p.registry[e.Type]; !ok {
		return 0, fmt.Errorf("%w: %q", config.ErrUnknownEntityType, e.Type)
	}
	id := w.Spawn()
	w.EntityType[id] = e.Type
	ecs.Tag(w.BelongsToLevel, id)
	if err := p.Populate(PopulateContext{FirstTime: true, InEditor: inEditor}, w, id, e); err != nil {
		w.DespawnRecursive(id)
		return 0, err
	}
	return id, nil
}

// SpawnLevel spawns every entity of a level in authored order
func (p *Populator) SpawnLevel(w *ecs.World, lvl *config.LevelConfig, inEditor bool) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(lvl.Entities))
	for i, e := range lvl.Entities {
		id, err := p.Spawn(w, e, inEditor)
		if err != nil {
			return ids, fmt.Errorf("entity %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Populate runs the routine for e's type. The authored position is applied
// every time, snapped to the grid in the editor.
func (p *Populator) Populate(ctx PopulateContext, w *ecs.World, id ecs.EntityID, e config.EntityConfig) error {
	fn, ok := p.registry[e.Type]
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnknownEntityType, e.Type)
	}
	if _, err := e.Plant(); err != nil {
		return fmt.Errorf("populate %s: %w", e.Type, err)
	}
	if ctx.InEditor && ctx.FirstTime && e.Type != config.TypeFloatingText {
		ecs.Tag(w.SnapToGrid, id)
	}

	t := w.Transform[id]
	t.Translation = e.Position
	w.Transform[id] = t

	fn(ctx, w, id, e)

	if ecs.Has(w.SnapToGrid, id) {
		SnapEntityToGrid(w, id)
	}
	return nil
}

// SnapToGrid aligns a coordinate so that an object of size cells has its
// edges on whole units
func SnapToGrid(coord float64, size int) float64 {
	offset := float64(size) * 0.5
	return math.Round(coord-offset) + offset
}

// SnapEntityToGrid snaps X and Y of an entity using its GridSize, default one cell
func SnapEntityToGrid(w *ecs.World, id ecs.EntityID) {
	size, ok := w.GridSize[id]
	if !ok {
		size = ecs.DefaultGridSize()
	}
	t := w.Transform[id]
	t.Translation.X = SnapToGrid(t.Translation.X, size.X)
	t.Translation.Y = SnapToGrid(t.Translation.Y, size.Y)
	w.Transform[id] = t
}

// spawnModel attaches the visual model of an actor and its named animation
// players, and registers them with the owner
func (p *Populator) spawnModel(w *ecs.World, owner ecs.EntityID, model string) ecs.EntityID {
	child := w.Spawn()
	w.Name[child] = model
	w.SetParent(child, owner)

	mc := p.config.Models[model]
	animations := mc.Owner()
	for _, name := range mc.Players {
		pid := w.Spawn()
		w.Name[pid] = name
		w.SetParent(pid, child)
		w.AnimationPlayer[pid] = ecs.NewAnimationPlayer()
		animations.Players[name] = pid
	}
	w.Animations[owner] = animations
	return child
}

func (p *Populator) populateActor(ctx PopulateContext, w *ecs.World, id ecs.EntityID, actor config.ActorConfig) {
	if ctx.FirstTime {
		w.RotateChild[id] = p.spawnModel(w, id, actor.Model)
		w.Killable[id] = ecs.NewKillable()
		w.Motor[id] = ecs.MotorState{}
		w.Turning[id] = ecs.TurningOutput{}
		w.Velocity[id] = ecs.Velocity{}
	}
	body := ecs.DynamicBody()
	body.LockRotation = true
	w.Body[id] = body
	w.Collider[id] = ecs.Cuboid(actor.HalfWidth, actor.Platformer.FloatHeight)
	w.Platformer[id] = actor.Platformer.ToComponent()
	ecs.Tag(w.ActiveEvents, id)
}

func (p *Populator) populatePlayer(ctx PopulateContext, w *ecs.World, id ecs.EntityID, _ config.EntityConfig) {
	p.populateActor(ctx, w, id, p.config.Player)
	if !ctx.FirstTime {
		return
	}
	ecs.Tag(w.IsPlayer, id)
	ecs.Tag(w.CanPick, id)
	w.CanCarry[id] = ecs.CanCarry{}
	w.CanShoot[id] = p.shooting.NewCanShoot()
	w.Controls[id] = ecs.PlatformerControls{DesiredForward: ecs.Vec3X}
}

func (p *Populator) populateGoblin(ctx PopulateContext, w *ecs.World, id ecs.EntityID, _ config.EntityConfig) {
	p.populateActor(ctx, w, id, p.config.Goblin)
	if !ctx.FirstTime {
		return
	}
	ecs.Tag(w.IsGoblin, id)
	ecs.Tag(w.DestroysBullets, id)
	ecs.Tag(w.KeepGatesClosed, id)
	w.Controls[id] = ecs.PlatformerControls{}
	if clip := p.config.Goblin.InitialClip; clip != "" {
		w.InitialAnimation[id] = ecs.InitialAnimation{Player: ArmaturePlayer, Clip: clip}
	}
}

func (p *Populator) populatePickableAmmo(ctx PopulateContext, w *ecs.World, id ecs.EntityID, e config.EntityConfig) {
	plant, err := e.Plant()
	if err != nil {
		panic(fmt.Sprintf("pickable ammo %d: %v", id, err))
	}
	w.PlantType[id] = plant
	if !ctx.FirstTime {
		return
	}
	ecs.Tag(w.Pickable, id)

	child := w.Spawn()
	w.Name[child] = plant.String()
	w.Transform[child] = ecs.IdentityTransform().WithScale(p.config.Ammunition.PickupScale)
	w.Spin[child] = ecs.Spin{Yaw: p.config.Ammunition.PickupSpin}
	w.SetParent(child, id)

	w.Body[id] = ecs.FixedBody()
	w.Collider[id] = ecs.CapsuleY(0.5, 0.5)
	ecs.Tag(w.Sensor, id)
	ecs.Tag(w.ActiveEvents, id)
}

func (p *Populator) populateGate(ctx PopulateContext, w *ecs.World, id ecs.EntityID, _ config.EntityConfig) {
	t := w.Transform[id]
	t.Translation.Z = gateDepth
	w.Transform[id] = t
	if !ctx.FirstTime {
		return
	}
	w.Gate[id] = ecs.Gate{}
	p.spawnModel(w, id, "Gate")
	w.Body[id] = ecs.FixedBody()
	w.Collider[id] = ecs.Cuboid(1, 1.5)
	ecs.Tag(w.Sensor, id)
}

func (p *Populator) populateBlock(ctx PopulateContext, w *ecs.World, id ecs.EntityID, e config.EntityConfig) {
	size := e.Grid()
	w.GridSize[id] = size
	w.Collider[id] = ecs.Cuboid(float64(size.X)*0.5, float64(size.Y)*0.5)
	if e.Barren {
		delete(w.FertileGround, id)
	} else {
		ecs.Tag(w.FertileGround, id)
	}
	if !ctx.FirstTime {
		return
	}
	ecs.Tag(w.IsBlock, id)
	ecs.Tag(w.DestroysBullets, id)
	w.Body[id] = ecs.FixedBody()
}

func (p *Populator) populateFloatingText(_ PopulateContext, w *ecs.World, id ecs.EntityID, e config.EntityConfig) {
	ft := ecs.FloatingText{Text: e.Text, FontSize: e.FontSize}
	if ft.Text == "" {
		ft.Text = DefaultFloatingText
	}
	if ft.FontSize <= 0 {
		ft.FontSize = DefaultFloatingFontSize
	}
	w.FloatingText[id] = ft

	t := w.Transform[id]
	t.Translation.Z = floatingTextDepth
	w.Transform[id] = t
}

package system

import (
	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

// PlantingSystem turns landed seeds into growing plants
type PlantingSystem struct {
	config config.PlantingConfig
}

// NewPlantingSystem creates a new planting system
func NewPlantingSystem(cfg config.PlantingConfig) *PlantingSystem {
	return &PlantingSystem{config: cfg}
}

// InitiatePlanting replaces every flying seed touching fertile ground with a
// plant of the same type, spawned above the landing point
func (s *PlantingSystem) InitiatePlanting(ctx *Context) {
	w := ctx.World
	planted := make(map[ecs.EntityID]bool)
	for _, p := range ecs.ContactPairs(ctx.Collisions) {
		if !ecs.Has(w.FlyingSeed, p.A) || !ecs.Has(w.FertileGround, p.B) || planted[p.A] {
			continue
		}
		plant, ok := w.PlantType[p.A]
		if !ok {
			continue
		}
		planted[p.A] = true

		landing := w.GlobalTransform(p.A).Translation
		ctx.Commands.Despawn(p.A)
		s.spawnPlant(ctx.Commands, plant, landing.Add(ecs.Vec3Y.Scale(s.config.SpawnOffset)))
	}
}

func (s *PlantingSystem) spawnPlant(cmds *ecs.Commands, plant ecs.PlantType, at ecs.Vec3) ecs.EntityID {
	return cmds.Spawn(func(w *ecs.World, id ecs.EntityID) {
		w.Transform[id] = ecs.At(at).WithScale(s.config.InitialScale)
		w.PlantType[id] = plant
		body := ecs.FixedBody()
		body.LockRotation = true
		body.LockTranslationX = true
		w.Body[id] = body
		w.Collider[id] = ecs.Collider{HalfExtents: s.config.HalfExtents}
		ecs.Tag(w.Growing, id)
		ecs.Tag(w.BelongsToLevel, id)
	})
}

// ApplyGrowing scales growing plants up until their scale reaches unit length,
// then pins the scale to one and stops growing
func (s *PlantingSystem) ApplyGrowing(ctx *Context) {
	w := ctx.World
	pace := s.config.GrowRate * ctx.DT
	for _, id := range ecs.SortedIDs(w.Growing) {
		t, ok := w.Transform[id]
		if !ok {
			continue
		}
		t.Scale = t.Scale.Add(ecs.Vec3One.Scale(pace))
		t.Translation = t.Translation.Add(ecs.Vec3Y.Scale(pace))
		if t.Scale.LengthSquared() >= 1 {
			t.Scale = ecs.Vec3One
			ctx.Commands.Untag(w.Growing, id)
		}
		w.Transform[id] = t
	}
}

package system

import (
	"cmp"
	"slices"

	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

// AmmunitionSystem handles picking up, carrying and using up ammunition
type AmmunitionSystem struct {
	config config.AmmunitionConfig
}

// NewAmmunitionSystem creates a new ammunition system
func NewAmmunitionSystem(cfg config.AmmunitionConfig) *AmmunitionSystem {
	return &AmmunitionSystem{config: cfg}
}

// InitiatePickup raises a PickEvent for every picker that touched a pickable
func (s *AmmunitionSystem) InitiatePickup(ctx *Context) {
	w := ctx.World
	for _, p := range ecs.SensorPairs(ctx.Collisions) {
		if ecs.Has(w.CanPick, p.A) && ecs.Has(w.Pickable, p.B) {
			ctx.Events.Pick.Send(PickEvent{Picker: p.A, Pickable: p.B})
		}
	}
}

// HandleCarrying gives each idle carrier the first pickable it touched this
// frame, lowest pickable ID first. Busy carriers ignore pickups.
func (s *AmmunitionSystem) HandleCarrying(ctx *Context) {
	w := ctx.World
	events := ctx.Events.Pick.Drain()
	slices.SortStableFunc(events, func(a, b PickEvent) int {
		if c := cmp.Compare(a.Picker, b.Picker); c != 0 {
			return c
		}
		return cmp.Compare(a.Pickable, b.Pickable)
	})

	taken := make(map[ecs.EntityID]bool)
	for _, ev := range events {
		carrier, ok := w.CanCarry[ev.Picker]
		if !ok || !carrier.IsIdle() {
			continue
		}
		model, ok := w.RotateChild[ev.Picker]
		if !ok {
			continue
		}
		plant, ok := w.PlantType[ev.Pickable]
		if !ok || taken[ev.Pickable] {
			continue
		}
		taken[ev.Pickable] = true

		ctx.Commands.Despawn(ev.Pickable)
		carrier.Carries = ctx.Commands.Spawn(func(w *ecs.World, id ecs.EntityID) {
			w.Transform[id] = ecs.At(s.config.CarryOffset).WithScale(s.config.CarryScale)
			w.SetParent(id, model)
			w.CarriedAmmo[id] = ecs.CarriedAmmunition{RemainingShots: 1}
			w.PlantType[id] = plant
		})
		w.CanCarry[ev.Picker] = carrier
	}
}

// HandleUseUp consumes shots. The last shot detaches the ammunition in place
// and throws it as a flying seed along the eject direction.
func (s *AmmunitionSystem) HandleUseUp(ctx *Context) {
	w := ctx.World
	for _, ev := range ctx.Events.UseUp.Drain() {
		ammo, ok := w.CarriedAmmo[ev.CarriedAmmunition]
		if !ok || ammo.RemainingShots == 0 {
			continue
		}
		transform, ok := w.Transform[ev.CarriedAmmunition]
		if !ok {
			continue
		}

		ammo.RemainingShots--
		transform.Scale = transform.Scale.Sub(ecs.Vec3One.Scale(s.config.ShrinkPerShot))
		w.CarriedAmmo[ev.CarriedAmmunition] = ammo
		w.Transform[ev.CarriedAmmunition] = transform

		if ammo.RemainingShots > 0 {
			continue
		}

		if carrier, ok := w.CanCarry[ev.Carrier]; ok {
			carrier.Carries = 0
			w.CanCarry[ev.Carrier] = carrier
		}
		w.Transform[ev.CarriedAmmunition] = w.GlobalTransform(ev.CarriedAmmunition)

		dir := ev.EjectDirection
		velocity := ecs.Velocity{
			Linear:  dir.Truncate().Scale(s.config.EjectSpeed).Add(ecs.Vec2Y.Scale(s.config.EjectLift)),
			Angular: -s.config.EjectSpin * dir.X,
		}
		ctx.Commands.Do(ev.CarriedAmmunition, func(w *ecs.World, id ecs.EntityID) {
			w.RemoveParent(id)
			delete(w.CarriedAmmo, id)
			w.Body[id] = ecs.DynamicBody()
			w.Collider[id] = ecs.CapsuleY(0.5, 0.5)
			w.Velocity[id] = velocity
			ecs.Tag(w.ActiveEvents, id)
			ecs.Tag(w.FlyingSeed, id)
			ecs.Tag(w.BelongsToLevel, id)
		})
	}
}

package system

import (
	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

// ShootingSystem fires bullets and cleans them up
type ShootingSystem struct {
	config config.ShootingConfig
}

// NewShootingSystem creates a new shooting system
func NewShootingSystem(cfg config.ShootingConfig) *ShootingSystem {
	return &ShootingSystem{config: cfg}
}

// NewCanShoot returns a shooter whose first shot is immediate
func (s *ShootingSystem) NewCanShoot() ecs.CanShoot {
	return ecs.CanShoot{Cooldown: ecs.NewFinishedTimer(s.config.Cooldown)}
}

// UpdateCooldowns ticks every shooter's cooldown
func (s *ShootingSystem) UpdateCooldowns(ctx *Context) {
	w := ctx.World
	for id, cs := range w.CanShoot {
		cs.Cooldown.Tick(ctx.DT)
		w.CanShoot[id] = cs
	}
}

// ApplyShooting handles shoot intents. A shot needs a finished cooldown and
// carried ammunition; it spawns a bullet one unit ahead of the shooter and
// uses up a shot, ejecting the ammunition backwards.
func (s *ShootingSystem) ApplyShooting(ctx *Context) {
	w := ctx.World
	for _, ev := range ctx.Events.Shoot.Drain() {
		cs, ok := w.CanShoot[ev.Shooter]
		if !ok {
			continue
		}
		carrier, ok := w.CanCarry[ev.Shooter]
		if !ok || !cs.Cooldown.Finished() || carrier.IsIdle() {
			continue
		}
		cs.Cooldown.Reset()
		w.CanShoot[ev.Shooter] = cs

		origin := w.GlobalTransform(ev.Shooter).Translation.Add(ev.Direction)
		velocity := ev.Direction.Truncate().Scale(s.config.BulletSpeed)
		ctx.Commands.Spawn(func(w *ecs.World, id ecs.EntityID) {
			w.Transform[id] = ecs.At(origin)
			body := ecs.DynamicBody()
			body.GravityScale = 0
			w.Body[id] = body
			w.Velocity[id] = ecs.Velocity{Linear: velocity}
			w.Collider[id] = ecs.Ball(s.config.BulletRadius)
			w.Bullet[id] = ecs.Bullet{Timeout: ecs.NewTimer(s.config.BulletTimeout)}
			ecs.Tag(w.Sensor, id)
			ecs.Tag(w.ActiveEvents, id)
			ecs.Tag(w.BelongsToLevel, id)
		})

		ctx.Events.UseUp.Send(UseUpShotEvent{
			Carrier:           ev.Shooter,
			CarriedAmmunition: carrier.Carries,
			EjectDirection:    ev.Direction.Neg(),
		})
	}
}

// DestroyBulletWhenColliding removes bullets that touched anything that destroys bullets
func (s *ShootingSystem) DestroyBulletWhenColliding(ctx *Context) {
	w := ctx.World
	for _, p := range ecs.SensorPairs(ctx.Collisions) {
		if ecs.Has(w.Bullet, p.A) && ecs.Has(w.DestroysBullets, p.B) {
			ctx.Commands.Despawn(p.A)
		}
	}
}

// DestroyBulletsAfterTimeout removes bullets that lived out their timeout
func (s *ShootingSystem) DestroyBulletsAfterTimeout(ctx *Context) {
	w := ctx.World
	for _, id := range ecs.SortedIDs(w.Bullet) {
		b := w.Bullet[id]
		if b.Timeout.Tick(ctx.DT).Finished() {
			ctx.Commands.Despawn(id)
		}
		w.Bullet[id] = b
	}
}

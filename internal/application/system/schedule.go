package system

import (
	"github.com/younwookim/gardengun/internal/application/input"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
	"github.com/younwookim/gardengun/internal/physics"
)

// Schedule runs the gameplay systems in their fixed per-frame order
type Schedule struct {
	Physics    *physics.Engine
	Ammunition *AmmunitionSystem
	Planting   *PlantingSystem
	Shooting   *ShootingSystem
	Camera     *CameraRig
}

// NewSchedule creates the systems from game configuration
func NewSchedule(cfg *config.GameConfig) *Schedule {
	return &Schedule{
		Physics:    physics.New(physics.Config{Gravity: cfg.Physics.Gravity}),
		Ammunition: NewAmmunitionSystem(cfg.Ammunition),
		Planting:   NewPlantingSystem(cfg.Planting),
		Shooting:   NewShootingSystem(cfg.Shooting),
		Camera:     NewCameraRig(cfg.Camera),
	}
}

// Run executes one frame: Simulate while the game is being played, then Update
func (s *Schedule) Run(ctx *Context, in input.Frame) {
	ctx.Collisions = nil
	if ctx.State.Current().PhysicsActive() {
		s.Simulate(ctx, in)
	}
	s.Update(ctx)
}

// Simulate moves actors and steps physics, leaving the contacts in ctx.Collisions
func (s *Schedule) Simulate(ctx *Context, in input.Frame) {
	ApplyControls(ctx, in)
	GoblinsFacePlayer(ctx)
	physics.ApplyMotors(ctx.World, s.Physics.Gravity(), ctx.DT)
	ctx.Collisions = s.Physics.Step(ctx.World, ctx.DT)
}

// Update runs timers and the event handlers on the frame's collisions, then
// commits deferred changes. Timers, growth and gate opening only run while the
// game is being played; event handlers always drain their queues.
func (s *Schedule) Update(ctx *Context) {
	playing := ctx.State.Current().PhysicsActive()

	if playing {
		s.Shooting.UpdateCooldowns(ctx)
		s.Shooting.DestroyBulletsAfterTimeout(ctx)
		s.Planting.ApplyGrowing(ctx)
		ApplyActorsRotation(ctx)
		ApplyRotateAroundAxis(ctx)
		// sees kills from the previous frame
		InitiateGateOpening(ctx)
	}

	// shooting before pickup so a shot never fires ammunition picked up this frame
	s.Shooting.ApplyShooting(ctx)
	s.Ammunition.HandleUseUp(ctx)
	s.Ammunition.InitiatePickup(ctx)
	s.Ammunition.HandleCarrying(ctx)
	s.Planting.InitiatePlanting(ctx)
	s.Shooting.DestroyBulletWhenColliding(ctx)
	HandleGoblinHittingStuff(ctx)
	HandleKilling(ctx)
	PassThroughGate(ctx)
	SetInitialAnimation(ctx)

	if playing {
		TickAnimations(ctx)
		s.Camera.Update(ctx)
	}

	ctx.Commands.Flush()
}

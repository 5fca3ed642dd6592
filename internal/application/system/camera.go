package system

import (
	"math"

	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

// Pursuit is a point mass chasing a target along one axis
type Pursuit struct {
	Position float64
	Velocity float64
	config   config.PursuitConfig
}

// NewPursuit creates a resting pursuit point
func NewPursuit(cfg config.PursuitConfig) Pursuit {
	return Pursuit{config: cfg}
}

// Update accelerates toward target while out of range and brakes inside it
func (p *Pursuit) Update(target, dt float64) {
	dist := target - p.Position
	if math.Abs(dist) > p.config.StopAtRange {
		desired := ecs.Signum(dist) * p.config.MaxVelocity
		p.Velocity = ecs.MoveTowards(p.Velocity, desired, p.config.Acceleration*dt)
	} else {
		p.Velocity = ecs.MoveTowards(p.Velocity, 0, p.config.StopAcceleration*dt)
	}
	p.Position += p.Velocity * dt
}

// Snap puts the point on target at rest
func (p *Pursuit) Snap(target float64) {
	p.Position = target
	p.Velocity = 0
}

// CameraRig follows the player horizontally with two pursuit points.
// CameraAt drives the scroll. LookingAt drives the look target, which the
// renderer uses for backdrop parallax, and the eye sits at offset from it.
type CameraRig struct {
	CameraAt  Pursuit
	LookingAt Pursuit
	offset    ecs.Vec3
}

// NewCameraRig creates a rig at the origin
func NewCameraRig(cfg config.CameraConfig) *CameraRig {
	return &CameraRig{
		CameraAt:  NewPursuit(cfg.CameraAt),
		LookingAt: NewPursuit(cfg.LookingAt),
		offset:    cfg.Offset,
	}
}

// Update chases the player, if there is one
func (c *CameraRig) Update(ctx *Context) {
	w := ctx.World
	player, ok := w.Player()
	if !ok {
		return
	}
	x := w.GlobalTransform(player).Translation.X
	c.CameraAt.Update(x, ctx.DT)
	c.LookingAt.Update(x, ctx.DT)
}

// Snap centres both points on x, used when a level is loaded
func (c *CameraRig) Snap(x float64) {
	c.CameraAt.Snap(x)
	c.LookingAt.Snap(x)
}

// LookTarget is the point the camera looks at
func (c *CameraRig) LookTarget() ecs.Vec3 {
	return ecs.V3(c.LookingAt.Position, 0, 0)
}

// Eye is the camera position
func (c *CameraRig) Eye() ecs.Vec3 {
	return c.LookTarget().Add(c.offset)
}

// ScrollX is the horizontal centre of the 2D view
func (c *CameraRig) ScrollX() float64 {
	return c.CameraAt.Position
}

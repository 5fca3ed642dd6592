package physics

import (
	"math"

	"github.com/younwookim/gardengun/internal/ecs"
)

// ApplyMotors turns platformer controls into body velocity and facing.
// Reads Grounded from the previous step; call before Step.
func ApplyMotors(w *ecs.World, gravity, dt float64) {
	for _, id := range ecs.SortedIDs(w.Platformer) {
		cfg := w.Platformer[id]
		controls := w.Controls[id]
		state := w.Motor[id]
		vel := w.Velocity[id]

		grounded := ecs.Has(w.Grounded, id)
		if grounded {
			state.CoyoteLeft = cfg.CoyoteTime
			if vel.Linear.Y <= 0 {
				state.Jumping = false
			}
		} else {
			state.CoyoteLeft = math.Max(0, state.CoyoteLeft-dt)
		}

		accel := cfg.AirAcceleration
		if grounded {
			accel = cfg.Acceleration
		}
		target := controls.DesiredVelocity.X * cfg.FullSpeed
		vel.Linear.X = ecs.MoveTowards(vel.Linear.X, target, accel*dt)

		if controls.Jump && !state.Jumping && state.CoyoteLeft > 0 {
			vel.Linear.Y = JumpVelocity(gravity, cfg.FullJumpHeight)
			state.Jumping = true
			state.CoyoteLeft = 0
		}

		if controls.DesiredForward.LengthSquared() > 0 {
			w.Turning[id] = ecs.TurningOutput{Forward: controls.DesiredForward.Normalize()}
		}

		w.Motor[id] = state
		w.Velocity[id] = vel
	}
}

// JumpVelocity is the take-off speed that peaks at height under gravity
func JumpVelocity(gravity, height float64) float64 {
	return math.Sqrt(2 * gravity * height)
}

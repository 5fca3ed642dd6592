package system

import (
	"github.com/younwookim/gardengun/internal/application/input"
	"github.com/younwookim/gardengun/internal/ecs"
)

// ApplyControls feeds the frame's input to the player's controller and raises
// a ShootEvent in the direction the player faces. Dead players do nothing.
func ApplyControls(ctx *Context, in input.Frame) {
	w := ctx.World
	player, ok := w.Player()
	if !ok {
		return
	}
	controls, ok := w.Controls[player]
	if !ok {
		return
	}
	if k, ok := w.Killable[player]; ok && !k.Alive {
		w.Controls[player] = ecs.PlatformerControls{DesiredForward: controls.DesiredForward}
		return
	}

	movement := ecs.Vec3X.Scale(clamp(in.Run, -1, 1))
	controls.DesiredVelocity = movement
	if movement.LengthSquared() > 0 {
		controls.DesiredForward = movement
	}
	controls.Jump = in.Jump
	w.Controls[player] = controls

	if in.Shoot {
		ctx.Events.Shoot.Send(ShootEvent{Shooter: player, Direction: facing(w, player)})
	}
}

// facing is the turning output, or the desired forward before the first turn
func facing(w *ecs.World, id ecs.EntityID) ecs.Vec3 {
	if f := w.Turning[id].Forward; f.LengthSquared() > 0 {
		return f.Normalize()
	}
	if f := w.Controls[id].DesiredForward; f.LengthSquared() > 0 {
		return f.Normalize()
	}
	return ecs.Vec3X
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}

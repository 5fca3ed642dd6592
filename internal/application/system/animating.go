package system

import "github.com/younwookim/gardengun/internal/ecs"

// ApplyActorsRotation turns each actor's model to face its turning output
func ApplyActorsRotation(ctx *Context) {
	w := ctx.World
	for id, child := range w.RotateChild {
		forward := w.Turning[id].Forward
		if forward.LengthSquared() == 0 {
			continue
		}
		t, ok := w.Transform[child]
		if !ok {
			continue
		}
		t.Yaw = ecs.YawLookingTo(forward)
		w.Transform[child] = t
	}
}

// ApplyRotateAroundAxis spins entities with a Spin component
func ApplyRotateAroundAxis(ctx *Context) {
	w := ctx.World
	for id, spin := range w.Spin {
		t, ok := w.Transform[id]
		if !ok {
			continue
		}
		t.Yaw += spin.Yaw * ctx.DT
		t.Roll += spin.Roll * ctx.DT
		w.Transform[id] = t
	}
}

// SetInitialAnimation starts the requested looping clip once the owner knows
// both the clip and the player, then forgets the request. Missing names are
// retried next frame.
func SetInitialAnimation(ctx *Context) {
	w := ctx.World
	for _, id := range ecs.SortedIDs(w.InitialAnimation) {
		initial := w.InitialAnimation[id]
		if k, ok := w.Killable[id]; ok && !k.Alive {
			// died before its first frame; keep the death clip
			ctx.Commands.Do(id, forgetInitialAnimation)
			continue
		}
		owner, ok := w.Animations[id]
		if !ok {
			continue
		}
		playerID, clip, err := owner.Lookup(initial.Player, initial.Clip)
		if err != nil {
			continue
		}
		p, ok := w.AnimationPlayer[playerID]
		if !ok {
			continue
		}
		p.Play(clip).Repeat()
		w.AnimationPlayer[playerID] = p
		ctx.Commands.Do(id, forgetInitialAnimation)
	}
}

func forgetInitialAnimation(w *ecs.World, id ecs.EntityID) {
	delete(w.InitialAnimation, id)
}

// TickAnimations advances every animation player
func TickAnimations(ctx *Context) {
	w := ctx.World
	for id, p := range w.AnimationPlayer {
		p.Tick(ctx.DT)
		w.AnimationPlayer[id] = p
	}
}

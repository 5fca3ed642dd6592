package system

import "github.com/younwookim/gardengun/internal/ecs"

// GoblinsFacePlayer turns every living goblin toward the player
func GoblinsFacePlayer(ctx *Context) {
	w := ctx.World
	player, ok := w.Player()
	if !ok {
		return
	}
	playerX := w.GlobalTransform(player).Translation.X

	for _, id := range ecs.SortedIDs(w.IsGoblin) {
		if k, ok := w.Killable[id]; !ok || !k.Alive {
			continue
		}
		controls, ok := w.Controls[id]
		if !ok {
			continue
		}
		dx := playerX - w.GlobalTransform(id).Translation.X
		controls.DesiredForward = ecs.Vec3X.Scale(ecs.Signum(dx))
		w.Controls[id] = controls
	}
}

// HandleGoblinHittingStuff kills a living goblin hit by a bullet, and the
// player when a living goblin touches them
func HandleGoblinHittingStuff(ctx *Context) {
	w := ctx.World
	for _, p := range ecs.ContactPairs(ctx.Collisions) {
		if !ecs.Has(w.IsGoblin, p.A) {
			continue
		}
		if k, ok := w.Killable[p.A]; !ok || !k.Alive {
			continue
		}
		switch {
		case ecs.Has(w.Bullet, p.B):
			ctx.Events.Kill.Send(KillEvent{EntityToKill: p.A})
		case ecs.Has(w.IsPlayer, p.B):
			ctx.Events.Kill.Send(KillEvent{EntityToKill: p.B})
		}
	}
}

package system

import (
	"fmt"

	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/ecs"
)

// Mandatory animation names
const (
	ArmaturePlayer = "Armature"
	DeathClip      = "Death"
	GateOpener     = "GateOpener"
	OpenClip       = "Open"
)

// HandleKilling applies kill events. Killing twice is a no-op; the death
// animation plays once and a dead player ends the game.
func HandleKilling(ctx *Context) {
	w := ctx.World
	for _, ev := range ctx.Events.Kill.Drain() {
		id := ev.EntityToKill
		k, ok := w.Killable[id]
		if !ok {
			ctx.Logger.Error("entity is not killable", "entity", id)
			continue
		}
		ctx.Commands.Untag(w.DestroysBullets, id)
		if !k.Alive {
			continue
		}
		k.Alive = false
		w.Killable[id] = k

		MustPlay(w, id, ArmaturePlayer, DeathClip)

		if ecs.Has(w.IsPlayer, id) {
			ctx.State.Request(state.GameOver)
		}
	}
}

// MustPlay plays a clip that the model is required to have. A missing owner,
// clip or player is an authoring error and panics.
func MustPlay(w *ecs.World, owner ecs.EntityID, player, clip string) {
	id, c := mustResolve(w, owner, player, clip)
	p := w.AnimationPlayer[id]
	p.Play(c)
	w.AnimationPlayer[id] = p
}

// MustStart restarts a clip that the model is required to have
func MustStart(w *ecs.World, owner ecs.EntityID, player, clip string) {
	id, c := mustResolve(w, owner, player, clip)
	p := w.AnimationPlayer[id]
	p.Start(c)
	w.AnimationPlayer[id] = p
}

func mustResolve(w *ecs.World, owner ecs.EntityID, player, clip string) (ecs.EntityID, ecs.Clip) {
	animations, ok := w.Animations[owner]
	if !ok {
		panic(fmt.Sprintf("entity %d has no animations", owner))
	}
	id, c, err := animations.Lookup(player, clip)
	if err != nil {
		panic(fmt.Sprintf("entity %d: %v", owner, err))
	}
	if _, ok := w.AnimationPlayer[id]; !ok {
		panic(fmt.Sprintf("entity %d: %q animation player does not exist", owner, player))
	}
	return id, c
}

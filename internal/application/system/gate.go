package system

import (
	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/ecs"
)

// InitiateGateOpening opens every closed gate once nothing that keeps gates
// closed is alive. A gate opens once and stays open.
func InitiateGateOpening(ctx *Context) {
	w := ctx.World
	for id := range w.KeepGatesClosed {
		if k, ok := w.Killable[id]; ok && k.Alive {
			return
		}
	}
	for _, id := range ecs.SortedIDs(w.Gate) {
		gate := w.Gate[id]
		if gate.IsOpen {
			continue
		}
		MustStart(w, id, GateOpener, OpenClip)
		gate.IsOpen = true
		w.Gate[id] = gate
	}
}

// PassThroughGate completes the level when the player touches an open gate
func PassThroughGate(ctx *Context) {
	w := ctx.World
	for _, p := range ecs.SensorPairs(ctx.Collisions) {
		if !ecs.Has(w.IsPlayer, p.A) {
			continue
		}
		if gate, ok := w.Gate[p.B]; ok && gate.IsOpen {
			ctx.State.Request(state.LevelCompleted)
		}
	}
}

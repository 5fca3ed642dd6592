package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
)

func TestInitiateGateOpening(t *testing.T) {
	h := newTestHarness(t)
	w := h.world()
	first := h.spawn(t, config.TypeGoblin, ecs.V3(4, 0, 0))
	second := h.spawn(t, config.TypeGoblin, ecs.V3(8, 0, 0))
	gate := h.spawn(t, config.TypeGate, ecs.V3(12, 0, 0))

	opener := func() ecs.AnimationPlayer { return armatureOf(t, w, gate, GateOpener) }

	InitiateGateOpening(h.ctx)
	assert.False(t, w.Gate[gate].IsOpen)

	kill(h, first)
	InitiateGateOpening(h.ctx)
	assert.False(t, w.Gate[gate].IsOpen, "one goblin still alive")

	kill(h, second)
	InitiateGateOpening(h.ctx)
	assert.True(t, w.Gate[gate].IsOpen)
	assert.Equal(t, OpenClip, opener().Clip.Name)
	assert.Equal(t, 1, opener().Plays)

	InitiateGateOpening(h.ctx)
	assert.Equal(t, 1, opener().Plays, "opens once")
}

func TestInitiateGateOpening_NoGoblins(t *testing.T) {
	h := newTestHarness(t)
	gate := h.spawn(t, config.TypeGate, ecs.Vec3Zero)

	InitiateGateOpening(h.ctx)
	assert.True(t, h.world().Gate[gate].IsOpen)
}

func TestPassThroughGate(t *testing.T) {
	h := newTestHarness(t)
	w := h.world()
	player := h.spawn(t, config.TypePlayer, ecs.Vec3Zero)
	goblin := h.spawn(t, config.TypeGoblin, ecs.V3(3, 0, 0))
	gate := h.spawn(t, config.TypeGate, ecs.V3(1, 0, 0))

	h.ctx.Collisions = []ecs.CollisionEvent{sensorContact(gate, player)}
	PassThroughGate(h.ctx)
	_, pending := h.machine.Pending()
	assert.False(t, pending, "gate is closed")

	h.ctx.Collisions = []ecs.CollisionEvent{sensorContact(gate, goblin)}
	w.Gate[gate] = ecs.Gate{IsOpen: true}
	PassThroughGate(h.ctx)
	_, pending = h.machine.Pending()
	assert.False(t, pending, "only the player passes")

	h.ctx.Collisions = []ecs.CollisionEvent{sensorContact(gate, player)}
	PassThroughGate(h.ctx)
	next, ok := h.machine.Pending()
	require.True(t, ok)
	assert.Equal(t, state.LevelCompleted, next)
}

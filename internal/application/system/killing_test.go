package system

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
	"github.com/younwookim/gardengun/internal/infrastructure/logging"
)

func kill(h *testHarness, ids ...ecs.EntityID) {
	for _, id := range ids {
		h.ctx.Events.Kill.Send(KillEvent{EntityToKill: id})
	}
	HandleKilling(h.ctx)
	h.ctx.Commands.Flush()
}

func TestHandleKilling_Idempotent(t *testing.T) {
	h := newTestHarness(t)
	w := h.world()
	goblin := h.spawn(t, config.TypeGoblin, ecs.Vec3Zero)
	require.True(t, w.Killable[goblin].Alive)
	require.True(t, ecs.Has(w.DestroysBullets, goblin))

	kill(h, goblin, goblin)

	assert.False(t, w.Killable[goblin].Alive)
	assert.False(t, ecs.Has(w.DestroysBullets, goblin))
	armature := armatureOf(t, w, goblin, ArmaturePlayer)
	assert.Equal(t, DeathClip, armature.Clip.Name)
	assert.Equal(t, 1, armature.Plays)

	kill(h, goblin)
	assert.False(t, w.Killable[goblin].Alive)
	assert.Equal(t, 1, armatureOf(t, w, goblin, ArmaturePlayer).Plays)

	_, pending := h.machine.Pending()
	assert.False(t, pending, "a goblin dying does not end the game")
}

func TestHandleKilling_PlayerEndsGame(t *testing.T) {
	h := newTestHarness(t)
	player := h.spawn(t, config.TypePlayer, ecs.Vec3Zero)

	kill(h, player)

	next, ok := h.machine.Pending()
	require.True(t, ok)
	assert.Equal(t, state.GameOver, next)
	assert.Equal(t, DeathClip, armatureOf(t, h.world(), player, ArmaturePlayer).Clip.Name)
}

func TestHandleKilling_NotKillable(t *testing.T) {
	h := newTestHarness(t)
	var buf bytes.Buffer
	h.ctx.Logger = logging.New(&buf, "debug")
	block := h.spawnBlock(t, ecs.Vec3Zero, false)

	assert.NotPanics(t, func() { kill(h, block) })
	assert.Contains(t, buf.String(), "entity is not killable")
	assert.True(t, ecs.Has(h.world().DestroysBullets, block))
}

func TestHandleKilling_MissingDeathClipPanics(t *testing.T) {
	h := newTestHarness(t)
	w := h.world()
	id := w.Spawn()
	w.Killable[id] = ecs.NewKillable()
	armature := w.Spawn()
	w.AnimationPlayer[armature] = ecs.NewAnimationPlayer()
	owner := ecs.NewAnimationsOwner()
	owner.Players[ArmaturePlayer] = armature
	w.Animations[id] = owner

	h.ctx.Events.Kill.Send(KillEvent{EntityToKill: id})
	assert.Panics(t, func() { HandleKilling(h.ctx) })
}

func TestMustPlay(t *testing.T) {
	h := newTestHarness(t)
	w := h.world()
	goblin := h.spawn(t, config.TypeGoblin, ecs.Vec3Zero)

	MustPlay(w, goblin, ArmaturePlayer, "Dance")
	MustPlay(w, goblin, ArmaturePlayer, "Dance")
	p := armatureOf(t, w, goblin, ArmaturePlayer)
	assert.Equal(t, "Dance", p.Clip.Name)
	assert.Equal(t, 2, p.Plays)

	MustStart(w, goblin, ArmaturePlayer, "Dance")
	assert.Zero(t, armatureOf(t, w, goblin, ArmaturePlayer).Elapsed)

	assert.Panics(t, func() { MustPlay(w, goblin, ArmaturePlayer, "Backflip") })
	assert.Panics(t, func() { MustPlay(w, goblin, "Tail", "Dance") })
	assert.Panics(t, func() { MustStart(w, w.Spawn(), GateOpener, OpenClip) })
}

package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gardengun/internal/ecs"
)

func flyingSeed(w *ecs.World, at ecs.Vec3) ecs.EntityID {
	id := w.Spawn()
	w.Transform[id] = ecs.At(at)
	w.PlantType[id] = ecs.PlantTree
	ecs.Tag(w.FlyingSeed, id)
	return id
}

func TestInitiatePlanting(t *testing.T) {
	h := newTestHarness(t)
	w := h.world()
	ground := h.spawnBlock(t, ecs.V3(2, 2, 0), false)
	seed := flyingSeed(w, ecs.V3(2, 3, 0))

	// reported twice, planted once
	h.ctx.Collisions = []ecs.CollisionEvent{solidContact(ground, seed), solidContact(seed, ground)}
	h.schedule.Planting.InitiatePlanting(h.ctx)
	h.ctx.Commands.Flush()

	assert.False(t, w.Exists(seed))
	require.Len(t, w.Growing, 1)
	plant := ecs.SortedIDs(w.Growing)[0]

	assert.Equal(t, ecs.PlantTree, w.PlantType[plant])
	assertVec3InDelta(t, ecs.V3(2, 4, 0), w.Transform[plant].Translation)
	assertVec3InDelta(t, ecs.Vec3One.Scale(0.1), w.Transform[plant].Scale)
	assert.Equal(t, ecs.Body{Kind: ecs.BodyFixed, GravityScale: 1, LockRotation: true, LockTranslationX: true}, w.Body[plant])
	assert.Equal(t, ecs.V2(1, 1.5), w.Collider[plant].HalfExtents)
	assert.True(t, ecs.Has(w.BelongsToLevel, plant))
}

func TestInitiatePlanting_BarrenGround(t *testing.T) {
	h := newTestHarness(t)
	w := h.world()
	ground := h.spawnBlock(t, ecs.V3(0, 0, 0), true)
	seed := flyingSeed(w, ecs.V3(0, 1, 0))

	h.ctx.Collisions = []ecs.CollisionEvent{solidContact(seed, ground)}
	h.schedule.Planting.InitiatePlanting(h.ctx)
	h.ctx.Commands.Flush()

	assert.True(t, w.Exists(seed))
	assert.Empty(t, w.Growing)
}

func TestApplyGrowing_StopsAtFullSize(t *testing.T) {
	h := newTestHarness(t)
	w := h.world()
	ground := h.spawnBlock(t, ecs.V3(0, 0, 0), false)
	h.ctx.Collisions = []ecs.CollisionEvent{solidContact(flyingSeed(w, ecs.V3(0, 1, 0)), ground)}
	h.schedule.Planting.InitiatePlanting(h.ctx)
	h.ctx.Commands.Flush()
	plant := ecs.SortedIDs(w.Growing)[0]

	frames := 0
	prev := w.Transform[plant].Scale.X
	for ecs.Has(w.Growing, plant) && frames < 100 {
		h.schedule.Planting.ApplyGrowing(h.ctx)
		h.ctx.Commands.Flush()
		frames++
		scale := w.Transform[plant].Scale.X
		require.Greater(t, scale, prev)
		prev = scale
	}

	// 0.1 + n*2/60 first reaches a unit-length scale vector at n = 15
	assert.Equal(t, 15, frames)
	assert.Equal(t, ecs.Vec3One, w.Transform[plant].Scale)
	assert.InDelta(t, 2.5, w.Transform[plant].Translation.Y, 1e-9)

	grown := w.Transform[plant]
	for range 10 {
		h.schedule.Planting.ApplyGrowing(h.ctx)
		h.ctx.Commands.Flush()
	}
	assert.Equal(t, grown, w.Transform[plant])
}

package ecs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorld(t *testing.T) {
	w := NewWorld()

	assert.NotNil(t, w)
	assert.Equal(t, EntityID(1), w.nextID)
	assert.NotNil(t, w.Transform)
	assert.NotNil(t, w.Killable)
	assert.NotNil(t, w.IsPlayer)
}

func TestNewEntity(t *testing.T) {
	w := NewWorld()

	id1 := w.NewEntity()
	id2 := w.NewEntity()
	id3 := w.NewEntity()

	assert.Equal(t, EntityID(1), id1)
	assert.Equal(t, EntityID(2), id2)
	assert.Equal(t, EntityID(3), id3)
	assert.Equal(t, EntityID(4), w.nextID)
}

func TestEntityIDNeverRecycled(t *testing.T) {
	w := NewWorld()

	id1 := w.Spawn()
	w.DestroyEntity(id1)

	id2 := w.Spawn()
	assert.NotEqual(t, id1, id2, "Entity IDs should never be recycled")
	assert.Equal(t, EntityID(2), id2)
}

func TestDestroyEntity(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()

	w.Velocity[id] = Velocity{Linear: V2(1, 2)}
	w.Killable[id] = NewKillable()
	Tag(w.IsGoblin, id)
	Tag(w.DestroysBullets, id)

	require.True(t, w.Exists(id))

	w.DestroyEntity(id)

	assert.False(t, w.Exists(id))
	assert.False(t, Has(w.Velocity, id))
	assert.False(t, Has(w.Killable, id))
	assert.False(t, Has(w.IsGoblin, id))
	assert.False(t, Has(w.DestroysBullets, id))
}

func TestExists(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()

	assert.False(t, w.Exists(id), "Entity without Transform should not exist")

	w.Transform[id] = IdentityTransform()
	assert.True(t, w.Exists(id), "Entity with Transform should exist")
}

func TestDespawnRecursive(t *testing.T) {
	w := NewWorld()
	root := w.Spawn()
	child := w.Spawn()
	grandchild := w.Spawn()
	other := w.Spawn()
	w.SetParent(child, root)
	w.SetParent(grandchild, child)

	w.DespawnRecursive(root)

	assert.False(t, w.Exists(root))
	assert.False(t, w.Exists(child))
	assert.False(t, w.Exists(grandchild))
	assert.True(t, w.Exists(other))
	assert.Empty(t, w.Parent)
}

func TestChildren(t *testing.T) {
	w := NewWorld()
	root := w.Spawn()
	c1 := w.Spawn()
	c2 := w.Spawn()
	w.SetParent(c2, root)
	w.SetParent(c1, root)

	assert.Equal(t, []EntityID{c1, c2}, w.Children(root))
	assert.Empty(t, w.Children(c1))
}

func TestGlobalTransform(t *testing.T) {
	t.Run("no parent", func(t *testing.T) {
		w := NewWorld()
		id := w.Spawn()
		w.Transform[id] = At(V3(1, 2, 3))

		assert.Equal(t, At(V3(1, 2, 3)), w.GlobalTransform(id))
	})

	t.Run("translation and scale compose", func(t *testing.T) {
		w := NewWorld()
		parent := w.Spawn()
		child := w.Spawn()
		w.Transform[parent] = At(V3(10, 0, 0)).WithScale(2)
		w.Transform[child] = At(V3(0, 1, 1)).WithScale(0.5)
		w.SetParent(child, parent)

		g := w.GlobalTransform(child)
		assert.True(t, g.Translation.ApproxEq(V3(10, 2, 2)))
		assert.True(t, g.Scale.ApproxEq(Vec3One))
	})

	t.Run("yaw turns the child offset", func(t *testing.T) {
		w := NewWorld()
		parent := w.Spawn()
		child := w.Spawn()
		w.Transform[parent] = Transform{Scale: Vec3One, Yaw: YawLookingTo(Vec3X)}
		w.Transform[child] = At(V3(0, 1, 1))
		w.SetParent(child, parent)

		// facing +X puts the back (+Z in model space) toward -X
		g := w.GlobalTransform(child)
		assert.InDelta(t, -1.0, g.Translation.X, 1e-9)
		assert.InDelta(t, 1.0, g.Translation.Y, 1e-9)
		assert.InDelta(t, 0.0, g.Translation.Z, 1e-9)
	})
}

func TestYawLookingTo(t *testing.T) {
	assert.InDelta(t, -math.Pi/2, YawLookingTo(Vec3X), 1e-9)
	assert.InDelta(t, math.Pi/2, YawLookingTo(Vec3X.Neg()), 1e-9)
}

func TestPlayer(t *testing.T) {
	w := NewWorld()
	_, ok := w.Player()
	assert.False(t, ok)

	id := w.Spawn()
	Tag(w.IsPlayer, id)
	got, ok := w.Player()
	require.True(t, ok)
	assert.Equal(t, id, got)

	Tag(w.IsPlayer, w.Spawn())
	_, ok = w.Player()
	assert.False(t, ok, "ambiguous with two players")
}

func TestSortedIDs(t *testing.T) {
	w := NewWorld()
	for range 5 {
		Tag(w.IsGoblin, w.Spawn())
	}
	assert.Equal(t, []EntityID{1, 2, 3, 4, 5}, SortedIDs(w.IsGoblin))
}

package ecs

// Commands buffers structural changes (spawns, despawns, component and tag
// removal, reparenting) until Flush. Systems that iterate component maps
// mutate values in place but never add or remove entries directly.
type Commands struct {
	w   *World
	ops []func(*World)
}

// NewCommands returns an empty buffer bound to w
func NewCommands(w *World) *Commands {
	return &Commands{w: w}
}

// Spawn reserves an ID now and creates the entity at Flush. build runs after the
// identity transform is set and may overwrite it.
func (c *Commands) Spawn(build func(w *World, id EntityID)) EntityID {
	id := c.w.NewEntity()
	c.ops = append(c.ops, func(w *World) {
		w.Transform[id] = IdentityTransform()
		if build != nil {
			build(w, id)
		}
	})
	return id
}

// Despawn destroys id and its descendants at Flush. Despawning twice is harmless.
func (c *Commands) Despawn(id EntityID) {
	c.ops = append(c.ops, func(w *World) {
		w.DespawnRecursive(id)
	})
}

// Untag removes a tag at Flush
func (c *Commands) Untag(m map[EntityID]struct{}, id EntityID) {
	c.ops = append(c.ops, func(*World) {
		delete(m, id)
	})
}

// Do runs an arbitrary mutation at Flush, skipped if id no longer exists
func (c *Commands) Do(id EntityID, op func(w *World, id EntityID)) {
	c.ops = append(c.ops, func(w *World) {
		if !w.Exists(id) {
			return
		}
		op(w, id)
	})
}

// Pending returns the number of buffered operations
func (c *Commands) Pending() int {
	return len(c.ops)
}

// Flush applies buffered operations in submission order
func (c *Commands) Flush() {
	// ops queued while flushing run in the same flush
	for i := 0; i < len(c.ops); i++ {
		c.ops[i](c.w)
	}
	c.ops = c.ops[:0]
}

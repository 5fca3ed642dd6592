// Package physics is a small deterministic rigid-body step for the level:
// dynamic bodies fall and move, solid overlaps against fixed bodies are
// pushed out, and contact start/stop events are reported for gameplay.
package physics

import (
	"math"
	"slices"

	"github.com/younwookim/gardengun/internal/ecs"
)

// Skin is how close two colliders must be to count as touching
const Skin = 0.01

// Config holds physics configuration
type Config struct {
	Gravity float64 // units/s², pointing down
}

// Engine steps the world and remembers ongoing contacts between steps
type Engine struct {
	cfg      Config
	contacts map[ecs.Pair]bool // ordered A<B -> sensor
}

// New creates an engine with no remembered contacts
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, contacts: make(map[ecs.Pair]bool)}
}

// Gravity returns the configured gravity
func (e *Engine) Gravity() float64 {
	return e.cfg.Gravity
}

// Reset forgets all ongoing contacts (level reload)
func (e *Engine) Reset() {
	clear(e.contacts)
}

// Step advances the simulation by dt and returns the contact events of this step.
// Call once per frame, only while the game is running.
func (e *Engine) Step(w *ecs.World, dt float64) []ecs.CollisionEvent {
	e.integrate(w, dt)
	e.resolve(w)
	return e.detect(w)
}

// integrate applies gravity and velocity to top-level dynamic bodies
func (e *Engine) integrate(w *ecs.World, dt float64) {
	for _, id := range ecs.SortedIDs(w.Body) {
		body := w.Body[id]
		if body.Kind != ecs.BodyDynamic || ecs.Has(w.Parent, id) {
			continue
		}
		vel := w.Velocity[id]
		vel.Linear.Y -= e.cfg.Gravity * body.GravityScale * dt
		if body.LockTranslationX {
			vel.Linear.X = 0
		}
		if body.LockRotation {
			vel.Angular = 0
		}
		w.Velocity[id] = vel

		t := w.Transform[id]
		t.Translation.X += vel.Linear.X * dt
		t.Translation.Y += vel.Linear.Y * dt
		t.Roll += vel.Angular * dt
		w.Transform[id] = t
	}
}

// resolve pushes solid dynamic bodies out of solid fixed bodies along the
// axis of least penetration
func (e *Engine) resolve(w *ecs.World) {
	clear(w.Grounded)
	var fixed []ecs.EntityID
	for _, id := range ecs.SortedIDs(w.Collider) {
		if isSolid(w, id) && kindOf(w, id) == ecs.BodyFixed {
			fixed = append(fixed, id)
		}
	}
	for _, id := range ecs.SortedIDs(w.Body) {
		if kindOf(w, id) != ecs.BodyDynamic || !isSolid(w, id) || ecs.Has(w.Parent, id) {
			continue
		}
		for _, other := range fixed {
			a, b := AABBOf(w, id), AABBOf(w, other)
			px, py, ok := a.Penetration(b)
			if !ok {
				continue
			}
			t := w.Transform[id]
			vel := w.Velocity[id]
			if px < py {
				dir := ecs.Signum(a.Center.X - b.Center.X)
				t.Translation.X += dir * px
				if vel.Linear.X*dir < 0 {
					vel.Linear.X = 0
				}
			} else {
				dir := ecs.Signum(a.Center.Y - b.Center.Y)
				t.Translation.Y += dir * py
				if vel.Linear.Y*dir < 0 {
					vel.Linear.Y = 0
				}
				if dir > 0 {
					ecs.Tag(w.Grounded, id)
				}
			}
			w.Transform[id] = t
			w.Velocity[id] = vel
		}
	}
}

// detect compares current overlaps with the remembered ones. Fixed-fixed pairs
// and pairs where neither side asks for events are ignored.
func (e *Engine) detect(w *ecs.World) []ecs.CollisionEvent {
	ids := ecs.SortedIDs(w.Collider)
	boxes := make([]AABB, len(ids))
	for i, id := range ids {
		boxes[i] = AABBOf(w, id)
	}

	current := make(map[ecs.Pair]bool)
	var events []ecs.CollisionEvent
	for i, a := range ids {
		for j := i + 1; j < len(ids); j++ {
			b := ids[j]
			if !ecs.Has(w.ActiveEvents, a) && !ecs.Has(w.ActiveEvents, b) {
				continue
			}
			if kindOf(w, a) == ecs.BodyFixed && kindOf(w, b) == ecs.BodyFixed {
				continue
			}
			if !boxes[i].Touches(boxes[j]) {
				continue
			}
			pair := ecs.Pair{A: a, B: b}
			sensor := ecs.Has(w.Sensor, a) || ecs.Has(w.Sensor, b)
			current[pair] = sensor
			if _, ongoing := e.contacts[pair]; !ongoing {
				events = append(events, ecs.CollisionEvent{Kind: ecs.CollisionStarted, A: a, B: b, Sensor: sensor})
			}
		}
	}

	var stopped []ecs.Pair
	for pair := range e.contacts {
		if _, still := current[pair]; !still {
			stopped = append(stopped, pair)
		}
	}
	slices.SortFunc(stopped, comparePairs)
	for _, pair := range stopped {
		events = append(events, ecs.CollisionEvent{Kind: ecs.CollisionStopped, A: pair.A, B: pair.B, Sensor: e.contacts[pair]})
	}

	e.contacts = current
	return events
}

func comparePairs(x, y ecs.Pair) int {
	if x.A != y.A {
		if x.A < y.A {
			return -1
		}
		return 1
	}
	switch {
	case x.B < y.B:
		return -1
	case x.B > y.B:
		return 1
	}
	return 0
}

// kindOf treats colliders without a body as fixed
func kindOf(w *ecs.World, id ecs.EntityID) ecs.BodyKind {
	if body, ok := w.Body[id]; ok {
		return body.Kind
	}
	return ecs.BodyFixed
}

func isSolid(w *ecs.World, id ecs.EntityID) bool {
	return ecs.Has(w.Collider, id) && !ecs.Has(w.Sensor, id)
}

// AABB is an axis-aligned box in world space
type AABB struct {
	Center ecs.Vec2
	Half   ecs.Vec2
}

// AABBOf returns the world-space box of an entity's collider
func AABBOf(w *ecs.World, id ecs.EntityID) AABB {
	g := w.GlobalTransform(id)
	c := w.Collider[id]
	return AABB{
		Center: g.Translation.Truncate(),
		Half: ecs.Vec2{
			X: c.HalfExtents.X * math.Abs(g.Scale.X),
			Y: c.HalfExtents.Y * math.Abs(g.Scale.Y),
		},
	}
}

// Penetration returns the overlap depth on each axis, ok only if both are positive
func (a AABB) Penetration(b AABB) (px, py float64, ok bool) {
	px = a.Half.X + b.Half.X - math.Abs(a.Center.X-b.Center.X)
	py = a.Half.Y + b.Half.Y - math.Abs(a.Center.Y-b.Center.Y)
	return px, py, px > 0 && py > 0
}

// Touches reports overlap, counting boxes within Skin of each other
func (a AABB) Touches(b AABB) bool {
	px, py, _ := a.Penetration(b)
	return px > -Skin && py > -Skin
}

// Contains reports whether p lies inside the box
func (a AABB) Contains(p ecs.Vec2) bool {
	return math.Abs(p.X-a.Center.X) <= a.Half.X && math.Abs(p.Y-a.Center.Y) <= a.Half.Y
}

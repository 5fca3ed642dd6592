package ecs

import (
	"maps"
	"math"
	"slices"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Hierarchy and identity
	Transform  map[EntityID]Transform
	Parent     map[EntityID]EntityID
	Name       map[EntityID]string
	EntityType map[EntityID]string

	// Physics
	Body     map[EntityID]Body
	Collider map[EntityID]Collider
	Velocity map[EntityID]Velocity

	// Character controller
	Platformer map[EntityID]PlatformerConfig
	Controls   map[EntityID]PlatformerControls
	Motor      map[EntityID]MotorState
	Turning    map[EntityID]TurningOutput
	// RotateChild points an actor at the model child that follows its turning output
	RotateChild map[EntityID]EntityID
	Spin        map[EntityID]Spin

	// Gameplay
	Killable     map[EntityID]Killable
	CanCarry     map[EntityID]CanCarry
	CarriedAmmo  map[EntityID]CarriedAmmunition
	PlantType    map[EntityID]PlantType
	Gate         map[EntityID]Gate
	Bullet       map[EntityID]Bullet
	CanShoot     map[EntityID]CanShoot
	FloatingText map[EntityID]FloatingText
	GridSize     map[EntityID]GridSize

	// Animation
	Animations       map[EntityID]AnimationsOwner
	AnimationPlayer  map[EntityID]AnimationPlayer
	InitialAnimation map[EntityID]InitialAnimation

	// Tags
	IsPlayer        map[EntityID]struct{}
	IsGoblin        map[EntityID]struct{}
	IsBlock         map[EntityID]struct{}
	CanPick         map[EntityID]struct{}
	Pickable        map[EntityID]struct{}
	FlyingSeed      map[EntityID]struct{}
	Growing         map[EntityID]struct{}
	FertileGround   map[EntityID]struct{}
	DestroysBullets map[EntityID]struct{}
	KeepGatesClosed map[EntityID]struct{}
	Sensor          map[EntityID]struct{}
	ActiveEvents    map[EntityID]struct{}
	BelongsToLevel  map[EntityID]struct{}
	SnapToGrid      map[EntityID]struct{}
	Grounded        map[EntityID]struct{}
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:           1, // 0 is "nil"
		Transform:        make(map[EntityID]Transform),
		Parent:           make(map[EntityID]EntityID),
		Name:             make(map[EntityID]string),
		EntityType:       make(map[EntityID]string),
		Body:             make(map[EntityID]Body),
		Collider:         make(map[EntityID]Collider),
		Velocity:         make(map[EntityID]Velocity),
		Platformer:       make(map[EntityID]PlatformerConfig),
		Controls:         make(map[EntityID]PlatformerControls),
		Motor:            make(map[EntityID]MotorState),
		Turning:          make(map[EntityID]TurningOutput),
		RotateChild:      make(map[EntityID]EntityID),
		Spin:             make(map[EntityID]Spin),
		Killable:         make(map[EntityID]Killable),
		CanCarry:         make(map[EntityID]CanCarry),
		CarriedAmmo:      make(map[EntityID]CarriedAmmunition),
		PlantType:        make(map[EntityID]PlantType),
		Gate:             make(map[EntityID]Gate),
		Bullet:           make(map[EntityID]Bullet),
		CanShoot:         make(map[EntityID]CanShoot),
		FloatingText:     make(map[EntityID]FloatingText),
		GridSize:         make(map[EntityID]GridSize),
		Animations:       make(map[EntityID]AnimationsOwner),
		AnimationPlayer:  make(map[EntityID]AnimationPlayer),
		InitialAnimation: make(map[EntityID]InitialAnimation),
		IsPlayer:         make(map[EntityID]struct{}),
		IsGoblin:         make(map[EntityID]struct{}),
		IsBlock:          make(map[EntityID]struct{}),
		CanPick:          make(map[EntityID]struct{}),
		Pickable:         make(map[EntityID]struct{}),
		FlyingSeed:       make(map[EntityID]struct{}),
		Growing:          make(map[EntityID]struct{}),
		FertileGround:    make(map[EntityID]struct{}),
		DestroysBullets:  make(map[EntityID]struct{}),
		KeepGatesClosed:  make(map[EntityID]struct{}),
		Sensor:           make(map[EntityID]struct{}),
		ActiveEvents:     make(map[EntityID]struct{}),
		BelongsToLevel:   make(map[EntityID]struct{}),
		SnapToGrid:       make(map[EntityID]struct{}),
		Grounded:         make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID without creating the entity
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// Spawn creates an entity with an identity transform
func (w *World) Spawn() EntityID {
	id := w.NewEntity()
	w.Transform[id] = IdentityTransform()
	return id
}

// DestroyEntity removes all components for an entity. Children are left orphaned;
// use DespawnRecursive to take them along.
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Transform, id)
	delete(w.Parent, id)
	delete(w.Name, id)
	delete(w.EntityType, id)
	delete(w.Body, id)
	delete(w.Collider, id)
	delete(w.Velocity, id)
	delete(w.Platformer, id)
	delete(w.Controls, id)
	delete(w.Motor, id)
	delete(w.Turning, id)
	delete(w.RotateChild, id)
	delete(w.Spin, id)
	delete(w.Killable, id)
	delete(w.CanCarry, id)
	delete(w.CarriedAmmo, id)
	delete(w.PlantType, id)
	delete(w.Gate, id)
	delete(w.Bullet, id)
	delete(w.CanShoot, id)
	delete(w.FloatingText, id)
	delete(w.GridSize, id)
	delete(w.Animations, id)
	delete(w.AnimationPlayer, id)
	delete(w.InitialAnimation, id)
	delete(w.IsPlayer, id)
	delete(w.IsGoblin, id)
	delete(w.IsBlock, id)
	delete(w.CanPick, id)
	delete(w.Pickable, id)
	delete(w.FlyingSeed, id)
	delete(w.Growing, id)
	delete(w.FertileGround, id)
	delete(w.DestroysBullets, id)
	delete(w.KeepGatesClosed, id)
	delete(w.Sensor, id)
	delete(w.ActiveEvents, id)
	delete(w.BelongsToLevel, id)
	delete(w.SnapToGrid, id)
	delete(w.Grounded, id)
}

// DespawnRecursive destroys an entity and all of its descendants
func (w *World) DespawnRecursive(id EntityID) {
	for _, child := range w.Children(id) {
		w.DespawnRecursive(child)
	}
	w.DestroyEntity(id)
}

// Exists checks if an entity has a Transform component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Transform[id]
	return ok
}

// Count returns the number of live entities
func (w *World) Count() int {
	return len(w.Transform)
}

// SetParent attaches child under parent
func (w *World) SetParent(child, parent EntityID) {
	w.Parent[child] = parent
}

// RemoveParent detaches child, keeping its local transform as-is
func (w *World) RemoveParent(child EntityID) {
	delete(w.Parent, child)
}

// Children returns the direct children of id in ascending ID order
func (w *World) Children(id EntityID) []EntityID {
	var out []EntityID
	for child, parent := range w.Parent {
		if parent == id {
			out = append(out, child)
		}
	}
	slices.Sort(out)
	return out
}

// GlobalTransform composes the transforms along the parent chain
func (w *World) GlobalTransform(id EntityID) Transform {
	local, ok := w.Transform[id]
	if !ok {
		return IdentityTransform()
	}
	parent, ok := w.Parent[id]
	if !ok {
		return local
	}
	return w.GlobalTransform(parent).Compose(local)
}

// Compose returns child expressed in the space this transform is expressed in
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Translation: t.Translation.Add(t.Rotate(t.Scale.Mul(child.Translation))),
		Scale:       t.Scale.Mul(child.Scale),
		Yaw:         t.Yaw + child.Yaw,
		Roll:        t.Roll + child.Roll,
	}
}

// Rotate applies roll around the depth axis, then yaw around the vertical axis
func (t Transform) Rotate(v Vec3) Vec3 {
	if t.Roll != 0 {
		sin, cos := math.Sincos(t.Roll)
		v = Vec3{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos, Z: v.Z}
	}
	if t.Yaw != 0 {
		sin, cos := math.Sincos(t.Yaw)
		v = Vec3{X: v.X*cos + v.Z*sin, Y: v.Y, Z: -v.X*sin + v.Z*cos}
	}
	return v
}

// YawLookingTo returns the yaw that turns the model's -Z axis toward forward
func YawLookingTo(forward Vec3) float64 {
	return math.Atan2(-forward.X, -forward.Z)
}

// Player returns the single player entity, if there is exactly one
func (w *World) Player() (EntityID, bool) {
	if len(w.IsPlayer) != 1 {
		return 0, false
	}
	for id := range w.IsPlayer {
		return id, true
	}
	return 0, false
}

// SortedIDs returns the keys of a component map in ascending order
func SortedIDs[T any](m map[EntityID]T) []EntityID {
	return slices.Sorted(maps.Keys(m))
}

// Has reports whether a tag or component map contains id
func Has[T any](m map[EntityID]T, id EntityID) bool {
	_, ok := m[id]
	return ok
}

// Tag sets a tag on id
func Tag(m map[EntityID]struct{}, id EntityID) {
	m[id] = struct{}{}
}

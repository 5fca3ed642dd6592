package ecs

// Transform is an entity's local transform, relative to its parent if it has one.
// Yaw rotates around the vertical axis (facing), Roll around the depth axis.
type Transform struct {
	Translation Vec3
	Scale       Vec3
	Yaw         float64
	Roll        float64
}

// IdentityTransform returns a transform at the origin with unit scale
func IdentityTransform() Transform {
	return Transform{Scale: Vec3One}
}

// At returns an identity transform moved to pos
func At(pos Vec3) Transform {
	return Transform{Translation: pos, Scale: Vec3One}
}

// WithScale returns a copy with a uniform scale
func (t Transform) WithScale(s float64) Transform {
	t.Scale = Vec3One.Scale(s)
	return t
}

// BodyKind selects how the physics step treats a body
type BodyKind int

const (
	BodyFixed BodyKind = iota
	BodyDynamic
)

// String returns the body kind name
func (k BodyKind) String() string {
	switch k {
	case BodyFixed:
		return "Fixed"
	case BodyDynamic:
		return "Dynamic"
	default:
		return "Unknown"
	}
}

// Body is a rigid body
type Body struct {
	Kind             BodyKind
	GravityScale     float64
	LockRotation     bool
	LockTranslationX bool
}

// FixedBody returns a body that never moves
func FixedBody() Body {
	return Body{Kind: BodyFixed, GravityScale: 1}
}

// DynamicBody returns a body affected by gravity and velocity
func DynamicBody() Body {
	return Body{Kind: BodyDynamic, GravityScale: 1}
}

// Collider is an axis-aligned box. Half extents are scaled by the global scale.
type Collider struct {
	HalfExtents Vec2
}

// Cuboid builds a box collider from half extents
func Cuboid(hx, hy float64) Collider {
	return Collider{HalfExtents: Vec2{X: hx, Y: hy}}
}

// Ball approximates a ball collider with its bounding box
func Ball(radius float64) Collider {
	return Cuboid(radius, radius)
}

// CapsuleY approximates a vertical capsule with its bounding box
func CapsuleY(halfHeight, radius float64) Collider {
	return Cuboid(radius, halfHeight+radius)
}

// Velocity in world units per second; Angular in radians per second around depth
type Velocity struct {
	Linear  Vec2
	Angular float64
}

// PlatformerConfig holds character controller tunables
type PlatformerConfig struct {
	FullSpeed       float64
	FullJumpHeight  float64
	FloatHeight     float64
	Acceleration    float64
	AirAcceleration float64
	CoyoteTime      float64
}

// PlatformerControls is what the controller is asked to do this frame
type PlatformerControls struct {
	DesiredVelocity Vec3
	DesiredForward  Vec3
	Jump            bool
}

// MotorState is the controller's memory between frames
type MotorState struct {
	CoyoteLeft float64
	Jumping    bool
}

// TurningOutput is the direction the controller currently faces
type TurningOutput struct {
	Forward Vec3
}

// Killable marks an entity that can die. Alive never goes back to true.
type Killable struct {
	Alive bool
}

// NewKillable returns a living Killable
func NewKillable() Killable {
	return Killable{Alive: true}
}

// CanCarry is a single ammunition slot. Carries is 0 when idle.
type CanCarry struct {
	Carries EntityID
}

// IsIdle reports whether nothing is carried
func (c CanCarry) IsIdle() bool {
	return c.Carries == 0
}

// CarriedAmmunition is attached to the carried item
type CarriedAmmunition struct {
	RemainingShots uint
}

// PlantType selects the plant archetype of an ammo, seed or plant
type PlantType int

const (
	PlantTree PlantType = iota
)

// String returns the authored name of the plant type
func (p PlantType) String() string {
	switch p {
	case PlantTree:
		return "Tree"
	default:
		return "Unknown"
	}
}

// Gate state. IsOpen goes from false to true once.
type Gate struct {
	IsOpen bool
}

// Bullet self-destructs when Timeout finishes
type Bullet struct {
	Timeout Timer
}

// CanShoot gates shot frequency
type CanShoot struct {
	Cooldown Timer
}

// FloatingText is an authored text label
type FloatingText struct {
	Text     string
	FontSize float64
}

// GridSize is the size of a block in grid cells
type GridSize struct {
	X, Y int
}

// DefaultGridSize is one cell
func DefaultGridSize() GridSize {
	return GridSize{X: 1, Y: 1}
}

// Spin rotates an entity every frame, in radians per second
type Spin struct {
	Yaw  float64
	Roll float64
}

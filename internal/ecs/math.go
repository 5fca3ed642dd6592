package ecs

import "math"

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D vector in world units (Z is depth)
type Vec3 struct {
	X, Y, Z float64
}

var (
	Vec2Zero = Vec2{}
	Vec2Y    = Vec2{Y: 1}

	Vec3Zero = Vec3{}
	Vec3One  = Vec3{X: 1, Y: 1, Z: 1}
	Vec3X    = Vec3{X: 1}
	Vec3Y    = Vec3{Y: 1}
)

// V2 builds a Vec2
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// V3 builds a Vec3
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec2) Add(o Vec2) Vec2          { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2          { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2     { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) LengthSquared() float64   { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Length() float64          { return math.Sqrt(v.LengthSquared()) }
func (v Vec2) Extend(z float64) Vec3    { return Vec3{v.X, v.Y, z} }
func (v Vec2) Distance(o Vec2) float64  { return v.Sub(o).Length() }
func (v Vec2) ApproxEq(o Vec2) bool     { return v.Sub(o).LengthSquared() < 1e-12 }
func (v Vec2) Dot(o Vec2) float64       { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Neg() Vec2                { return Vec2{-v.X, -v.Y} }
func (v Vec2) Mul(o Vec2) Vec2          { return Vec2{v.X * o.X, v.Y * o.Y} }

// Normalize returns the unit vector, or zero for a zero vector
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// ClampLength limits the vector length to max
func (v Vec2) ClampLength(max float64) Vec2 {
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// MoveTowards moves v toward target by at most maxDelta
func (v Vec2) MoveTowards(target Vec2, maxDelta float64) Vec2 {
	diff := target.Sub(v)
	l := diff.Length()
	if l <= maxDelta || l == 0 {
		return target
	}
	return v.Add(diff.Scale(maxDelta / l))
}

func (v Vec3) Add(o Vec3) Vec3        { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3        { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3   { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Mul(o Vec3) Vec3        { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Neg() Vec3              { return Vec3{-v.X, -v.Y, -v.Z} }
func (v Vec3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Length() float64        { return math.Sqrt(v.LengthSquared()) }

// Truncate drops the Z component
func (v Vec3) Truncate() Vec2 { return Vec2{v.X, v.Y} }

// ApproxEq compares with a small absolute tolerance
func (v Vec3) ApproxEq(o Vec3) bool { return v.Sub(o).LengthSquared() < 1e-12 }

// Normalize returns the unit vector, or zero for a zero vector
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Signum returns -1, 0 or 1
func Signum(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// MoveTowards moves a scalar toward target by at most maxDelta
func MoveTowards(v, target, maxDelta float64) float64 {
	if math.Abs(target-v) <= maxDelta {
		return target
	}
	return v + Signum(target-v)*maxDelta
}

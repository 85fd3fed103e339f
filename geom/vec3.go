// Package geom provides single-precision 3-D vector and rotation types for
// navigation code, plus the angle conventions shared with the planar algebra:
// the X axis points north (forward), Y points up, and Z points east (right).
// Azimuths are measured clockwise from north, so horizontal rotations about
// +Y are left-handed.
package geom

import (
	"errors"
	"fmt"
	"math"
)

// UnitTolerance bounds how far a squared length may stray from 1 before a
// direction no longer counts as a unit vector.
const UnitTolerance = 1e-4

// ErrZeroVector is returned by operations that are undefined for a
// zero-length input, such as Altitude and Projection.
var ErrZeroVector = errors.New("geom: zero vector")

// Vec3 is an immutable 3-component vector. Operations never mutate the
// receiver; they return new values.
type Vec3 struct {
	X, Y, Z float32
}

// Commonly used vectors.
var (
	Zero  = Vec3{}
	UnitX = Vec3{X: 1}
	UnitY = Vec3{Y: 1}
	UnitZ = Vec3{Z: 1}
)

// V returns the vector with the given components.
func V(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns the sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the difference v minus o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v with both direction and length scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Negate returns v with all components negated.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and o in double precision.
func (v Vec3) Dot(o Vec3) float64 {
	return float64(v.X)*float64(o.X) + float64(v.Y)*float64(o.Y) +
		float64(v.Z)*float64(o.Z)
}

// Cross returns the right-handed cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns the squared length of v in double precision.
func (v Vec3) LengthSquared() float64 {
	return float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y) +
		float64(v.Z)*float64(v.Z)
}

// Length returns the length of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(v.LengthSquared()))
}

// DistanceSquared returns the squared distance between v and o in double
// precision.
func (v Vec3) DistanceSquared(o Vec3) float64 {
	return v.Sub(o).LengthSquared()
}

// Distance returns the distance between v and o.
func (v Vec3) Distance(o Vec3) float32 {
	return float32(math.Sqrt(v.DistanceSquared(o)))
}

// Normalize returns the unit vector with the direction of v. The zero
// vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	if v.IsZero() {
		return Zero
	}
	length := float32(math.Sqrt(v.LengthSquared()))
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Lerp returns the linear blend of v and o: v when t is 0, o when t is 1.
// Fractions outside [0, 1] extrapolate.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	u := 1 - t
	return Vec3{
		X: u*v.X + t*o.X,
		Y: u*v.Y + t*o.Y,
		Z: u*v.Z + t*o.Z,
	}
}

// IsZero reports whether all components of v are exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsUnit reports whether v has unit length, with the squared length checked
// against UnitTolerance.
func (v Vec3) IsUnit() bool {
	return math.Abs(v.LengthSquared()-1) <= UnitTolerance
}

// String formats v for debug output.
func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Projection returns the vector projection of a onto b. A zero b is an
// error.
func Projection(a, b Vec3) (Vec3, error) {
	ls := b.LengthSquared()
	if ls == 0 {
		return Zero, ErrZeroVector
	}
	return b.Scale(float32(a.Dot(b) / ls)), nil
}

// ScalarProjection returns the signed length of the projection of a onto b.
// A zero b is an error.
func ScalarProjection(a, b Vec3) (float32, error) {
	ls := b.LengthSquared()
	if ls == 0 {
		return 0, ErrZeroVector
	}
	return float32(a.Dot(b) / math.Sqrt(ls)), nil
}

// Coincide reports whether two points lie within a squared-distance
// tolerance of one another.
func Coincide(p1, p2 Vec3, tolerance2 float64) bool {
	return p1.DistanceSquared(p2) <= tolerance2
}

// Collinear reports whether three points lie on a single line, within a
// squared-distance tolerance.
func Collinear(p1, p2, p3 Vec3, tolerance2 float64) bool {
	if Coincide(p1, p2, tolerance2) {
		return true
	}
	offset2 := p2.Sub(p1)
	offset3 := p3.Sub(p1)
	projection, _ := Projection(offset3, offset2)
	return Coincide(projection, offset3, tolerance2)
}

// Compare orders two vectors lexicographically by X, then Y, then Z,
// returning -1, 0, or +1.
func Compare(a, b Vec3) int {
	switch {
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	case a.Z < b.Z:
		return -1
	case a.Z > b.Z:
		return 1
	}
	return 0
}

// AllNonNegative reports whether every component of v is zero or positive.
func AllNonNegative(v Vec3) bool {
	return v.X >= 0 && v.Y >= 0 && v.Z >= 0
}

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }

func cos(x float32) float32 { return float32(math.Cos(float64(x))) }

// Package planar implements single-precision vector algebra in the
// horizontal XZ plane, the coordinate system used for headings and steering:
// +X is north (forward) and +Z is east (right). Angles are measured
// clockwise from north, which makes the convention left-handed;
// North.Cross(East) is +1 and a positive cross product means the second
// vector lies to the right of the first.
//
// Values are immutable. Zero-vector inputs to Normalize, Azimuth, and
// Cardinalize are not errors; each falls back to a documented sentinel value
// (the zero vector, or a zero angle). Only a scalar divide by exactly zero
// and out-of-range clamp parameters are reported as errors.
package planar

import (
	"errors"
	"fmt"
	"math"

	"navgraph/geom"
)

// Sentinel errors for operations with restricted domains.
var (
	ErrDivideByZero = errors.New("planar: divide by zero")
	ErrAngleRange   = errors.New("planar: clamp angle outside [0, pi]")
	ErrRadiusRange  = errors.New("planar: clamp radius out of range")
	ErrZeroVector   = errors.New("planar: zero vector")
)

// VectorXZ is an immutable direction or displacement in the horizontal
// plane. All operations are pure: they never mutate the receiver and return
// new values.
type VectorXZ struct {
	X, Z float32
}

// Commonly used directions.
var (
	Zero  = VectorXZ{}
	North = VectorXZ{X: 1}
	East  = VectorXZ{Z: 1}
)

// New returns the vector with the given northward and eastward components.
func New(x, z float32) VectorXZ { return VectorXZ{X: x, Z: z} }

// FromAzimuth returns the unit vector at the given angle, measured
// clockwise in radians from north.
func FromAzimuth(radians float32) VectorXZ {
	return VectorXZ{X: cos(radians), Z: sin(radians)}
}

// FromVec3 projects a 3-D vector onto the horizontal plane, discarding the
// vertical component.
func FromVec3(v geom.Vec3) VectorXZ { return VectorXZ{X: v.X, Z: v.Z} }

// Add returns the sum of v and o.
func (v VectorXZ) Add(o VectorXZ) VectorXZ {
	return VectorXZ{v.X + o.X, v.Z + o.Z}
}

// Subtract returns the difference v minus o.
func (v VectorXZ) Subtract(o VectorXZ) VectorXZ {
	return VectorXZ{v.X - o.X, v.Z - o.Z}
}

// Mult returns v uniformly scaled by s.
func (v VectorXZ) Mult(s float32) VectorXZ {
	return VectorXZ{v.X * s, v.Z * s}
}

// Divide returns v uniformly scaled by 1/s. Dividing by exactly zero
// returns ErrDivideByZero.
func (v VectorXZ) Divide(s float32) (VectorXZ, error) {
	if s == 0 {
		return Zero, ErrDivideByZero
	}
	return VectorXZ{v.X / s, v.Z / s}, nil
}

// MultVec returns the complex product of v and o, treating X as the real
// part and Z as the imaginary part. Multiplying by a unit vector rotates v
// clockwise by that vector's azimuth; lengths multiply. This is how
// compound rotations compose without going through an explicit angle.
func (v VectorXZ) MultVec(o VectorXZ) VectorXZ {
	return VectorXZ{
		X: v.X*o.X - v.Z*o.Z,
		Z: v.X*o.Z + v.Z*o.X,
	}
}

// Dot returns the dot product of v and o in double precision.
func (v VectorXZ) Dot(o VectorXZ) float64 {
	return float64(v.X)*float64(o.X) + float64(v.Z)*float64(o.Z)
}

// Cross returns the scalar cross product of v and o under the left-handed
// convention: North.Cross(East) == +1. A positive result means o lies
// clockwise of v, a negative result counter-clockwise.
func (v VectorXZ) Cross(o VectorXZ) float32 {
	return v.X*o.Z - v.Z*o.X
}

// LengthSquared returns the squared length of v in double precision, for
// tolerance comparisons that must not lose bits to a square root.
func (v VectorXZ) LengthSquared() float64 {
	return float64(v.X)*float64(v.X) + float64(v.Z)*float64(v.Z)
}

// Length returns the length of v.
func (v VectorXZ) Length() float32 {
	return float32(math.Sqrt(v.LengthSquared()))
}

// IsZero reports whether both components are exactly zero.
func (v VectorXZ) IsZero() bool { return v.X == 0 && v.Z == 0 }

// Normalize returns the unit vector with the direction of v. The zero
// vector normalizes to itself.
func (v VectorXZ) Normalize() VectorXZ {
	if v.IsZero() {
		return Zero
	}
	length := v.Length()
	return VectorXZ{v.X / length, v.Z / length}
}

// Negate returns v with both components negated.
func (v VectorXZ) Negate() VectorXZ { return VectorXZ{-v.X, -v.Z} }

// MirrorZ returns v reflected across the north axis.
func (v VectorXZ) MirrorZ() VectorXZ { return VectorXZ{v.X, -v.Z} }

// FirstQuadrant returns v reflected into the non-negative quadrant,
// preserving length.
func (v VectorXZ) FirstQuadrant() VectorXZ {
	return VectorXZ{abs(v.X), abs(v.Z)}
}

// IsFirstQuadrant reports whether both components are zero or positive.
func (v VectorXZ) IsFirstQuadrant() bool { return v.X >= 0 && v.Z >= 0 }

// Azimuth returns the direction angle of v, measured clockwise in radians
// from north, in (-pi, pi]. The zero vector has azimuth 0.
func (v VectorXZ) Azimuth() float32 {
	if v.IsZero() {
		return 0
	}
	return float32(math.Atan2(float64(v.Z), float64(v.X)))
}

// Cardinalize snaps v to the nearest of the four axis-aligned unit
// directions. Ties go to the north-south axis. The zero vector maps to
// zero.
func (v VectorXZ) Cardinalize() VectorXZ {
	if v.IsZero() {
		return Zero
	}
	if abs(v.X) >= abs(v.Z) {
		if v.X >= 0 {
			return North
		}
		return North.Negate()
	}
	if v.Z >= 0 {
		return East
	}
	return East.Negate()
}

// Rotate returns v rotated clockwise by the given angle in radians,
// matching the azimuth convention: Rotate adds to azimuth. Rotate(0) is an
// exact identity.
func (v VectorXZ) Rotate(radians float32) VectorXZ {
	if radians == 0 {
		return v
	}
	c := cos(radians)
	s := sin(radians)
	return VectorXZ{
		X: c*v.X - s*v.Z,
		Z: c*v.Z + s*v.X,
	}
}

// ClampDirection limits the deviation of v from north. If |azimuth| exceeds
// maxAbsAngle, v is rotated back onto the cone boundary, preserving length;
// inside the cone v is returned unchanged. maxAbsAngle must lie in [0, pi];
// a full half-circle never clamps.
func (v VectorXZ) ClampDirection(maxAbsAngle float32) (VectorXZ, error) {
	if !(maxAbsAngle >= 0 && maxAbsAngle <= math.Pi) {
		return Zero, ErrAngleRange
	}
	azimuth := v.Azimuth()
	if abs(azimuth) <= maxAbsAngle {
		return v, nil
	}
	limit := maxAbsAngle
	if azimuth < 0 {
		limit = -maxAbsAngle
	}
	return FromAzimuth(limit).Mult(v.Length()), nil
}

// ClampElliptical scales v down (never up) so it lies on or inside the
// axis-aligned ellipse with the given semi-axes, preserving direction. Both
// semi-axes must be positive.
func (v VectorXZ) ClampElliptical(maxX, maxZ float32) (VectorXZ, error) {
	if !(maxX > 0 && maxZ > 0) {
		return Zero, ErrRadiusRange
	}
	nx := float64(v.X) / float64(maxX)
	nz := float64(v.Z) / float64(maxZ)
	ellipse := nx*nx + nz*nz
	if ellipse <= 1 {
		return v, nil
	}
	return v.Mult(float32(1 / math.Sqrt(ellipse))), nil
}

// ClampLength scales v down (never up) so its length does not exceed
// radius, preserving direction. A vector already inside the circle is
// returned unchanged, exactly. The radius must be zero or positive.
func (v VectorXZ) ClampLength(radius float32) (VectorXZ, error) {
	if !(radius >= 0) {
		return Zero, ErrRadiusRange
	}
	length := v.Length()
	if length <= radius {
		return v, nil
	}
	return v.Mult(radius / length), nil
}

// Interpolate returns the linear blend of v and o: v exactly when fraction
// is 0 and o exactly when fraction is 1. Fractions outside [0, 1]
// extrapolate without clamping.
func (v VectorXZ) Interpolate(o VectorXZ, fraction float32) VectorXZ {
	u := 1 - fraction
	return VectorXZ{
		X: u*v.X + fraction*o.X,
		Z: u*v.Z + fraction*o.Z,
	}
}

// DirectionError returns the signed sine of the angle from v to goal, a
// cheap continuous turn signal: positive means the goal lies to the right.
// Once the true angle exceeds 90 degrees the result saturates to +1 or -1,
// so an exactly opposite goal yields a saturated +1. Both v and goal must
// be non-zero.
func (v VectorXZ) DirectionError(goal VectorXZ) (float32, error) {
	lengthProduct := math.Sqrt(v.LengthSquared() * goal.LengthSquared())
	if lengthProduct == 0 {
		return 0, ErrZeroVector
	}
	cross := float64(v.X)*float64(goal.Z) - float64(v.Z)*float64(goal.X)
	sine := cross / lengthProduct
	if v.Dot(goal) < 0 {
		if sine >= 0 {
			return 1, nil
		}
		return -1, nil
	}
	switch {
	case sine > 1:
		return 1, nil
	case sine < -1:
		return -1, nil
	}
	return float32(sine), nil
}

// ToVec3 lifts v into 3-D space with a vertical component of zero.
func (v VectorXZ) ToVec3() geom.Vec3 {
	return geom.Vec3{X: v.X, Z: v.Z}
}

// ToVec3Y lifts v into 3-D space with the given vertical component.
func (v VectorXZ) ToVec3Y(y float32) geom.Vec3 {
	return geom.Vec3{X: v.X, Y: y, Z: v.Z}
}

// ToQuat returns the rotation that carries north to the direction of v: a
// turn about +Y by the azimuth of v. The zero vector yields the identity.
func (v VectorXZ) ToQuat() geom.Quat {
	return geom.FromAxisAngle(geom.UnitY, -v.Azimuth())
}

// String formats v for debug output.
func (v VectorXZ) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Z)
}

func abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }

func cos(x float32) float32 { return float32(math.Cos(float64(x))) }

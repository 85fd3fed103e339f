package geom

import (
	"fmt"
	"math"
)

// Quat is an immutable rotation quaternion with single-precision
// components. W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// Identity is the no-rotation quaternion.
var Identity = Quat{W: 1}

// FromAxisAngle returns the right-handed rotation by the given angle in
// radians about the given axis. The axis need not be unit length; a zero
// axis yields the identity.
func FromAxisAngle(axis Vec3, radians float32) Quat {
	unit := axis.Normalize()
	if unit.IsZero() {
		return Identity
	}
	half := radians / 2
	s := sin(half)
	return Quat{
		X: unit.X * s,
		Y: unit.Y * s,
		Z: unit.Z * s,
		W: cos(half),
	}
}

// Mul returns the Hamilton product q times o: the rotation o followed by q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Conjugate returns the conjugate of q, which inverts the rotation when q
// is unit length.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// NormSquared returns the squared norm of q in double precision.
func (q Quat) NormSquared() float64 {
	return float64(q.X)*float64(q.X) + float64(q.Y)*float64(q.Y) +
		float64(q.Z)*float64(q.Z) + float64(q.W)*float64(q.W)
}

// Norm returns the norm of q.
func (q Quat) Norm() float32 {
	return float32(math.Sqrt(q.NormSquared()))
}

// Normalize returns q scaled to unit norm. The zero quaternion normalizes
// to the identity.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return Identity
	}
	return Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// IsUnit reports whether q has unit norm, with the squared norm checked
// against UnitTolerance.
func (q Quat) IsUnit() bool {
	return math.Abs(q.NormSquared()-1) <= UnitTolerance
}

// Rotate applies the rotation q to v. Only unit quaternions represent pure
// rotations.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// String formats q for debug output.
func (q Quat) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q.X, q.Y, q.Z, q.W)
}

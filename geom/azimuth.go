package geom

import "math"

// Azimuth returns the horizontal direction angle of v, measured clockwise
// in radians from +X toward +Z, in (-pi, pi]. A vector with no horizontal
// component has azimuth 0.
func Azimuth(v Vec3) float32 {
	if v.X == 0 && v.Z == 0 {
		return 0
	}
	return float32(math.Atan2(float64(v.Z), float64(v.X)))
}

// Altitude returns the elevation angle of v above the XZ plane, in
// [-pi/2, pi/2]. A zero vector is an error.
func Altitude(v Vec3) (float32, error) {
	if v.IsZero() {
		return 0, ErrZeroVector
	}
	horizontal := math.Hypot(float64(v.X), float64(v.Z))
	return float32(math.Atan2(float64(v.Y), horizontal)), nil
}

// FromAltAz returns the unit vector with the given altitude and azimuth
// angles in radians.
func FromAltAz(altitude, azimuth float32) Vec3 {
	cosAlt := cos(altitude)
	return Vec3{
		X: cosAlt * cos(azimuth),
		Y: sin(altitude),
		Z: cosAlt * sin(azimuth),
	}
}

// YRotate returns v rotated clockwise about the +Y axis by the given angle
// in radians, consistent with the azimuth convention: rotating UnitX by a
// yields a vector whose azimuth is a.
func YRotate(v Vec3, radians float32) Vec3 {
	c := cos(radians)
	s := sin(radians)
	return Vec3{
		X: c*v.X - s*v.Z,
		Y: v.Y,
		Z: c*v.Z + s*v.X,
	}
}

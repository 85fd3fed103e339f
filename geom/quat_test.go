package geom

import (
	"math"
	"testing"
)

func quatNear(a, b Quat) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z) && near(a.W, b.W)
}

func TestFromAxisAngle(t *testing.T) {
	if got := FromAxisAngle(Zero, 1.5); got != Identity {
		t.Fatalf("zero axis: got %v, want identity", got)
	}
	q := FromAxisAngle(V(0, 2, 0), math.Pi/2)
	if !q.IsUnit() {
		t.Fatalf("axis-angle quaternion not unit: %v", q)
	}
	// A right-handed quarter turn about +Y carries north to west (-Z).
	if got := q.Rotate(UnitX); !vecNear(got, UnitZ.Negate()) {
		t.Errorf("Rotate: got %v, want %v", got, UnitZ.Negate())
	}
	// The opposite turn carries north to east.
	q = FromAxisAngle(UnitY, -math.Pi/2)
	if got := q.Rotate(UnitX); !vecNear(got, UnitZ) {
		t.Errorf("Rotate: got %v, want %v", got, UnitZ)
	}
}

func TestQuatMul(t *testing.T) {
	quarter := FromAxisAngle(UnitY, math.Pi/2)
	half := FromAxisAngle(UnitY, math.Pi)
	if got := quarter.Mul(quarter); !quatNear(got, half) {
		t.Errorf("two quarter turns: got %v, want %v", got, half)
	}
	if got := Identity.Mul(quarter); !quatNear(got, quarter) {
		t.Errorf("identity product: got %v, want %v", got, quarter)
	}
}

func TestQuatConjugate(t *testing.T) {
	q := FromAxisAngle(V(1, 1, 0), 0.8)
	v := V(3, -2, 5)
	back := q.Conjugate().Rotate(q.Rotate(v))
	if !vecNear(back, v) {
		t.Errorf("conjugate round trip: got %v, want %v", back, v)
	}
	if got := q.Mul(q.Conjugate()); !quatNear(got, Identity) {
		t.Errorf("q * conj(q): got %v, want identity", got)
	}
}

func TestQuatNormalize(t *testing.T) {
	if got := (Quat{}).Normalize(); got != Identity {
		t.Fatalf("zero quaternion: got %v, want identity", got)
	}
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	if !q.IsUnit() {
		t.Errorf("Normalize: norm %v, want 1", q.Norm())
	}
}

func TestQuatRotatePreservesLength(t *testing.T) {
	q := FromAxisAngle(V(1, -2, 0.5), 2.2)
	v := V(-4, 1, 7)
	if got, want := q.Rotate(v).Length(), v.Length(); !near(got, want) {
		t.Errorf("rotation changed length: got %v, want %v", got, want)
	}
}

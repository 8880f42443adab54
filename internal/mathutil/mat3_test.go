package mathutil

import (
	"math"
	"testing"
)

func vecNear(t *testing.T, got, want Vec3, what string) {
	t.Helper()
	if got.Sub(want).Len() > 1e-12 {
		t.Errorf("%s: got %v, want %v", what, got, want)
	}
}

func TestRotZ(t *testing.T) {
	m := RotZ(math.Pi / 2)
	vecNear(t, m.MulVec3(Vec3{1, 0, 0}), Vec3{0, 1, 0}, "quarter turn about z")
	vecNear(t, m.MulVec3(Vec3{0, 0, 1}), Vec3{0, 0, 1}, "z axis is fixed")
}

func TestRotY(t *testing.T) {
	m := RotY(math.Pi / 2)
	vecNear(t, m.MulVec3(Vec3{0, 0, 1}), Vec3{1, 0, 0}, "quarter turn about y")
	vecNear(t, m.MulVec3(Vec3{0, 1, 0}), Vec3{0, 1, 0}, "y axis is fixed")
}

func TestMat3MulComposes(t *testing.T) {
	a, b := RotY(0.3), RotZ(-0.7)
	v := Vec3{0.2, -0.5, 0.9}
	vecNear(t, Mat3Mul(a, b).MulVec3(v), a.MulVec3(b.MulVec3(v)), "composition")
}

func TestTransposeInvertsRotation(t *testing.T) {
	m := Mat3Mul(RotY(0.4), RotZ(1.1))
	v := Vec3{0.3, 0.1, -0.8}
	vecNear(t, m.Transpose().MulVec3(m.MulVec3(v)), v, "orthogonal inverse")
}

func TestNormalizeAndLerp(t *testing.T) {
	v := Vec3{3, 0, 4}
	vecNear(t, v.Normalize(), Vec3{0.6, 0, 0.8}, "normalize")

	if !(Vec3{}).IsZero() {
		t.Error("zero vector must report IsZero")
	}
	vecNear(t, (Vec3{}).Normalize(), Vec3{}, "normalizing zero stays zero")

	a, b := Vec3{1, 0, 0}, Vec3{0, 1, 0}
	vecNear(t, a.Lerp(b, 0.5), Vec3{0.5, 0.5, 0}, "midpoint lerp")
	vecNear(t, a.Lerp(b, 0), a, "lerp endpoint 0")
	vecNear(t, a.Lerp(b, 1), b, "lerp endpoint 1")
}

package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	if got := QuatIdentity().ToMat4(); got != Identity() {
		t.Errorf("identity quaternion should produce identity matrix, got %v", got)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}

	if (Quat{}).Normalize() != QuatIdentity() {
		t.Error("zero quaternion should normalize to identity")
	}
}

func TestQuatMatchesRotateZ(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 0, 1}, 0.7)
	if !q.ToMat4().ApproxEqual(RotateZ(0.7), 1e-5) {
		t.Errorf("quaternion matrix %v differs from RotateZ %v", q.ToMat4(), RotateZ(0.7))
	}
}

func TestQuatMul(t *testing.T) {
	half := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/4))
	full := half.Mul(half)
	if !full.ToMat4().ApproxEqual(RotateY(float32(math.Pi/2)), 1e-5) {
		t.Error("two 45 degree rotations should equal one 90 degree rotation")
	}
}

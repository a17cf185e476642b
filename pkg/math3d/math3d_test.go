package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	if got := a.Sub(b); got != V3(-3, 7, -3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 4-10+18 {
		t.Errorf("Dot = %v", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("Cross x*y = %v, want z", got)
	}
	if got := V3(3, 4, 0).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"axis", V3(0, 0, 7), V3(0, 0, 1)},
		{"diagonal", V3(3, 4, 0), V3(0.6, 0.8, 0)},
		{"zero stays zero", Zero3(), Zero3()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Normalize(); !vecNear(got, tc.want, eps) {
				t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFaceNormal(t *testing.T) {
	n := FaceNormal(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0))
	if !vecNear(n, V3(0, 0, 1), eps) {
		t.Errorf("FaceNormal = %v, want +Z", n)
	}

	if got := FaceNormal(V3(1, 1, 1), V3(1, 1, 1), V3(2, 2, 2)); !got.IsZero() {
		t.Errorf("degenerate FaceNormal = %v, want zero", got)
	}
}

func TestSignedArea2(t *testing.T) {
	// Y is down on screen, so (0,0) -> (1,0) -> (0,-1) turns upward.
	if got := SignedArea2(V2(0, 0), V2(1, 0), V2(0, -1)); got != -1 {
		t.Errorf("SignedArea2 = %v, want -1", got)
	}
	if got := SignedArea2(V2(0, 0), V2(0, -1), V2(1, 0)); got != 1 {
		t.Errorf("SignedArea2 reversed = %v, want 1", got)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		in   Vec3
		want Vec3
	}{
		{"yaw quarter turn moves +X to -Z", RotationY(math.Pi / 2), V3(1, 0, 0), V3(0, 0, -1)},
		{"yaw quarter turn moves +Z to +X", RotationY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
		{"pitch quarter turn moves +Y to +Z", RotationX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"roll quarter turn moves +X to +Y", RotationZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
		{"identity", Identity3(), V3(1, 2, 3), V3(1, 2, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.MulVec3(tc.in); !vecNear(got, tc.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMat3MulOrder(t *testing.T) {
	yaw := RotationY(0.7)
	pitch := RotationX(-0.3)
	v := V3(1, 2, 3)

	combined := pitch.Mul(yaw).MulVec3(v)
	stepwise := pitch.MulVec3(yaw.MulVec3(v))
	if !vecNear(combined, stepwise, 1e-12) {
		t.Errorf("pitch*yaw = %v, stepwise = %v", combined, stepwise)
	}

	back := yaw.Transpose().MulVec3(yaw.MulVec3(v))
	if !vecNear(back, v, 1e-12) {
		t.Errorf("transpose did not invert rotation: %v", back)
	}
}

func TestMat4AgreesWithMat3(t *testing.T) {
	v := V3(2, -1, 5)
	a := RotateY(1.1).MulVec3Dir(v)
	b := RotationY(1.1).MulVec3(v)
	if !vecNear(a, b, 1e-12) {
		t.Errorf("RotateY = %v, RotationY = %v", a, b)
	}
}

func TestPlacement(t *testing.T) {
	m := Placement(V3(10, 0, 0), 0, 2)
	if got := m.MulVec3(V3(1, 1, 1)); !vecNear(got, V3(12, 2, 2), eps) {
		t.Errorf("Placement point = %v", got)
	}
	if got := m.Translation(); got != V3(10, 0, 0) {
		t.Errorf("Translation = %v", got)
	}
	if d := Scale(V3(-1, 1, 1)).Determinant3(); d >= 0 {
		t.Errorf("mirror determinant = %v, want negative", d)
	}
}

func TestAABB(t *testing.T) {
	b := BoundPoints([]Vec3{V3(1, 2, 3), V3(-1, 0, 5), V3(0, -2, 4)})
	if b.Min != V3(-1, -2, 3) || b.Max != V3(1, 2, 5) {
		t.Fatalf("BoundPoints = %+v", b)
	}
	if got := b.Center(); got != V3(0, 0, 4) {
		t.Errorf("Center = %v", got)
	}
	if !b.ContainsPoint(V3(0, 0, 4)) || b.ContainsPoint(V3(0, 0, 6)) {
		t.Error("ContainsPoint mismatch")
	}
	if !b.Intersects(AABBFromCenter(V3(2, 0, 4), V3(1, 1, 1))) {
		t.Error("touching boxes should intersect")
	}
	if b.Intersects(AABBFromCenter(V3(5, 0, 4), V3(1, 1, 1))) {
		t.Error("separate boxes should not intersect")
	}
	if got := b.ClosestPoint(V3(10, 0, 0)); got != V3(1, 0, 3) {
		t.Errorf("ClosestPoint = %v", got)
	}
}

func TestAABBRayIntersect(t *testing.T) {
	box := NewAABB(V3(-1, -1, -1), V3(1, 1, 1))

	tests := []struct {
		name   string
		origin Vec3
		dir    Vec3
		maxT   float64
		want   bool
	}{
		{"straight hit", V3(-5, 0, 0), V3(1, 0, 0), math.Inf(1), true},
		{"pointing away", V3(-5, 0, 0), V3(-1, 0, 0), math.Inf(1), false},
		{"miss above", V3(-5, -3, 0), V3(1, 0, 0), math.Inf(1), false},
		{"too short", V3(-5, 0, 0), V3(1, 0, 0), 3, false},
		{"origin inside", V3(0, 0, 0), V3(0, 1, 0), 0.1, true},
		{"parallel outside slab", V3(-5, 2, 0), V3(1, 0, 0), math.Inf(1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.RayIntersect(tc.origin, tc.dir, tc.maxT); got != tc.want {
				t.Errorf("RayIntersect = %v, want %v", got, tc.want)
			}
		})
	}
}

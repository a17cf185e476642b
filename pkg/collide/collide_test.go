package collide

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/shapes"
)

var gray = color.RGBA{128, 128, 128, 255}

func TestHit(t *testing.T) {
	box := shapes.NewBox("crate", math3d.V3(0, 0, 0), 100, 100, 100, 1, gray)
	ball := shapes.NewSphere("ball", math3d.V3(0, 0, 0), 50, 8, gray)
	cone := shapes.NewCone("cone", math3d.V3(0, 0, 0), 100, 200, 12, gray)
	plane := shapes.NewPlane("ground", math3d.V3(0, 0, 0), 400, 400, 1, shapes.Horizontal, gray)

	tests := []struct {
		name  string
		shape *shapes.Shape
		p     math3d.Vec3
		want  bool
	}{
		{"box face contact", box, math3d.V3(120, 0, 0), true},
		{"box clear", box, math3d.V3(121, 0, 0), false},
		{"box corner region", box, math3d.V3(110, 110, 110), true},
		{"sphere touching", ball, math3d.V3(120, 0, 0), true},
		{"sphere diagonal clear", ball, math3d.V3(90, 90, 0), false},
		{"cone near base", cone, math3d.V3(160, 90, 0), true},
		{"cone beside apex", cone, math3d.V3(100, -90, 0), false},
		{"cone above apex", cone, math3d.V3(0, -171, 0), false},
		{"cone under base", cone, math3d.V3(0, 169, 0), true},
		{"plane from above", plane, math3d.V3(0, -71, 0), true},
		{"plane clear", plane, math3d.V3(0, -72, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Hit(tc.p, PlayerRadius, tc.shape); got != tc.want {
				t.Errorf("Hit(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestConeOf(t *testing.T) {
	cone := shapes.NewCone("cone", math3d.V3(1, 2, 3), 40, 80, 12, gray)
	c, ok := ConeOf(cone)
	if !ok || c.Radius != 40 || c.Height != 80 || c.Center != cone.Position {
		t.Fatalf("ConeOf = %+v, %v", c, ok)
	}

	roof := shapes.New("roof", math3d.Zero3(), gray, shapes.Pyramid{Radius: 30, Height: 60, Cone: true})
	if c, ok := ConeOf(roof); !ok || c.Radius != 30 {
		t.Errorf("cone pyramid: %+v, %v", c, ok)
	}

	if _, ok := ConeOf(shapes.NewCylinder("post", math3d.Zero3(), 5, 50, 8, gray)); ok {
		t.Error("a capped cylinder is not a cone")
	}
}

func TestRadiusAt(t *testing.T) {
	c := Cone{Radius: 100, Height: 200}
	tests := []struct{ y, want float64 }{
		{-100, 0},
		{0, 50},
		{100, 100},
		{-500, 0},
		{500, 100},
	}
	for _, tc := range tests {
		if got := c.RadiusAt(tc.y); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("RadiusAt(%v) = %v, want %v", tc.y, got, tc.want)
		}
	}
}

func TestHitBox(t *testing.T) {
	crate := shapes.NewBox("crate", math3d.Zero3(), 100, 100, 100, 1, gray)
	ball := shapes.NewSphere("ball", math3d.Zero3(), 50, 8, gray)
	cone := shapes.NewCone("cone", math3d.Zero3(), 100, 200, 12, gray)
	half := math3d.V3(20, 60, 20)

	tests := []struct {
		name   string
		shape  *shapes.Shape
		center math3d.Vec3
		want   bool
	}{
		{"box overlap", crate, math3d.V3(60, 0, 0), true},
		{"box apart", crate, math3d.V3(71, 0, 0), false},
		{"sphere overlap", ball, math3d.V3(60, 0, 0), true},
		{"sphere misses corner", ball, math3d.V3(60, 0, 60), false},
		{"cone base", cone, math3d.V3(80, 60, 0), true},
		{"cone near apex", cone, math3d.V3(60, -120, 0), false},
		{"cone above", cone, math3d.V3(0, -200, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			box := math3d.AABBFromCenter(tc.center, half)
			if got := HitBox(box, tc.shape); got != tc.want {
				t.Errorf("HitBox = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWorldIgnoresTiles(t *testing.T) {
	tile := shapes.NewPlane("tile_0_0", math3d.V3(0, 100, 0), 400, 400, 1, shapes.Horizontal, gray)
	tile.Tile = true
	w := World{tile}

	if w.Blocked(math3d.V3(0, 100, 0), PlayerRadius) {
		t.Error("floor tiles must not block movement")
	}
	if w.BlockedBox(math3d.AABBFromCenter(math3d.V3(0, 100, 0), math3d.V3(10, 10, 10))) {
		t.Error("floor tiles must not block boxes")
	}
}

func TestSlide(t *testing.T) {
	wall := shapes.NewBox("wall", math3d.V3(200, 0, 0), 100, 400, 400, 1, gray)
	w := World{wall}

	// Heading into the wall diagonally: X is stopped, Z keeps going.
	p, v := w.Slide(math3d.V3(75, 0, 0), math3d.V3(8, 0, 8), PlayerRadius)
	if p.X != 75 || p.Z != 8 {
		t.Errorf("position = %v, want X held and Z advanced", p)
	}
	if math.Abs(v.X-(-0.8)) > 1e-9 || v.Z != 8 {
		t.Errorf("velocity = %v, want X bounced and Z kept", v)
	}

	_, v = w.Slide(math3d.V3(-500, 0, 0), math3d.V3(0.005, 0, 0), PlayerRadius)
	if v.X != 0 {
		t.Errorf("tiny velocity %v should come to rest", v.X)
	}
}

func BenchmarkBlocked(b *testing.B) {
	var w World
	for i := range 50 {
		x := float64(i) * 150
		w = append(w,
			shapes.NewBox("crate", math3d.V3(x, 0, 300), 100, 100, 100, 1, gray),
			shapes.NewSphere("ball", math3d.V3(x, 0, -300), 50, 8, gray),
			shapes.NewCone("cone", math3d.V3(x, 0, 600), 50, 100, 8, gray),
		)
	}
	p := math3d.V3(3000, 0, 0)

	for b.Loop() {
		w.Blocked(p, PlayerRadius)
	}
}

package shapes

import (
	"image/color"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Box is an axis-aligned cuboid with full side lengths W, H and D. Each of
// its six faces is tessellated into Subdivisions² quads.
type Box struct {
	W, H, D      float64
	Subdivisions int
}

// NewBox creates and generates a box centered on pos.
func NewBox(name string, pos math3d.Vec3, w, h, d float64, subdivisions int, c color.RGBA) *Shape {
	return New(name, pos, c, Box{W: w, H: h, D: d, Subdivisions: subdivisions})
}

func (Box) Kind() Kind { return KindBox }

func (b Box) extents() math3d.Vec3 {
	return math3d.V3(b.W/2, b.H/2, b.D/2)
}

func (b Box) clamped() Box {
	b.W, b.H, b.D = positive(b.W), positive(b.H), positive(b.D)
	b.Subdivisions = clampInt(b.Subdivisions, MinSubdivisions, MaxSubdivisions)
	return b
}

// boxFaces lists, per face, the outward axis and the two in-face axes
// (u, v) with u × v equal to the outward axis.
var boxFaces = [6][3]math3d.Vec3{
	{{X: 1}, {Y: 1}, {Z: 1}},  // +X
	{{X: -1}, {Z: 1}, {Y: 1}}, // -X
	{{Y: 1}, {Z: 1}, {X: 1}},  // +Y (bottom)
	{{Y: -1}, {X: 1}, {Z: 1}}, // -Y (top)
	{{Z: 1}, {X: 1}, {Y: 1}},  // +Z
	{{Z: -1}, {Y: 1}, {X: 1}}, // -Z
}

func (s *Shape) generateBox(b Box) {
	half := b.extents()
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		center := n.Mul(half)
		hu := axisExtent(u, half)
		hv := axisExtent(v, half)
		s.addGrid(center, u, v, hu, hv, b.Subdivisions)
	}
}

// axisExtent picks the half extent along a unit axis.
func axisExtent(axis, half math3d.Vec3) float64 {
	switch {
	case axis.X != 0:
		return half.X
	case axis.Y != 0:
		return half.Y
	default:
		return half.Z
	}
}

package shapes

import (
	"image/color"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Wedge is a triangular prism running along Z: a W × D bottom face and two
// sloped sides meeting in a ridge H above it.
type Wedge struct {
	W, H, D float64
}

// NewWedge creates and generates a wedge centered on pos.
func NewWedge(name string, pos math3d.Vec3, w, h, d float64, c color.RGBA) *Shape {
	return New(name, pos, c, Wedge{W: w, H: h, D: d})
}

func (Wedge) Kind() Kind { return KindWedge }

func (w Wedge) extents() math3d.Vec3 {
	return math3d.V3(w.W/2, w.H/2, w.D/2)
}

func (w Wedge) clamped() Wedge {
	w.W, w.H, w.D = positive(w.W), positive(w.H), positive(w.D)
	return w
}

// wedgeTriangles indexes the six wedge corners:
// 0 front-left, 1 front-right, 2 front-ridge, 3 back-left, 4 back-right, 5 back-ridge.
var wedgeTriangles = [8][3]int{
	{0, 1, 2}, // front cap
	{3, 5, 4}, // back cap
	{0, 3, 1}, // bottom
	{1, 3, 4},
	{0, 2, 3}, // left slope
	{2, 5, 3},
	{1, 4, 2}, // right slope
	{2, 4, 5},
}

func (s *Shape) generateWedge(w Wedge) {
	hw, hh, hd := w.W/2, w.H/2, w.D/2
	for _, z := range [2]float64{-hd, hd} {
		s.addVertex(math3d.V3(-hw, hh, z))
		s.addVertex(math3d.V3(hw, hh, z))
		s.addVertex(math3d.V3(0, -hh, z))
	}
	for _, t := range wedgeTriangles {
		s.addTriangle(t[0], t[1], t[2])
	}
}

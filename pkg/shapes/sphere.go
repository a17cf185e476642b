package shapes

import (
	"image/color"
	"math"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Sphere is a UV sphere sampled over Segments latitude and Segments
// longitude steps. Its poles are made of coincident vertices.
type Sphere struct {
	Radius   float64
	Segments int
}

// NewSphere creates and generates a sphere centered on pos.
func NewSphere(name string, pos math3d.Vec3, radius float64, segments int, c color.RGBA) *Shape {
	return New(name, pos, c, Sphere{Radius: radius, Segments: segments})
}

func (Sphere) Kind() Kind { return KindSphere }

func (sp Sphere) extents() math3d.Vec3 {
	return math3d.V3(sp.Radius, sp.Radius, sp.Radius)
}

func (sp Sphere) clamped() Sphere {
	sp.Radius = positive(sp.Radius)
	sp.Segments = clampInt(sp.Segments, MinSegments, MaxSegments)
	return sp
}

func (s *Shape) generateSphere(sp Sphere) {
	n := sp.Segments
	for i := 0; i <= n; i++ {
		theta := float64(i) * math.Pi / float64(n)
		sinT, cosT := math.Sincos(theta)
		for j := 0; j <= n; j++ {
			phi := float64(j) * 2 * math.Pi / float64(n)
			sinP, cosP := math.Sincos(phi)
			s.addVertex(math3d.V3(
				sp.Radius*sinT*cosP,
				sp.Radius*cosT,
				sp.Radius*sinT*sinP,
			))
		}
	}

	row := n + 1
	for i := range n {
		for j := range n {
			a := i*row + j
			b := a + row // next latitude
			c := a + 1   // next longitude
			d := b + 1
			s.addTriangle(a, c, b)
			s.addTriangle(c, d, b)
		}
	}
}

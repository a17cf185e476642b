package shapes

import (
	"image/color"
	"math"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Cylinder is a vertical tube between a bottom ring (+Y) and a top ring
// (-Y) with optional fan caps. A zero TopRadius collapses the top ring into
// a single apex vertex, giving a cone.
type Cylinder struct {
	BottomRadius float64
	TopRadius    float64
	Height       float64
	Segments     int
	CapTop       bool
	CapBottom    bool
}

// NewCylinder creates a capped cylinder centered on pos.
func NewCylinder(name string, pos math3d.Vec3, radius, height float64, segments int, c color.RGBA) *Shape {
	return New(name, pos, c, Cylinder{
		BottomRadius: radius,
		TopRadius:    radius,
		Height:       height,
		Segments:     segments,
		CapTop:       true,
		CapBottom:    true,
	})
}

// NewCone creates a cone with its apex pointing up.
func NewCone(name string, pos math3d.Vec3, radius, height float64, segments int, c color.RGBA) *Shape {
	return New(name, pos, c, Cylinder{
		BottomRadius: radius,
		Height:       height,
		Segments:     segments,
		CapBottom:    true,
	})
}

func (Cylinder) Kind() Kind { return KindCylinder }

// IsCone reports whether the top ring is collapsed to an apex.
func (cy Cylinder) IsCone() bool {
	return cy.TopRadius == 0
}

func (cy Cylinder) extents() math3d.Vec3 {
	r := max(cy.BottomRadius, cy.TopRadius)
	return math3d.V3(r, cy.Height/2, r)
}

func (cy Cylinder) clamped() Cylinder {
	cy.BottomRadius = positive(cy.BottomRadius)
	cy.TopRadius = max(0, cy.TopRadius)
	cy.Height = positive(cy.Height)
	cy.Segments = clampInt(cy.Segments, MinSegments, MaxSegments)
	return cy
}

func (s *Shape) generateCylinder(cy Cylinder) {
	n := cy.Segments
	hh := cy.Height / 2

	bottom := s.addRing(cy.BottomRadius, hh, n)

	if cy.IsCone() {
		apex := s.addVertex(math3d.V3(0, -hh, 0))
		for j := range n {
			s.addTriangle(bottom[j], bottom[(j+1)%n], apex)
		}
	} else {
		top := s.addRing(cy.TopRadius, -hh, n)
		for j := range n {
			k := (j + 1) % n
			s.addTriangle(bottom[j], bottom[k], top[j])
			s.addTriangle(bottom[k], top[k], top[j])
		}
		if cy.CapTop {
			center := s.addVertex(math3d.V3(0, -hh, 0))
			for j := range n {
				s.addTriangle(center, top[j], top[(j+1)%n])
			}
		}
	}

	if cy.CapBottom {
		center := s.addVertex(math3d.V3(0, hh, 0))
		for j := range n {
			s.addTriangle(center, bottom[(j+1)%n], bottom[j])
		}
	}
}

// addRing appends n vertices on a horizontal circle at height y and returns
// their indices in order of increasing angle from +X toward +Z.
func (s *Shape) addRing(radius, y float64, n int) []int {
	ring := make([]int, n)
	for j := range n {
		sin, cos := math.Sincos(float64(j) * 2 * math.Pi / float64(n))
		ring[j] = s.addVertex(math3d.V3(radius*cos, y, radius*sin))
	}
	return ring
}

package shapes

import (
	"image/color"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// coneSides is the minimum side count when a pyramid stands in for a cone.
const coneSides = 24

// Pyramid joins an apex (-Y) to a base loop (+Y). The base is either a
// regular polygon of Sides vertices on Radius, or, when Rectangular is set,
// a BaseWidth × BaseDepth rectangle. Cone forces a round polygonal base.
type Pyramid struct {
	Sides       int
	Radius      float64
	BaseWidth   float64
	BaseDepth   float64
	Height      float64
	Rectangular bool
	Cone        bool
	Base        bool // close the base with a fan
}

// NewPyramid creates a rectangular pyramid with a closed base.
func NewPyramid(name string, pos math3d.Vec3, baseWidth, baseDepth, height float64, c color.RGBA) *Shape {
	return New(name, pos, c, Pyramid{
		BaseWidth:   baseWidth,
		BaseDepth:   baseDepth,
		Height:      height,
		Rectangular: true,
		Base:        true,
	})
}

func (Pyramid) Kind() Kind { return KindPyramid }

func (p Pyramid) extents() math3d.Vec3 {
	if p.Rectangular {
		return math3d.V3(p.BaseWidth/2, p.Height/2, p.BaseDepth/2)
	}
	return math3d.V3(p.Radius, p.Height/2, p.Radius)
}

func (p Pyramid) clamped() Pyramid {
	p.Height = positive(p.Height)
	if p.Cone {
		p.Rectangular = false
		p.Sides = max(p.Sides, coneSides)
	}
	if p.Rectangular {
		p.BaseWidth = positive(p.BaseWidth)
		p.BaseDepth = positive(p.BaseDepth)
		p.Sides = 4
	} else {
		p.Radius = positive(p.Radius)
		p.Sides = clampInt(p.Sides, MinSegments, MaxSegments)
	}
	return p
}

func (s *Shape) generatePyramid(p Pyramid) {
	hh := p.Height / 2
	apex := s.addVertex(math3d.V3(0, -hh, 0))

	var base []int
	if p.Rectangular {
		hw, hd := p.BaseWidth/2, p.BaseDepth/2
		base = []int{
			s.addVertex(math3d.V3(hw, hh, hd)),
			s.addVertex(math3d.V3(-hw, hh, hd)),
			s.addVertex(math3d.V3(-hw, hh, -hd)),
			s.addVertex(math3d.V3(hw, hh, -hd)),
		}
	} else {
		base = s.addRing(p.Radius, hh, p.Sides)
	}

	n := len(base)
	for j := range n {
		s.addTriangle(base[j], base[(j+1)%n], apex)
	}

	if p.Base {
		for k := 1; k < n-1; k++ {
			s.addTriangle(base[0], base[k+1], base[k])
		}
	}
}

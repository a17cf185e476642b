package shapes

import (
	"image/color"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Orientation selects the axis a Plane faces.
type Orientation int

const (
	// Horizontal lies in XZ and faces up (-Y).
	Horizontal Orientation = iota
	// VerticalXZ spans X and Y at a fixed Z and faces -Z.
	VerticalXZ
	// VerticalYZ spans Y and Z at a fixed X and faces -X.
	VerticalYZ
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case VerticalXZ:
		return "vertical-xz"
	case VerticalYZ:
		return "vertical-yz"
	default:
		return "unknown"
	}
}

// planeThickness is the half extent reported across a plane for collision.
const planeThickness = 1.0

// Plane is a single-sided quad grid of Width × Height split into
// Subdivisions² cells.
type Plane struct {
	Width, Height float64
	Subdivisions  int
	Orientation   Orientation
}

// NewPlane creates and generates a plane centered on pos.
func NewPlane(name string, pos math3d.Vec3, width, height float64, subdivisions int, o Orientation, c color.RGBA) *Shape {
	return New(name, pos, c, Plane{Width: width, Height: height, Subdivisions: subdivisions, Orientation: o})
}

func (Plane) Kind() Kind { return KindPlane }

func (p Plane) extents() math3d.Vec3 {
	switch p.Orientation {
	case VerticalXZ:
		return math3d.V3(p.Width/2, p.Height/2, planeThickness)
	case VerticalYZ:
		return math3d.V3(planeThickness, p.Height/2, p.Width/2)
	default:
		return math3d.V3(p.Width/2, planeThickness, p.Height/2)
	}
}

func (p Plane) clamped() Plane {
	p.Width, p.Height = positive(p.Width), positive(p.Height)
	p.Subdivisions = clampInt(p.Subdivisions, MinSubdivisions, MaxPlaneSubdivisions)
	if p.Orientation < Horizontal || p.Orientation > VerticalYZ {
		p.Orientation = Horizontal
	}
	return p
}

// Normal returns the side the plane is visible from.
func (p Plane) Normal() math3d.Vec3 {
	switch p.Orientation {
	case VerticalXZ:
		return math3d.V3(0, 0, -1)
	case VerticalYZ:
		return math3d.V3(-1, 0, 0)
	default:
		return math3d.Up()
	}
}

func (s *Shape) generatePlane(p Plane) {
	hw, hh := p.Width/2, p.Height/2
	var origin math3d.Vec3
	switch p.Orientation {
	case VerticalXZ:
		s.addGrid(origin, math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), hh, hw, p.Subdivisions)
	case VerticalYZ:
		s.addGrid(origin, math3d.V3(0, 0, 1), math3d.V3(0, 1, 0), hw, hh, p.Subdivisions)
	default:
		s.addGrid(origin, math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), hw, hh, p.Subdivisions)
	}
}

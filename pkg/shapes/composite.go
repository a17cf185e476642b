package shapes

import (
	"image/color"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Composite is a named assembly of child shapes. Generating it generates
// every child and concatenates their geometry, offsetting each child's
// triangle indices by the number of vertices already emitted. Children are
// positioned in world space.
type Composite struct {
	Children []*Shape
	// Size is the full extent reported for collision. When zero, the
	// generated bounds are used instead.
	Size math3d.Vec3

	bounds math3d.AABB
}

// NewComposite creates and generates an assembly of children.
func NewComposite(name string, pos math3d.Vec3, size math3d.Vec3, c color.RGBA, children ...*Shape) *Shape {
	return New(name, pos, c, &Composite{Children: children, Size: size})
}

func (*Composite) Kind() Kind { return KindComposite }

func (cp *Composite) extents() math3d.Vec3 {
	if !cp.Size.IsZero() {
		return cp.Size.Scale(0.5)
	}
	return cp.bounds.HalfSize()
}

// Child returns the first child with the given name, or nil.
func (cp *Composite) Child(name string) *Shape {
	for _, c := range cp.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Component returns the named part of a composite shape, or nil when s is
// not a composite or has no such part.
func (s *Shape) Component(name string) *Shape {
	cp, ok := s.Params.(*Composite)
	if !ok {
		return nil
	}
	return cp.Child(name)
}

func (s *Shape) generateComposite(cp *Composite) {
	for _, child := range cp.Children {
		child.Generate()

		offset := len(s.Vertices)
		s.Vertices = append(s.Vertices, child.Vertices...)
		for i, t := range child.Triangles {
			s.Triangles = append(s.Triangles, [3]int{t[0] + offset, t[1] + offset, t[2] + offset})
			s.Colors = append(s.Colors, child.TriangleColor(i))
		}
	}
	cp.bounds = math3d.BoundPoints(s.Vertices)
}

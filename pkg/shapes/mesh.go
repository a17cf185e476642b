package shapes

import (
	"image/color"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Mesh is arbitrary triangle geometry in model space, placed in the world
// by Transform and then offset by the shape position. Triangles that
// reference missing vertices are dropped during generation.
type Mesh struct {
	Vertices  []math3d.Vec3
	Triangles [][3]int
	Transform math3d.Mat4

	bounds math3d.AABB
}

// NewMesh creates and generates a mesh shape.
func NewMesh(name string, pos math3d.Vec3, m *Mesh, c color.RGBA) *Shape {
	return New(name, pos, c, m)
}

func (*Mesh) Kind() Kind { return KindMesh }

func (m *Mesh) extents() math3d.Vec3 {
	return m.bounds.HalfSize()
}

// ModelBounds returns the untransformed bounds of the mesh.
func (m *Mesh) ModelBounds() math3d.AABB {
	return math3d.BoundPoints(m.Vertices)
}

// FitTo returns the uniform scale that makes the largest model dimension
// equal to size.
func (m *Mesh) FitTo(size float64) float64 {
	dims := m.ModelBounds().Size()
	largest := max(dims.X, dims.Y, dims.Z)
	if largest == 0 {
		return 1
	}
	return size / largest
}

func (s *Shape) generateMesh(m *Mesh) {
	xf := m.Transform
	if xf == (math3d.Mat4{}) {
		xf = math3d.Identity()
	}
	// A mirroring transform reverses winding.
	flip := xf.Determinant3() < 0

	for _, v := range m.Vertices {
		s.addVertex(xf.MulVec3(v))
	}

	n := len(m.Vertices)
	for _, t := range m.Triangles {
		if !validIndex(t[0], n) || !validIndex(t[1], n) || !validIndex(t[2], n) {
			continue
		}
		if flip {
			s.addTriangle(t[0], t[2], t[1])
		} else {
			s.addTriangle(t[0], t[1], t[2])
		}
	}
	m.bounds = math3d.BoundPoints(s.Vertices)
}

func validIndex(i, n int) bool {
	return i >= 0 && i < n
}

// Package shapes builds the polygonal geometry the renderer draws.
//
// A Shape is a closed variant: its Params field holds exactly one of the
// parameter structs in this package, and Generate dispatches on that type to
// fill the shape's vertex and triangle lists. Vertices are stored in world
// space. Every triangle is wound so that (v1-v0) × (v2-v0) points out of the
// solid, using the engine's Y-down convention.
package shapes

import (
	"fmt"
	"image/color"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Subdivision limits for tessellated faces.
const (
	MinSubdivisions      = 1
	MaxSubdivisions      = 8
	MaxPlaneSubdivisions = 4
)

// Segment limits for round shapes.
const (
	MinSegments = 3
	MaxSegments = 64
)

// minExtent replaces non-positive sizes so generators never emit a
// zero-volume solid.
const minExtent = 1.0

// DefaultColor is the material color used when none is given.
var DefaultColor = color.RGBA{100, 150, 200, 255}

// Kind identifies the variant held by a Shape.
type Kind int

const (
	KindBox Kind = iota
	KindSphere
	KindCylinder
	KindPyramid
	KindWedge
	KindPlane
	KindComposite
	KindMesh
)

var kindNames = [...]string{"box", "sphere", "cylinder", "pyramid", "wedge", "plane", "composite", "mesh"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Params is implemented by the parameter struct of every shape kind.
// The set is closed: only types in this package satisfy it.
type Params interface {
	Kind() Kind
	// extents returns the half extents used by collision queries.
	extents() math3d.Vec3
}

// Shape is a renderable polygonal object.
type Shape struct {
	Name     string
	Position math3d.Vec3 // world-space anchor (center)
	Color    color.RGBA
	Params   Params

	// Tile marks floor pieces: they cast no shadows and use the cheap
	// lighting path.
	Tile bool

	Vertices  []math3d.Vec3
	Triangles [][3]int
	// Colors optionally overrides Color per triangle. Composite shapes use
	// it to keep each part's material.
	Colors []color.RGBA

	bounds math3d.AABB
}

// New creates a shape and generates its geometry.
func New(name string, pos math3d.Vec3, c color.RGBA, p Params) *Shape {
	s := &Shape{Name: name, Position: pos, Color: c, Params: p}
	s.Generate()
	return s
}

// Kind returns the variant of the shape.
func (s *Shape) Kind() Kind {
	return s.Params.Kind()
}

// Generate rebuilds the vertex and triangle lists from scratch. It may be
// called again after mutating Params or Position.
//
// Generate panics if Params is nil or not one of this package's types.
func (s *Shape) Generate() {
	s.Vertices = s.Vertices[:0]
	s.Triangles = s.Triangles[:0]
	s.Colors = s.Colors[:0]

	switch p := s.Params.(type) {
	case Box:
		p = p.clamped()
		s.Params = p
		s.generateBox(p)
	case Sphere:
		p = p.clamped()
		s.Params = p
		s.generateSphere(p)
	case Cylinder:
		p = p.clamped()
		s.Params = p
		s.generateCylinder(p)
	case Pyramid:
		p = p.clamped()
		s.Params = p
		s.generatePyramid(p)
	case Wedge:
		p = p.clamped()
		s.Params = p
		s.generateWedge(p)
	case Plane:
		p = p.clamped()
		s.Params = p
		s.generatePlane(p)
	case *Composite:
		s.generateComposite(p)
	case *Mesh:
		s.generateMesh(p)
	default:
		panic(fmt.Sprintf("shapes: cannot generate geometry for %q: unsupported params %T", s.Name, s.Params))
	}

	s.bounds = math3d.BoundPoints(s.Vertices)
	if len(s.Colors) == 0 {
		s.Colors = nil
	}
}

// TriangleColor returns the material color of triangle i.
func (s *Shape) TriangleColor(i int) color.RGBA {
	if i < len(s.Colors) {
		return s.Colors[i]
	}
	return s.Color
}

// TriangleCount returns the number of generated triangles.
func (s *Shape) TriangleCount() int {
	return len(s.Triangles)
}

// Triangle returns the world-space corners of triangle i.
func (s *Shape) Triangle(i int) (a, b, c math3d.Vec3) {
	t := s.Triangles[i]
	return s.Vertices[t[0]], s.Vertices[t[1]], s.Vertices[t[2]]
}

// Bounds returns the world-space box around the generated vertices.
func (s *Shape) Bounds() math3d.AABB {
	return s.bounds
}

// Extents returns the half extents (w, h, d) reported to collision queries.
func (s *Shape) Extents() math3d.Vec3 {
	return s.Params.extents()
}

// SetColor changes the material color. Composite children are not touched.
func (s *Shape) SetColor(c color.RGBA) {
	s.Color = c
}

func (s *Shape) addVertex(v math3d.Vec3) int {
	s.Vertices = append(s.Vertices, s.Position.Add(v))
	return len(s.Vertices) - 1
}

func (s *Shape) addTriangle(a, b, c int) {
	s.Triangles = append(s.Triangles, [3]int{a, b, c})
}

// addGrid appends an (n+1)x(n+1) vertex grid centered on c (relative to the
// shape position) spanning ±hu along unit axis u and ±hv along unit axis v,
// and 2n² triangles whose normals point along u × v.
func (s *Shape) addGrid(c, u, v math3d.Vec3, hu, hv float64, n int) {
	base := len(s.Vertices)
	for i := 0; i <= n; i++ {
		fv := -1 + 2*float64(i)/float64(n)
		for j := 0; j <= n; j++ {
			fu := -1 + 2*float64(j)/float64(n)
			s.addVertex(c.Add(u.Scale(fu * hu)).Add(v.Scale(fv * hv)))
		}
	}

	row := n + 1
	for i := range n {
		for j := range n {
			tl := base + i*row + j
			tr := tl + 1
			bl := tl + row
			br := bl + 1
			s.addTriangle(tl, tr, bl)
			s.addTriangle(tr, br, bl)
		}
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func positive(v float64) float64 {
	if v <= 0 {
		return minExtent
	}
	return v
}

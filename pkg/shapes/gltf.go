package shapes

import (
	"fmt"
	"image/color"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/bazaar/pkg/math3d"
)

// LoadGLB reads every triangle primitive of a glTF/GLB file into a Mesh.
//
// glTF is Y-up with counter-clockwise front faces. Positions are mirrored
// into the Y-down world and each triangle's winding is swapped so normals
// still point outward.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	m := &Mesh{Transform: math3d.Identity()}
	for _, gm := range doc.Meshes {
		if err := appendGLTFMesh(doc, gm, m); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", gm.Name, err)
		}
	}
	if len(m.Triangles) == 0 {
		return nil, fmt.Errorf("%s: no triangle primitives", path)
	}
	return m, nil
}

func appendGLTFMesh(doc *gltf.Document, gm *gltf.Mesh, m *Mesh) error {
	for _, prim := range gm.Primitives {
		// Lines and points have nothing to fill.
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(m.Vertices)
		for _, p := range positions {
			m.Vertices = append(m.Vertices, math3d.V3(float64(p[0]), -float64(p[1]), float64(p[2])))
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			m.Triangles = append(m.Triangles, [3]int{
				base + int(indices[i]),
				base + int(indices[i+2]),
				base + int(indices[i+1]),
			})
		}
	}
	return nil
}

// NewModel loads a GLB file and returns a shape scaled so its largest
// dimension equals size, turned by yaw and centered on pos.
func NewModel(name, path string, pos math3d.Vec3, size, yaw float64, c color.RGBA) (*Shape, error) {
	m, err := LoadGLB(path)
	if err != nil {
		return nil, err
	}
	scale := m.FitTo(size)
	center := m.ModelBounds().Center()
	m.Transform = math3d.RotateY(yaw).Mul(math3d.ScaleUniform(scale)).Mul(math3d.Translate(center.Negate()))
	return NewMesh(name, pos, m, c), nil
}

package render

import (
	"image/color"
	"math"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// DrawTriangleOutline draws the three edges of a screen-space triangle.
func (fb *Framebuffer) DrawTriangleOutline(p [3]math3d.Vec2, c color.RGBA) {
	for i := range 3 {
		a, b := p[i], p[(i+1)%3]
		if !finite(a) || !finite(b) {
			return
		}
		fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), c)
	}
}

func finite(p math3d.Vec2) bool {
	// Lines far off screen would walk millions of pixels.
	const limit = 1 << 16
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && math.Abs(p.X) < limit && math.Abs(p.Y) < limit
}

// Wireframe is an x-ray Surface: triangles are outlined on the wrapped
// framebuffer instead of filled, so hidden geometry shows through.
type Wireframe struct {
	fb *Framebuffer
	// Color overrides the shaded color of every edge when set.
	Color *color.RGBA
}

// NewWireframe creates a wireframe surface drawing onto fb.
func NewWireframe(fb *Framebuffer) *Wireframe {
	return &Wireframe{fb: fb}
}

func (w *Wireframe) Size() (int, int) { return w.fb.Size() }

func (w *Wireframe) DrawTriangle(p [3]math3d.Vec2, c color.RGBA) {
	if w.Color != nil {
		c = *w.Color
	}
	w.fb.DrawTriangleOutline(p, c)
}

func (w *Wireframe) DrawText(x, y float64, s string, style TextStyle) {
	w.fb.DrawText(x, y, s, style)
}

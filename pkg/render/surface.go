package render

import (
	"image/color"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Surface receives a frame's draw calls. Triangles arrive in painter's
// order, farthest first, and must be drawn in call order.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (width, height int)
	// DrawTriangle fills a screen-space triangle with a flat color.
	DrawTriangle(p [3]math3d.Vec2, c color.RGBA)
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(x, y float64, s string, style TextStyle)
}

// TextStyle controls how DrawText renders.
type TextStyle struct {
	Size       float64 // glyph height in pixels; 0 means the face's natural size
	Color      color.RGBA
	Background *color.RGBA // nil for no box
	Padding    int
}

// RecordedTriangle is a DrawTriangle call captured by a Recorder.
type RecordedTriangle struct {
	Points [3]math3d.Vec2
	Color  color.RGBA
}

// RecordedText is a DrawText call captured by a Recorder.
type RecordedText struct {
	X, Y  float64
	Text  string
	Style TextStyle
}

// Recorder is a Surface that keeps every call in order.
type Recorder struct {
	Width, Height int
	Triangles     []RecordedTriangle
	Texts         []RecordedText
}

// NewRecorder creates a recorder for a width × height viewport.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) DrawTriangle(p [3]math3d.Vec2, c color.RGBA) {
	r.Triangles = append(r.Triangles, RecordedTriangle{Points: p, Color: c})
}

func (r *Recorder) DrawText(x, y float64, s string, style TextStyle) {
	r.Texts = append(r.Texts, RecordedText{X: x, Y: y, Text: s, Style: style})
}

// Reset drops recorded calls.
func (r *Recorder) Reset() {
	r.Triangles = r.Triangles[:0]
	r.Texts = r.Texts[:0]
}

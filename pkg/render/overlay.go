package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/scene"
)

// Overlay palette.
var (
	ColorTitle = colornames.Gold
	ColorText  = colornames.White
	ColorHint  = colornames.Lightgray
	ColorLabel = colornames.Lightyellow
	ColorPanel = color.RGBA{0, 0, 0, 200}
	ColorOff   = colornames.Dimgray
)

// Marker sizes in pixels.
const (
	markerMin  = 2.0
	markerSpan = 10.0
)

// DrawLightMarkers draws a diamond, in the light's own color, at every
// enabled point and spot light in view. It returns the number drawn.
func DrawLightMarkers(dst Surface, cam *scene.Camera, lights []*scene.Light) int {
	w, h := dst.Size()
	drawn := 0
	for _, l := range lights {
		if l == nil || !l.Enabled || !l.Positional() {
			continue
		}
		p, depth, ok := cam.WorldToScreen(l.Position, w, h)
		if !ok {
			continue
		}
		s := markerMin + markerSpan*distanceFade(cam.Focal(), depth)
		top := math3d.V2(p.X, p.Y-s)
		right := math3d.V2(p.X+s, p.Y)
		bottom := math3d.V2(p.X, p.Y+s)
		left := math3d.V2(p.X-s, p.Y)
		c := l.Color
		c.A = 255
		dst.DrawTriangle([3]math3d.Vec2{top, right, bottom}, c)
		dst.DrawTriangle([3]math3d.Vec2{top, bottom, left}, c)
		drawn++
	}
	return drawn
}

// distanceFade shrinks markers with depth: 1 at or inside the focal
// distance, falling off as focal/depth beyond it.
func distanceFade(focal, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return math.Min(1, focal/depth)
}

// Label is text anchored to a world position.
type Label struct {
	Text        string
	Position    math3d.Vec3
	MaxDistance float64 // hidden beyond this camera distance; 0 for always
	Style       TextStyle
}

// DrawLabels projects each label and draws it centered above its anchor.
// Labels behind the camera or too far away are skipped. It returns the
// number drawn.
func DrawLabels(dst Surface, cam *scene.Camera, labels []Label) int {
	w, h := dst.Size()
	drawn := 0
	for _, l := range labels {
		if l.MaxDistance > 0 && cam.Position.Distance(l.Position) > l.MaxDistance {
			continue
		}
		p, _, ok := cam.WorldToScreen(l.Position, w, h)
		if !ok {
			continue
		}
		tw, th := measure(dst, l.Text, l.Style)
		dst.DrawText(p.X-float64(tw)/2, p.Y-float64(th), l.Text, l.Style)
		drawn++
	}
	return drawn
}

// TextMeasurer is implemented by surfaces whose text metrics differ from
// the framebuffer font.
type TextMeasurer interface {
	MeasureText(s string, style TextStyle) (w, h int)
}

func measure(dst Surface, s string, style TextStyle) (int, int) {
	if m, ok := dst.(TextMeasurer); ok {
		return m.MeasureText(s, style)
	}
	return MeasureText(s, style)
}

// UILines returns the status overlay for a frame.
func UILines(sc *scene.Scene, stats FrameStats) []string {
	pos := sc.Camera.Position
	lines := []string{
		"Bazaar - Software Rasterizer",
		fmt.Sprintf("Triangles: %d", stats.Drawn),
		fmt.Sprintf("Shapes: %d  Tiles: %d", len(sc.Registered()), sc.TileCount()),
		fmt.Sprintf("Camera: (%.0f, %.0f, %.0f)", pos.X, pos.Y, pos.Z),
	}
	for i, l := range sc.Lights {
		lines = append(lines, LightStatus(i, l))
	}
	return append(lines,
		"Press 1-4 to toggle lights",
		"Press L to toggle light movement",
		"WASD move, Q/E up/down, mouse look",
	)
}

// LightStatus describes light i for the overlay, numbered from 1.
func LightStatus(i int, l *scene.Light) string {
	if !l.Enabled {
		return fmt.Sprintf("L%d: %s (off)", i+1, l.Kind)
	}
	return fmt.Sprintf("L%d: %s (%d%%)", i+1, l.Kind, int(math.Round(l.Intensity*100)))
}

// DrawUI draws lines top to bottom starting at (x, y). The first line is
// the title.
func DrawUI(dst Surface, x, y float64, lines []string, style TextStyle) {
	for i, line := range lines {
		s := style
		switch {
		case i == 0:
			s.Color = ColorTitle
		case strings.HasSuffix(line, "(off)"):
			s.Color = ColorOff
		}
		dst.DrawText(x, y, line, s)
		_, h := measure(dst, line, style)
		y += float64(h)
	}
}

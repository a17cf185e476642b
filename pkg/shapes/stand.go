package shapes

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// StandStyle colors the parts of a market stand.
type StandStyle struct {
	Name  string
	Stand color.RGBA // platform, counter and panels
	Roof  color.RGBA
	Post  color.RGBA
}

// Stand styles.
var (
	DefaultStand = StandStyle{
		Name:  "market_stand",
		Stand: color.RGBA{139, 69, 19, 255},
		Roof:  color.RGBA{200, 50, 50, 255},
		Post:  color.RGBA{101, 67, 33, 255},
	}
	FruitStand = StandStyle{
		Name:  "fruit_stand",
		Stand: color.RGBA{160, 82, 45, 255},
		Roof:  color.RGBA{255, 165, 0, 255},
		Post:  color.RGBA{101, 67, 33, 255},
	}
	FlowerStand = StandStyle{
		Name:  "flower_stand",
		Stand: color.RGBA{255, 255, 255, 255},
		Roof:  color.RGBA{255, 192, 203, 255},
		Post:  color.RGBA{101, 67, 33, 255},
	}
	BookStand = StandStyle{
		Name:  "book_stand",
		Stand: color.RGBA{139, 69, 19, 255},
		Roof:  color.RGBA{25, 25, 112, 255},
		Post:  color.RGBA{101, 67, 33, 255},
	}
)

// StandStyles lists the stand variants in display order.
var StandStyles = []StandStyle{DefaultStand, FruitStand, FlowerStand, BookStand}

// Proportions of a market stand relative to its overall size.
const (
	standPlatformFrac = 0.13
	standPostFrac     = 0.53
	standCounterFrac  = 0.10
	standPanelFrac    = 0.40
	standRoofFrac     = 0.40
	standInset        = 0.425
	standPostSegments = 8
)

// NewMarketStand assembles a stall from a platform, four posts, a counter,
// three panels and a pyramid roof. pos is the center of the stall's
// w × h × d bounding box; the platform rests on its bottom (+Y) face.
func NewMarketStand(name string, pos math3d.Vec3, w, h, d float64, style StandStyle) *Shape {
	w, h, d = positive(w), positive(h), positive(d)
	bottom := pos.Y + h/2

	platformH := h * standPlatformFrac
	postH := h * standPostFrac
	postR := min(w, d) * 0.04
	thick := min(w, d) * 0.04
	panelH := h * standPanelFrac * 1.1

	at := func(dx, y, dz float64) math3d.Vec3 {
		return math3d.V3(pos.X+dx, y, pos.Z+dz)
	}

	parts := []*Shape{
		NewBox("platform", at(0, bottom-platformH/2, 0), w, platformH, d, 1, style.Stand),
	}

	ox, oz := w*standInset, d*standInset
	for i, off := range [4][2]float64{{-ox, -oz}, {ox, -oz}, {-ox, oz}, {ox, oz}} {
		parts = append(parts, NewCylinder(
			fmt.Sprintf("post_%d", i),
			at(off[0], bottom-platformH-postH/2, off[1]),
			postR, postH, standPostSegments, style.Post,
		))
	}

	parts = append(parts,
		NewBox("counter", at(0, bottom-h*standPostFrac, 0), w*0.85, h*standCounterFrac, d*0.85, 1, style.Stand),
		NewBox("left_panel", at(-w/2+thick/2, bottom-h*standPanelFrac, 0), thick, panelH, d*0.6, 1, style.Stand),
		NewBox("right_panel", at(w/2-thick/2, bottom-h*standPanelFrac, 0), thick, panelH, d*0.6, 1, style.Stand),
		NewBox("back_panel", at(0, bottom-h*standPanelFrac, d/2-thick/2), w*0.8, panelH, thick, 1, style.Stand),
		NewPyramid("roof", at(0, pos.Y-h/2+h*0.13, 0), w*1.2, d*1.2, h*standRoofFrac, style.Roof),
	)

	if name == "" {
		name = style.Name
	}
	return NewComposite(name, pos, math3d.V3(w, h, d), style.Stand, parts...)
}

// Restyle recolors a market stand's parts and regenerates it. Shapes that
// are not stands are left untouched.
func Restyle(s *Shape, style StandStyle) {
	cp, ok := s.Params.(*Composite)
	if !ok {
		return
	}
	for _, c := range cp.Children {
		switch {
		case c.Name == "roof":
			c.Color = style.Roof
		case strings.HasPrefix(c.Name, "post_"):
			c.Color = style.Post
		default:
			c.Color = style.Stand
		}
	}
	s.Color = style.Stand
	s.Generate()
}

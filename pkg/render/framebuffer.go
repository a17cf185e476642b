package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Framebuffer is an in-memory RGBA pixel grid. It implements Surface for
// headless rendering and draw.Image so standard image code can read and
// write it.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // row-major
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y). Out-of-bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or transparent black if out of
// bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.Width, fb.Height) }

func (fb *Framebuffer) At(x, y int) color.Color { return fb.GetPixel(x, y) }

func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (int, int) { return fb.Width, fb.Height }

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws a filled rectangle.
func (fb *Framebuffer) DrawRect(x, y, w, h int, c color.RGBA) {
	x0, y0 := max(0, x), max(0, y)
	x1, y1 := min(fb.Width, x+w), min(fb.Height, y+h)
	for py := y0; py < y1; py++ {
		row := fb.Pixels[py*fb.Width : (py+1)*fb.Width]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// edgeCoeffs returns A, B, C for the edge function A·x + B·y + C of the
// directed edge (x0, y0) → (x1, y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1
	B = x1 - x0
	C = x0*y1 - x1*y0
	return
}

// DrawTriangle fills a triangle with a flat color. Either winding is
// accepted; pixels whose centers lie inside or on an edge are filled.
func (fb *Framebuffer) DrawTriangle(p [3]math3d.Vec2, c color.RGBA) {
	area := math3d.SignedArea2(p[0], p[1], p[2])
	if area == 0 || math.IsNaN(area) {
		return
	}
	if area < 0 {
		p[1], p[2] = p[2], p[1]
	}

	minX := max(0, int(math.Floor(min(p[0].X, p[1].X, p[2].X))))
	maxX := min(fb.Width-1, int(math.Ceil(max(p[0].X, p[1].X, p[2].X))))
	minY := max(0, int(math.Floor(min(p[0].Y, p[1].Y, p[2].Y))))
	maxY := min(fb.Height-1, int(math.Ceil(max(p[0].Y, p[1].Y, p[2].Y))))
	if minX > maxX || minY > maxY {
		return
	}

	A0, B0, C0 := edgeCoeffs(p[1].X, p[1].Y, p[2].X, p[2].Y)
	A1, B1, C1 := edgeCoeffs(p[2].X, p[2].Y, p[0].X, p[0].Y)
	A2, B2, C2 := edgeCoeffs(p[0].X, p[0].Y, p[1].X, p[1].Y)

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := A0*px + B0*py + C0
	w1Row := A1*px + B1*py + C1
	w2Row := A2*px + B2*py + C2

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				row[x] = c
			}
			w0 += A0
			w1 += A1
			w2 += A2
		}
		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}

// textFace is the bitmap font used for framebuffer text.
var textFace = basicfont.Face7x13

// TextScale returns the integer glyph magnification for a style.
func TextScale(style TextStyle) int {
	if style.Size <= 0 {
		return 1
	}
	return max(1, int(math.Round(style.Size/float64(textFace.Height))))
}

// MeasureText returns the pixel size DrawText would cover, padding
// included.
func MeasureText(s string, style TextStyle) (w, h int) {
	scale := TextScale(style)
	w = font.MeasureString(textFace, s).Ceil()*scale + 2*style.Padding
	h = textFace.Height*scale + 2*style.Padding
	return w, h
}

// DrawText renders s with the 7×13 bitmap face, magnified by whole pixels
// to approximate style.Size, with its top-left corner at (x, y).
func (fb *Framebuffer) DrawText(x, y float64, s string, style TextStyle) {
	if s == "" {
		return
	}
	scale := TextScale(style)
	ox, oy := int(math.Round(x)), int(math.Round(y))

	if style.Background != nil {
		w, h := MeasureText(s, style)
		fb.DrawRect(ox, oy, w, h, *style.Background)
	}
	ox += style.Padding
	oy += style.Padding

	gw := font.MeasureString(textFace, s).Ceil()
	glyphs := image.NewAlpha(image.Rect(0, 0, gw, textFace.Height))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.Opaque,
		Face: textFace,
		Dot:  fixed.P(0, textFace.Ascent),
	}
	d.DrawString(s)

	for gy := range textFace.Height {
		for gx := range gw {
			if glyphs.AlphaAt(gx, gy).A < 128 {
				continue
			}
			fb.DrawRect(ox+gx*scale, oy+gy*scale, scale, scale, style.Color)
		}
	}
}

// ToImage copies the framebuffer into a standard image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

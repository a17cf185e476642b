package render

import (
	"image"
	"image/color"
	"unicode/utf8"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// halfBlock draws two vertical pixels per cell: foreground is the top
// pixel, background the bottom one.
const halfBlock = "▀"

// Draw converts the framebuffer to half-block cells and draws them on the
// screen. The framebuffer height should be 2x the terminal height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		for col := area.Min.X; col < area.Max.X && col < fb.Width; col++ {
			scr.SetCell(col, row, fb.cell(col, row))
		}
	}
}

func (fb *Framebuffer) cell(col, row int) *uv.Cell {
	return &uv.Cell{
		Content: halfBlock,
		Width:   1,
		Style: uv.Style{
			Fg: rgbaToColor(fb.GetPixel(col, row*2)),
			Bg: rgbaToColor(fb.GetPixel(col, row*2+1)),
		},
	}
}

// rgbaToColor maps transparent pixels to the terminal default color.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// TerminalRenderer is a Surface backed by a terminal. Triangles are
// rasterized into a framebuffer at two pixels per cell; text is written as
// real terminal cells on top so it stays legible.
type TerminalRenderer struct {
	// Wireframe outlines triangles instead of filling them.
	Wireframe bool

	term       *uv.Terminal
	fb         *Framebuffer
	cols, rows int
	texts      []RecordedText
}

// NewTerminalRenderer creates a renderer for a cols × rows terminal.
func NewTerminalRenderer(term *uv.Terminal, cols, rows int) *TerminalRenderer {
	cols, rows = max(1, cols), max(1, rows)
	return &TerminalRenderer{
		term: term,
		fb:   NewFramebuffer(cols, rows*2),
		cols: cols,
		rows: rows,
	}
}

// FramebufferSize returns the pixel dimensions triangles are drawn at.
func (t *TerminalRenderer) FramebufferSize() (int, int) {
	return t.fb.Width, t.fb.Height
}

// Framebuffer exposes the backing pixels.
func (t *TerminalRenderer) Framebuffer() *Framebuffer {
	return t.fb
}

func (t *TerminalRenderer) Size() (int, int) { return t.fb.Size() }

// Clear resets the pixels to bg and drops queued text.
func (t *TerminalRenderer) Clear(bg color.RGBA) {
	t.fb.Clear(bg)
	t.texts = t.texts[:0]
}

func (t *TerminalRenderer) DrawTriangle(p [3]math3d.Vec2, c color.RGBA) {
	if t.Wireframe {
		t.fb.DrawTriangleOutline(p, c)
		return
	}
	t.fb.DrawTriangle(p, c)
}

// DrawText queues s for the terminal cell at pixel (x, y). Size is ignored:
// a terminal has one glyph size.
func (t *TerminalRenderer) DrawText(x, y float64, s string, style TextStyle) {
	t.texts = append(t.texts, RecordedText{X: x, Y: y, Text: s, Style: style})
}

// MeasureText reports text size in framebuffer pixels: one column and two
// pixel rows per cell, plus one padding cell each side.
func (t *TerminalRenderer) MeasureText(s string, style TextStyle) (w, h int) {
	w = utf8.RuneCountInString(s)
	if style.Padding > 0 {
		w += 2
	}
	return w, 2
}

// Render draws the framebuffer and queued text onto the terminal screen.
func (t *TerminalRenderer) Render() {
	t.fb.Draw(t.term, image.Rect(0, 0, t.cols, t.rows))
	for _, txt := range t.texts {
		t.drawText(txt)
	}
}

func (t *TerminalRenderer) drawText(txt RecordedText) {
	col := int(txt.X)
	row := int(txt.Y) / 2
	if row < 0 || row >= t.rows {
		return
	}
	for _, cell := range textCells(t.fb, col, row, txt.Text, txt.Style) {
		if cell.col >= 0 && cell.col < t.cols {
			t.term.SetCell(cell.col, row, cell.Cell)
		}
	}
}

type placedCell struct {
	col int
	*uv.Cell
}

// textCells lays s out on one row starting at col. Without a background
// each glyph keeps the color of the pixel beneath it.
func textCells(fb *Framebuffer, col, row int, s string, style TextStyle) []placedCell {
	var cells []placedCell
	pad := 0
	if style.Padding > 0 {
		pad = 1
	}
	runes := []rune(s)
	for i := -pad; i < len(runes)+pad; i++ {
		content := " "
		if i >= 0 && i < len(runes) {
			content = string(runes[i])
		}
		c := col + i
		var bg color.Color
		if style.Background != nil {
			bg = *style.Background
		} else {
			bg = rgbaToColor(fb.GetPixel(c, row*2))
		}
		cells = append(cells, placedCell{c, &uv.Cell{
			Content: content,
			Width:   1,
			Style:   uv.Style{Fg: style.Color, Bg: bg},
		}})
	}
	return cells
}

// Flush renders and pushes the frame to the terminal.
func (t *TerminalRenderer) Flush() error {
	t.Render()
	return t.term.Display()
}

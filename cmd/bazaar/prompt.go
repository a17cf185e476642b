package main

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"
	"strings"
	"time"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/render"
	"github.com/taigrr/bazaar/pkg/scene"
)

// Prompt defaults.
const (
	promptDistance = 150.0
	promptHold     = time.Second
	promptKey      = "f"
	promptLift     = 60.0 // pixels above the anchor, at most a tenth of the height
)

var (
	promptPanel    = color.RGBA{0, 0, 0, 204}
	promptText     = color.RGBA{255, 255, 255, 255}
	promptProgress = color.RGBA{0, 255, 0, 255}
	promptTrack    = color.RGBA{80, 80, 80, 255}
)

// Prompt is an interaction that appears when the camera is close to its
// anchor. Holding the key for HoldDuration fires OnActivate once.
type Prompt struct {
	Position     math3d.Vec3
	Text         string
	Key          string
	Distance     float64
	HoldDuration time.Duration
	OnActivate   func()
	Enabled      bool

	visible   bool
	holding   bool
	holdStart time.Time
	progress  float64
	distance  float64
}

// NewPrompt creates an enabled prompt with the default key, range and hold
// time.
func NewPrompt(pos math3d.Vec3, text string, onActivate func()) *Prompt {
	return &Prompt{
		Position:     pos,
		Text:         text,
		Key:          promptKey,
		Distance:     promptDistance,
		HoldDuration: promptHold,
		OnActivate:   onActivate,
		Enabled:      true,
	}
}

// Visible reports whether the camera was in range at the last update.
func (p *Prompt) Visible() bool { return p.visible }

// Holding reports whether the key is being held.
func (p *Prompt) Holding() bool { return p.holding }

// Progress returns the hold progress in [0, 1].
func (p *Prompt) Progress() float64 { return p.progress }

// Label returns the text shown to the player.
func (p *Prompt) Label() string {
	return fmt.Sprintf("Hold %s to %s", strings.ToUpper(p.Key), p.Text)
}

// Update refreshes visibility from the camera position and advances the
// hold. keyDown reports whether the prompt key is currently held.
func (p *Prompt) Update(cam math3d.Vec3, keyDown bool, now time.Time) {
	if !p.Enabled {
		p.visible = false
		p.stop()
		return
	}

	p.distance = cam.Distance(p.Position)
	p.visible = p.distance <= p.Distance
	if !p.visible || !keyDown {
		p.stop()
		return
	}

	if !p.holding {
		p.holding = true
		p.holdStart = now
	}
	p.progress = max(0, min(1, float64(now.Sub(p.holdStart))/float64(p.HoldDuration)))
	if p.progress >= 1 {
		p.stop()
		if p.OnActivate != nil {
			p.OnActivate()
		}
	}
}

func (p *Prompt) stop() {
	p.holding = false
	p.progress = 0
}

// fade dims prompts in the outer fifth of their range.
func (p *Prompt) fade() float64 {
	edge := p.Distance * 0.8
	if p.distance <= edge {
		return 1
	}
	return max(0, 1-(p.distance-edge)/(p.Distance-edge))
}

// Draw renders the prompt above its anchor with a progress bar while held.
func (p *Prompt) Draw(dst render.Surface, cam *scene.Camera) bool {
	if !p.visible {
		return false
	}
	w, h := dst.Size()
	at, _, ok := cam.WorldToScreen(p.Position, w, h)
	if !ok {
		return false
	}

	panel := promptPanel
	panel.A = uint8(float64(panel.A) * p.fade())
	style := render.TextStyle{Color: promptText, Background: &panel, Padding: 2}
	text := p.Label()
	tw, th := render.MeasureText(text, style)
	if m, ok := dst.(render.TextMeasurer); ok {
		tw, th = m.MeasureText(text, style)
	}
	x := at.X - float64(tw)/2
	y := at.Y - min(promptLift, float64(h)/10) - float64(th)
	dst.DrawText(x, y, text, style)

	if p.holding {
		bar := y + float64(th)
		fillRect(dst, x, bar, float64(tw), 2, promptTrack)
		fillRect(dst, x, bar, float64(tw)*p.progress, 2, promptProgress)
	}
	return true
}

func fillRect(dst render.Surface, x, y, w, h float64, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	a := math3d.V2(x, y)
	b := math3d.V2(x+w, y)
	cc := math3d.V2(x+w, y+h)
	d := math3d.V2(x, y+h)
	dst.DrawTriangle([3]math3d.Vec2{a, b, cc}, c)
	dst.DrawTriangle([3]math3d.Vec2{a, cc, d}, c)
}

// Prompts tracks every prompt.
type Prompts struct {
	list []*Prompt
}

// Add registers p.
func (ps *Prompts) Add(p *Prompt) {
	ps.list = append(ps.list, p)
}

// All returns the registered prompts.
func (ps *Prompts) All() []*Prompt {
	return ps.list
}

// Update advances every prompt.
func (ps *Prompts) Update(cam math3d.Vec3, keys *Keys, now time.Time) {
	for _, p := range ps.list {
		p.Update(cam, keys.Down(p.Key, now), now)
	}
}

// Draw renders visible prompts, nearest last so it ends up on top. It
// returns the number drawn.
func (ps *Prompts) Draw(dst render.Surface, cam *scene.Camera) int {
	visible := make([]*Prompt, 0, len(ps.list))
	for _, p := range ps.list {
		if p.visible {
			visible = append(visible, p)
		}
	}
	slices.SortFunc(visible, func(a, b *Prompt) int {
		return cmp.Compare(b.distance, a.distance)
	})
	drawn := 0
	for _, p := range visible {
		if p.Draw(dst, cam) {
			drawn++
		}
	}
	return drawn
}

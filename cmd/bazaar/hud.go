package main

import (
	"fmt"
	"time"

	"github.com/taigrr/bazaar/pkg/render"
	"github.com/taigrr/bazaar/pkg/scene"
)

var hudPanel = render.ColorPanel

// HUD draws the status overlay with a frame rate counter.
type HUD struct {
	Visible bool

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a visible HUD.
func NewHUD(now time.Time) *HUD {
	return &HUD{Visible: true, fpsTime: now}
}

// UpdateFPS counts a frame. Call it once per frame.
func (h *HUD) UpdateFPS(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 { return h.fps }

// Lines returns the overlay text for a frame.
func (h *HUD) Lines(sc *scene.Scene, stats render.FrameStats, wireframe bool) []string {
	lines := render.UILines(sc, stats)
	mode := "filled"
	if wireframe {
		mode = "wireframe"
	}
	return append(lines,
		fmt.Sprintf("%.0f FPS  %s", h.fps, mode),
		"X wireframe, ? hide HUD, R reset, Esc quit",
	)
}

// Draw renders the overlay in the top left corner.
func (h *HUD) Draw(dst render.Surface, sc *scene.Scene, stats render.FrameStats, wireframe bool) {
	if !h.Visible {
		return
	}
	render.DrawUI(dst, 2, 2, h.Lines(sc, stats, wireframe), render.TextStyle{
		Color:      render.ColorText,
		Background: &hudPanel,
	})
}

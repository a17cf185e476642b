package main

import (
	"math"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/bazaar/internal/config"
	"github.com/taigrr/bazaar/internal/logger"
	"github.com/taigrr/bazaar/pkg/render"
	"go.uber.org/zap"
)

// Zoom limits for the mouse wheel.
const (
	zoomStep = 1.1
	minZoom  = 0.25
	maxZoom  = 4.0
)

// App is the interactive demo state. Events and frames are both handled
// on the main loop goroutine.
type App struct {
	Market    *Market
	Renderer  *render.Renderer
	Keys      *Keys
	Look      *Look
	Mover     *Mover
	HUD       *HUD
	Wireframe bool
	Zoom      float64

	cfg      *config.Config
	dragging bool
	lastX    int
	lastY    int
	quit     bool
	stats    render.FrameStats
}

// NewApp wires the controls to a market.
func NewApp(cfg *config.Config, m *Market, now time.Time) *App {
	cam := m.Scene.Camera
	return &App{
		Market: m,
		Renderer: render.NewRenderer(
			render.WithSettings(cfg.RenderSettings()),
			render.WithLogger(logger.Named("render")),
		),
		Keys:  NewKeys(),
		Look:  NewLook(cfg.Display.FPS, cam, cfg.Camera.Sensitivity),
		Mover: NewMover(cfg.Display.FPS, cfg.Camera.Speed),
		HUD:   NewHUD(now),
		Zoom:  1,
		cfg:   cfg,
	}
}

// Quit reports whether the user asked to leave.
func (a *App) Quit() bool { return a.quit }

// HandleEvent applies one input event. Resizes are handled by the caller.
func (a *App) HandleEvent(ev any, now time.Time) {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		if key, ok := heldKey(ev.MatchString); ok {
			a.Keys.Press(key, now)
			return
		}
		a.handleKey(ev)

	case uv.KeyReleaseEvent:
		if key, ok := heldKey(ev.MatchString); ok {
			a.Keys.Release(key)
		}

	case uv.MouseClickEvent:
		a.dragging = true
		a.lastX, a.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		a.dragging = false

	case uv.MouseMotionEvent:
		if a.dragging {
			a.Look.Drag(ev.X-a.lastX, ev.Y-a.lastY)
			a.lastX, a.lastY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			a.Zoom = math.Min(maxZoom, a.Zoom*zoomStep)
		case uv.MouseWheelDown:
			a.Zoom = math.Max(minZoom, a.Zoom/zoomStep)
		}
	}
}

func (a *App) handleKey(ev uv.KeyPressEvent) {
	sc := a.Market.Scene
	switch {
	case ev.MatchString("esc", "escape", "ctrl+c"):
		a.quit = true
	case ev.MatchString("1", "2", "3", "4"):
		for i, name := range []string{"1", "2", "3", "4"} {
			if ev.MatchString(name) && i < len(sc.Lights) {
				sc.Lights[i].Toggle()
				logger.Debug("light toggled",
					zap.Int("light", i+1),
					zap.Bool("enabled", sc.Lights[i].Enabled),
				)
			}
		}
	case ev.MatchString("l"):
		if sc.Animator != nil {
			sc.Animator.Paused = !sc.Animator.Paused
		}
	case ev.MatchString("x"):
		a.Wireframe = !a.Wireframe
	case ev.MatchString("?", "shift+/"):
		a.HUD.Visible = !a.HUD.Visible
	case ev.MatchString("r"):
		a.Reset()
	}
}

// Reset returns the camera to its configured start.
func (a *App) Reset() {
	start := a.cfg.NewCamera()
	cam := a.Market.Scene.Camera
	cam.Position = start.Position
	cam.SetRotation(start.Yaw, start.Pitch)
	a.Look.Reset(start.Yaw, start.Pitch)
	a.Mover.Stop()
	a.Keys.Reset()
	a.Zoom = 1
}

// Step advances input, physics, prompts and animation by one frame.
func (a *App) Step(now time.Time) {
	sc := a.Market.Scene
	cam := sc.Camera
	a.Look.Update(cam)
	a.Mover.Step(cam, a.Mover.Intent(cam, a.Keys, now), a.Market.World())
	a.Market.Prompts.Update(cam.Position, a.Keys, now)
	sc.Update()
	a.HUD.UpdateFPS(now)
}

// Draw renders the scene and every overlay onto dst. fovScale adapts the
// configured focal length to the surface resolution.
func (a *App) Draw(dst render.Surface, fovScale float64) render.FrameStats {
	sc := a.Market.Scene
	cam := sc.Camera
	cam.SetFOV(a.cfg.Camera.FOV * fovScale * a.Zoom)

	a.stats = a.Renderer.Render(sc, dst)
	render.DrawLightMarkers(dst, cam, sc.Lights)
	render.DrawLabels(dst, cam, a.Market.Labels)
	a.Market.Prompts.Draw(dst, cam)
	a.HUD.Draw(dst, sc, a.stats, a.Wireframe)
	return a.stats
}

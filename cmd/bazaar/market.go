package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/bazaar/internal/config"
	"github.com/taigrr/bazaar/internal/logger"
	"github.com/taigrr/bazaar/pkg/collide"
	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/render"
	"github.com/taigrr/bazaar/pkg/scene"
	"github.com/taigrr/bazaar/pkg/shapes"
	"go.uber.org/zap"
)

// Market layout.
const (
	standWidth  = 200.0
	standHeight = 150.0
	standDepth  = 100.0
	standRowZ   = 1100.0
	standGap    = 400.0
	labelRange  = 2000.0
	modelSize   = 200.0
)

var labelBackground = color.RGBA{0, 0, 0, 180}

// Stand is a market stall the player can restyle.
type Stand struct {
	Shape *shapes.Shape
	Style int // index into shapes.StandStyles
}

// Cycle switches the stand to the next style.
func (s *Stand) Cycle() {
	s.Style = (s.Style + 1) % len(shapes.StandStyles)
	shapes.Restyle(s.Shape, shapes.StandStyles[s.Style])
	logger.Debug("stand restyled",
		zap.String("stand", s.Shape.Name),
		zap.String("style", shapes.StandStyles[s.Style].Name),
	)
}

// Market is the demo world.
type Market struct {
	Scene   *scene.Scene
	Labels  []render.Label
	Stands  []*Stand
	Prompts *Prompts
}

// World returns the shapes the camera collides with.
func (m *Market) World() collide.World {
	return collide.World(m.Scene.Registered())
}

// NewMarket builds the market: a cube and a sphere on display, a row of
// stands on the floor, four lights and optionally an imported model. A
// model that fails to load is logged and left out.
func NewMarket(cfg *config.Config, modelPath string) *Market {
	sc := cfg.NewScene()
	m := &Market{Scene: sc, Prompts: &Prompts{}}

	cube := shapes.NewBox("back cube", math3d.V3(200, 100, 300), 200, 200, 200, 4, color.RGBA{255, 100, 100, 255})
	sphere := shapes.NewSphere("front sphere", math3d.V3(0, 0, 500), 150, 15, color.RGBA{100, 100, 255, 255})
	sc.Add(cube)
	sc.Add(sphere)

	m.Labels = append(m.Labels,
		label("Back Cube", cube.Position.Add(math3d.V3(0, -120, 0)), color.RGBA{255, 102, 102, 255}),
		label("Front Sphere", sphere.Position.Add(math3d.V3(0, -180, 0)), color.RGBA{102, 102, 255, 255}),
	)

	floorY := cfg.Floor.Y
	for i := range len(shapes.StandStyles) {
		x := (float64(i) - float64(len(shapes.StandStyles)-1)/2) * standGap
		pos := math3d.V3(x, floorY-standHeight/2, standRowZ)
		st := &Stand{
			Shape: shapes.NewMarketStand(fmt.Sprintf("stand_%d", i), pos, standWidth, standHeight, standDepth, shapes.StandStyles[i]),
			Style: i,
		}
		sc.Add(st.Shape)
		m.Stands = append(m.Stands, st)
		m.Prompts.Add(NewPrompt(pos, "restyle the stand", st.Cycle))
	}

	if modelPath != "" {
		pos := math3d.V3(0, floorY-modelSize/2, standRowZ+500)
		model, err := shapes.NewModel("model", modelPath, pos, modelSize, math.Pi, color.RGBA{200, 200, 200, 255})
		if err != nil {
			logger.Warn("model not loaded",
				zap.String("path", modelPath),
				zap.Error(err),
			)
		} else {
			sc.Add(model)
			logger.Info("model loaded",
				zap.String("path", modelPath),
				zap.Int("triangles", model.TriangleCount()),
			)
		}
	}

	orbit := scene.NewPointLight(math3d.V3(200, -200, 100), color.RGBA{255, 255, 255, 255}, 0.8, 60)
	accent := scene.NewPointLight(math3d.V3(-300, -100, 200), color.RGBA{255, 100, 100, 255}, 0.6, 40)
	sun := scene.NewDirectionalLight(math3d.V3(1, 1, -0.5), color.RGBA{150, 200, 255, 255}, 0.4)
	spot := scene.NewSpotLight(math3d.V3(0, -400, 300), math3d.V3(0, 1, -0.3), color.RGBA{100, 255, 100, 255}, 0.7, 30, math.Pi/4, 2)
	for _, l := range []*scene.Light{orbit, accent, sun, spot} {
		sc.AddLight(l)
	}
	sc.Animator = scene.NewLightAnimator(orbit, sun, spot)

	return m
}

func label(text string, pos math3d.Vec3, c color.RGBA) render.Label {
	return render.Label{
		Text:        text,
		Position:    pos,
		MaxDistance: labelRange,
		Style: render.TextStyle{
			Size:       20,
			Color:      c,
			Background: &labelBackground,
			Padding:    4,
		},
	}
}

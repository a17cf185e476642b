package config

import (
	"image/color"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/render"
	"github.com/taigrr/bazaar/pkg/scene"
)

// RenderSettings converts the render section.
func (c *Config) RenderSettings() render.Settings {
	s := render.DefaultSettings()
	r := c.Render
	s.Margin = r.Margin
	s.FarCutoff = r.FarCutoff
	s.MaxTriangles = r.MaxTriangles
	s.Ambient = r.Ambient
	s.AttenuationLinear = r.AttenuationLinear
	s.AttenuationQuadratic = r.AttenuationQuadratic
	s.ShadowSamples = render.ShadowSamples(r.ShadowSamples)
	s.ShadowBias = r.ShadowBias
	s.TileLighting, _ = parseTileLighting(r.TileLighting)
	s.TileFlatFactor = r.TileFlatFactor
	return s
}

// BackgroundColor returns the parsed display background, or black if it
// does not parse.
func (c *Config) BackgroundColor() color.RGBA {
	bg, err := ParseColor(c.Display.Background)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return bg
}

// NewCamera builds the starting camera.
func (c *Config) NewCamera() *scene.Camera {
	cam := scene.NewCamera(math3d.V3(c.Camera.X, c.Camera.Y, c.Camera.Z))
	cam.SetFOV(c.Camera.FOV)
	cam.SetRotation(c.Camera.Yaw, c.Camera.Pitch)
	return cam
}

// NewFloor builds the tiled floor, or nil when it is disabled.
func (c *Config) NewFloor() *scene.TiledFloor {
	if !c.Floor.Enabled {
		return nil
	}
	f := scene.NewTiledFloor(c.Floor.TileSize, c.Floor.RenderDistance)
	f.Subdivisions = c.Floor.Subdivisions
	f.Y = c.Floor.Y
	if col, err := ParseColor(c.Floor.Color); err == nil {
		f.Color = col
	}
	return f
}

// NewScene builds an empty scene with the configured camera and floor.
func (c *Config) NewScene() *scene.Scene {
	sc := scene.New(c.NewCamera())
	sc.Floor = c.NewFloor()
	sc.RefreshFrames = c.Floor.RefreshFrames
	sc.MoveThreshold = c.Floor.MoveThreshold
	return sc
}

package config

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/taigrr/bazaar/pkg/render"
	"github.com/taigrr/bazaar/pkg/scene"
	"github.com/taigrr/bazaar/pkg/shapes"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate clamps numeric settings into range and rejects values that
// cannot be interpreted. Errors name the offending key.
func (c *Config) Validate() error {
	d := &c.Display
	d.Width = max(16, d.Width)
	d.Height = max(16, d.Height)
	d.FPS = max(1, min(240, d.FPS))
	if _, err := ParseColor(d.Background); err != nil {
		return fmt.Errorf("display.background: %w", err)
	}

	cam := &c.Camera
	cam.FOV = max(scene.MinFOV, cam.FOV)
	cam.Pitch = max(-scene.MaxPitch, min(scene.MaxPitch, cam.Pitch))
	if cam.Sensitivity <= 0 {
		cam.Sensitivity = Default().Camera.Sensitivity
	}
	if cam.Speed <= 0 {
		cam.Speed = Default().Camera.Speed
	}

	r := &c.Render
	r.Margin = max(0, r.Margin)
	r.FarCutoff = max(0, r.FarCutoff)
	r.MaxTriangles = max(0, r.MaxTriangles)
	r.Ambient = clamp01(r.Ambient)
	r.AttenuationLinear = max(0, r.AttenuationLinear)
	r.AttenuationQuadratic = max(0, r.AttenuationQuadratic)
	r.ShadowSamples = render.ShadowSamples(r.ShadowSamples)
	r.ShadowBias = max(0, r.ShadowBias)
	r.TileFlatFactor = clamp01(r.TileFlatFactor)
	r.TileLighting = strings.ToLower(strings.TrimSpace(r.TileLighting))
	if _, err := parseTileLighting(r.TileLighting); err != nil {
		return fmt.Errorf("render.tile_lighting: %w", err)
	}

	f := &c.Floor
	if f.TileSize <= 0 {
		f.TileSize = scene.DefaultTileSize
	}
	f.Subdivisions = max(shapes.MinSubdivisions, min(shapes.MaxPlaneSubdivisions, f.Subdivisions))
	f.RenderDistance = max(0, f.RenderDistance)
	f.RefreshFrames = max(1, f.RefreshFrames)
	f.MoveThreshold = max(0, f.MoveThreshold)
	if _, err := ParseColor(f.Color); err != nil {
		return fmt.Errorf("floor.color: %w", err)
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

// ParseColor accepts #rrggbb, rrggbb or an SVG color name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

func parseTileLighting(s string) (render.TileLighting, error) {
	switch s {
	case "", "flat":
		return render.TileFlat, nil
	case "single":
		return render.TileSingleLight, nil
	}
	return render.TileFlat, fmt.Errorf("unknown mode %q (want flat or single)", s)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(1, v))
}

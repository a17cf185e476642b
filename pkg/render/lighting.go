package render

import (
	"image/color"
	"math"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/scene"
)

// minAttenuation keeps distant lights from vanishing entirely.
const minAttenuation = 0.01

// Attenuation returns 1 / (1 + k1·d + k2·d²), floored at 0.01.
func Attenuation(d, k1, k2 float64) float64 {
	return max(minAttenuation, 1/(1+k1*d+k2*d*d))
}

// LightFactor returns the unshadowed strength of l at point p with unit
// normal n: diffuse × attenuation × spot cone, before intensity and color.
func LightFactor(l *scene.Light, p, n math3d.Vec3, k1, k2 float64) float64 {
	if l.Kind == scene.DirectionalLight {
		return max(0, n.Dot(l.Direction.Negate()))
	}

	toLight := l.Position.Sub(p)
	dist := toLight.Len()
	if dist == 0 {
		return 0
	}
	dir := toLight.Scale(1 / dist)
	diffuse := max(0, n.Dot(dir))
	if diffuse == 0 {
		return 0
	}
	f := diffuse * Attenuation(dist, k1, k2)

	if l.Kind == scene.SpotLight {
		// Angle between the spot's aim and the ray from the light to p.
		cosA := max(-1, min(1, dir.Negate().Dot(l.Direction)))
		if math.Acos(cosA) > l.SpotAngle {
			return 0
		}
		f *= math.Pow(max(0, cosA), l.SpotFalloff)
	}
	return f
}

// ShadowFunc reports how much of light i is blocked, in [0, 1].
type ShadowFunc func(i int, l *scene.Light) float64

// Shade lights a flat-shaded surface: ambient plus, for each enabled light,
// base × factor × intensity × lightColor/255 × (1 − shadow). Channels are
// clamped to [0, 255] and floored. shadow may be nil.
func Shade(p, n math3d.Vec3, base color.RGBA, lights []*scene.Light, s Settings, shadow ShadowFunc) color.RGBA {
	br, bg, bb := float64(base.R), float64(base.G), float64(base.B)
	r, g, b := br*s.Ambient, bg*s.Ambient, bb*s.Ambient

	for i, l := range lights {
		if l == nil || !l.Enabled || l.Intensity <= 0 {
			continue
		}
		f := LightFactor(l, p, n, s.AttenuationLinear, s.AttenuationQuadratic)
		if f <= 0 {
			continue
		}
		f *= l.Intensity
		if shadow != nil {
			f *= 1 - shadow(i, l)
			if f <= 0 {
				continue
			}
		}
		r += br * f * float64(l.Color.R) / 255
		g += bg * f * float64(l.Color.G) / 255
		b += bb * f * float64(l.Color.B) / 255
	}

	return color.RGBA{channel(r), channel(g), channel(b), 255}
}

// ShadeTile is the cheap floor path: a darkened flat color, or the first
// enabled light without shadows.
func ShadeTile(p, n math3d.Vec3, base color.RGBA, lights []*scene.Light, s Settings) color.RGBA {
	if s.TileLighting == TileSingleLight {
		for _, l := range lights {
			if l != nil && l.Enabled {
				return Shade(p, n, base, []*scene.Light{l}, s, nil)
			}
		}
	}
	f := s.TileFlatFactor
	return color.RGBA{
		channel(float64(base.R) * f),
		channel(float64(base.G) * f),
		channel(float64(base.B) * f),
		255,
	}
}

func channel(v float64) uint8 {
	return uint8(max(0, min(255, math.Floor(v))))
}

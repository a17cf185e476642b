package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// LightKind selects how a light illuminates surfaces.
type LightKind int

const (
	PointLight LightKind = iota
	DirectionalLight
	SpotLight
)

func (k LightKind) String() string {
	switch k {
	case PointLight:
		return "point"
	case DirectionalLight:
		return "directional"
	case SpotLight:
		return "spot"
	}
	return fmt.Sprintf("LightKind(%d)", int(k))
}

// Light is a point, directional or spot light. Position is ignored by
// directional lights; Direction is ignored by point lights. Radius is only
// used to jitter soft shadow samples.
type Light struct {
	Kind      LightKind
	Position  math3d.Vec3
	Color     color.RGBA
	Intensity float64
	Enabled   bool
	Radius    float64

	Direction   math3d.Vec3 // normalized
	SpotAngle   float64     // half-cone angle in radians, [0, π]
	SpotFalloff float64     // cone edge exponent, ≥ 0
}

// NewPointLight creates an enabled point light.
func NewPointLight(pos math3d.Vec3, c color.RGBA, intensity, radius float64) *Light {
	return &Light{
		Kind:      PointLight,
		Position:  pos,
		Color:     c,
		Intensity: max(0, intensity),
		Radius:    max(0, radius),
		Enabled:   true,
	}
}

// NewDirectionalLight creates an enabled light shining along dir.
func NewDirectionalLight(dir math3d.Vec3, c color.RGBA, intensity float64) *Light {
	l := &Light{
		Kind:      DirectionalLight,
		Color:     c,
		Intensity: max(0, intensity),
		Enabled:   true,
	}
	l.SetDirection(dir)
	return l
}

// NewSpotLight creates an enabled spot light at pos aimed along dir.
func NewSpotLight(pos, dir math3d.Vec3, c color.RGBA, intensity, radius, angle, falloff float64) *Light {
	l := NewPointLight(pos, c, intensity, radius)
	l.Kind = SpotLight
	l.SetDirection(dir)
	l.SetSpotlight(angle, falloff)
	return l
}

// Toggle flips Enabled.
func (l *Light) Toggle() {
	l.Enabled = !l.Enabled
}

// SetDirection stores dir normalized. A zero vector points the light
// straight down.
func (l *Light) SetDirection(dir math3d.Vec3) {
	dir = dir.Normalize()
	if dir.IsZero() {
		dir = math3d.Down()
	}
	l.Direction = dir
}

// SetSpotlight sets the cone half-angle and edge falloff.
func (l *Light) SetSpotlight(angle, falloff float64) {
	l.SpotAngle = max(0, min(math.Pi, angle))
	l.SpotFalloff = max(0, falloff)
}

// SetIntensity sets a non-negative intensity.
func (l *Light) SetIntensity(v float64) {
	l.Intensity = max(0, v)
}

// Positional reports whether the light has a position (point and spot).
func (l *Light) Positional() bool {
	return l.Kind != DirectionalLight
}

// Animation constants for the market lights.
const (
	animStep      = 0.02
	orbitRadius   = 300.0
	spotBase      = 0.5
	spotSwing     = 0.3
	intensityFreq = 4.0 // angular frequency of the intensity spring
	intensityDamp = 1.0 // critically damped
	animationFPS  = 60
)

// LightAnimator moves the demo lights each frame: Orbit circles the
// market, Sun slowly turns and Spot pulses. Any of them may be nil.
type LightAnimator struct {
	Orbit *Light
	Sun   *Light
	Spot  *Light

	Time   float64
	Paused bool

	spring harmonica.Spring
	spotV  float64
}

// NewLightAnimator creates an animator for the given lights.
func NewLightAnimator(orbit, sun, spot *Light) *LightAnimator {
	return &LightAnimator{
		Orbit:  orbit,
		Sun:    sun,
		Spot:   spot,
		spring: harmonica.NewSpring(harmonica.FPS(animationFPS), intensityFreq, intensityDamp),
	}
}

// Advance steps the animation by one frame. The spot intensity eases
// toward its pulse target through a spring so toggling pause never snaps.
func (a *LightAnimator) Advance() {
	if a.Paused {
		return
	}
	a.Time += animStep
	t := a.Time

	if a.Orbit != nil {
		a.Orbit.Position = math3d.V3(
			math.Cos(t)*orbitRadius,
			math.Sin(t*1.2)*150-200,
			math.Sin(t*0.8)*200+150,
		)
	}
	if a.Sun != nil {
		a.Sun.SetDirection(math3d.V3(math.Cos(t*0.3), 1, math.Sin(t*0.3)*0.5))
	}
	if a.Spot != nil {
		target := spotBase + math.Sin(t*2)*spotSwing
		v, vel := a.spring.Update(a.Spot.Intensity, a.spotV, target)
		a.spotV = vel
		a.Spot.SetIntensity(v)
	}
}

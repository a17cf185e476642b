package render

import (
	"math"
	"math/rand"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/scene"
	"github.com/taigrr/bazaar/pkg/shapes"
)

const (
	rayEpsilon      = 1e-6
	maxShadowSample = 8
)

// IntersectTriangle returns the ray parameter t at which origin + t·dir
// crosses triangle (v0, v1, v2), using Möller–Trumbore. Hits at t ≤ ε are
// rejected so a ray never reports its own starting surface.
func IntersectTriangle(origin, dir, v0, v1, v2 math3d.Vec3) (float64, bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if a > -rayEpsilon && a < rayEpsilon {
		return 0, false
	}
	f := 1 / a
	s := origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := f * edge2.Dot(q)
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// ShadowStats counts shadow work done during a frame.
type ShadowStats struct {
	Rays  int // rays cast
	Tests int // ray-triangle tests
	Hits  int // rays that found an occluder
}

// Occluders answers shadow queries against a frame's shapes. Shapes are
// referred to by index so the surface being shaded can exclude itself.
// Floor tiles never occlude.
type Occluders struct {
	Shapes []*shapes.Shape
	Bias   float64 // offset along the normal and from the light
	Stats  ShadowStats
}

// Enabled reports whether shadows can occur at all. A scene with fewer
// than two shapes cannot shadow itself meaningfully.
func (o *Occluders) Enabled() bool {
	return len(o.Shapes) >= 2
}

// Blocked reports whether the ray origin + t·dir hits any shape other than
// exclude for some t < maxT. dir must be normalized.
func (o *Occluders) Blocked(origin, dir math3d.Vec3, maxT float64, exclude int) bool {
	o.Stats.Rays++
	for i, sh := range o.Shapes {
		if i == exclude || sh.Tile {
			continue
		}
		if !sh.Bounds().RayIntersect(origin, dir, maxT) {
			continue
		}
		for ti := range sh.Triangles {
			a, b, c := sh.Triangle(ti)
			o.Stats.Tests++
			if t, ok := IntersectTriangle(origin, dir, a, b, c); ok && t < maxT {
				o.Stats.Hits++
				return true
			}
		}
	}
	return false
}

// InShadow casts one ray from p (lifted off the surface along n) toward
// lightPos.
func (o *Occluders) InShadow(p, n, lightPos math3d.Vec3, exclude int) bool {
	if !o.Enabled() {
		return false
	}
	origin := p.Add(n.Scale(o.Bias))
	toLight := lightPos.Sub(origin)
	dist := toLight.Len()
	if dist <= o.Bias {
		return false
	}
	return o.Blocked(origin, toLight.Scale(1/dist), dist-o.Bias, exclude)
}

// DirectionalShadow casts one unbounded ray against the light direction.
func (o *Occluders) DirectionalShadow(p, n, lightDir math3d.Vec3, exclude int) bool {
	if !o.Enabled() {
		return false
	}
	dir := lightDir.Negate().Normalize()
	if dir.IsZero() {
		return false
	}
	return o.Blocked(p.Add(n.Scale(o.Bias)), dir, math.Inf(1), exclude)
}

// SoftShadow returns the fraction of samples for which the light, jittered
// within its radius on each axis, is hidden from p. samples is capped at 8.
func (o *Occluders) SoftShadow(p, n math3d.Vec3, l *scene.Light, samples int, rng *rand.Rand, exclude int) float64 {
	samples = min(samples, maxShadowSample)
	if samples <= 0 || !o.Enabled() {
		return 0
	}
	if samples == 1 || l.Radius <= 0 || rng == nil {
		if o.InShadow(p, n, l.Position, exclude) {
			return 1
		}
		return 0
	}

	hidden := 0
	for range samples {
		jitter := math3d.V3(
			(rng.Float64()*2-1)*l.Radius,
			(rng.Float64()*2-1)*l.Radius,
			(rng.Float64()*2-1)*l.Radius,
		)
		if o.InShadow(p, n, l.Position.Add(jitter), exclude) {
			hidden++
		}
	}
	return float64(hidden) / float64(samples)
}

// Shadow returns how much of light l is blocked at p, in [0, 1].
func (o *Occluders) Shadow(p, n math3d.Vec3, l *scene.Light, samples int, rng *rand.Rand, exclude int) float64 {
	if samples <= 0 {
		return 0
	}
	if l.Kind == scene.DirectionalLight {
		if o.DirectionalShadow(p, n, l.Direction, exclude) {
			return 1
		}
		return 0
	}
	return o.SoftShadow(p, n, l, samples, rng, exclude)
}

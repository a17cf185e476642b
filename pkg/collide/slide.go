package collide

import (
	"math"

	"github.com/taigrr/bazaar/pkg/math3d"
)

const (
	// Bounce scales the velocity of an axis that was stopped by a shape.
	Bounce = -0.1
	// restSpeed is the speed below which an axis comes to rest.
	restSpeed = 0.01
)

// Slide moves p by v one axis at a time so the body slides along walls
// instead of sticking. An axis whose step would collide keeps its old
// coordinate and its velocity is reversed and damped. It returns the new
// position and velocity.
func (w World) Slide(p, v math3d.Vec3, r float64) (math3d.Vec3, math3d.Vec3) {
	step := func(pos, vel *float64) {
		old := *pos
		*pos += *vel
		if w.Blocked(p, r) {
			*pos = old
			*vel *= Bounce
		}
		if math.Abs(*vel) < restSpeed {
			*vel = 0
		}
	}
	step(&p.X, &v.X)
	step(&p.Y, &v.Y)
	step(&p.Z, &v.Z)
	return p, v
}

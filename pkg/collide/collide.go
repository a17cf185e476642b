// Package collide answers overlap queries between a moving body and the
// bounds of scene shapes. Spheres and cones get exact volume tests; every
// other kind is treated as its axis-aligned half extents.
package collide

import (
	"math"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/shapes"
)

// PlayerRadius is the collision radius around the camera.
const PlayerRadius = 70.0

// Cone is an upright cone with its apex at -Y (up) and its base at +Y.
type Cone struct {
	Center math3d.Vec3
	Radius float64
	Height float64
}

func (c Cone) apexY() float64 { return c.Center.Y - c.Height/2 }
func (c Cone) baseY() float64 { return c.Center.Y + c.Height/2 }

// RadiusAt returns the cone's horizontal radius at height y, growing
// linearly from 0 at the apex to Radius at the base.
func (c Cone) RadiusAt(y float64) float64 {
	if c.Height <= 0 {
		return 0
	}
	t := (y - c.apexY()) / c.Height
	return c.Radius * max(0, min(1, t))
}

// ConeOf reports the cone described by sh, if it is one.
func ConeOf(sh *shapes.Shape) (Cone, bool) {
	switch p := sh.Params.(type) {
	case shapes.Cylinder:
		if p.IsCone() {
			return Cone{Center: sh.Position, Radius: p.BottomRadius, Height: p.Height}, true
		}
	case shapes.Pyramid:
		if p.Cone {
			return Cone{Center: sh.Position, Radius: p.Radius, Height: p.Height}, true
		}
	}
	return Cone{}, false
}

// Box returns the shape's collision box: its position ± its half extents.
func Box(sh *shapes.Shape) math3d.AABB {
	return math3d.AABBFromCenter(sh.Position, sh.Extents())
}

// PointSphere reports whether a body of radius r at p touches a sphere.
func PointSphere(p math3d.Vec3, r float64, center math3d.Vec3, radius float64) bool {
	return p.Distance(center) <= radius+r
}

// PointAABB reports whether a body of radius r at p is inside box grown by
// r on every side.
func PointAABB(p math3d.Vec3, r float64, box math3d.AABB) bool {
	return box.Expand(r).ContainsPoint(p)
}

// PointCone reports whether a body of radius r at p touches cone c.
func PointCone(p math3d.Vec3, r float64, c Cone) bool {
	if p.Y > c.baseY()+r || p.Y < c.apexY()-r {
		return false
	}
	dx, dz := p.X-c.Center.X, p.Z-c.Center.Z
	return math.Hypot(dx, dz) <= c.RadiusAt(p.Y)+r
}

// SphereAABB reports whether a sphere overlaps box.
func SphereAABB(center math3d.Vec3, radius float64, box math3d.AABB) bool {
	return box.ClosestPoint(center).Sub(center).LenSq() <= radius*radius
}

// ConeAABB samples the cone's cross-section at the bottom, top and middle
// of box and reports whether any circle meets the box's XZ footprint.
func ConeAABB(c Cone, box math3d.AABB) bool {
	if box.Max.Y < c.apexY() || box.Min.Y > c.baseY() {
		return false
	}
	for _, y := range [...]float64{box.Min.Y, box.Max.Y, (box.Min.Y + box.Max.Y) / 2} {
		if y < c.apexY() || y > c.baseY() {
			continue
		}
		if circleAABB2D(c.Center.X, c.Center.Z, c.RadiusAt(y), box) {
			return true
		}
	}
	return false
}

func circleAABB2D(x, z, r float64, box math3d.AABB) bool {
	cx := max(box.Min.X, min(x, box.Max.X))
	cz := max(box.Min.Z, min(z, box.Max.Z))
	dx, dz := x-cx, z-cz
	return dx*dx+dz*dz <= r*r
}

// Hit reports whether a body of radius r at p touches sh.
func Hit(p math3d.Vec3, r float64, sh *shapes.Shape) bool {
	if sp, ok := sh.Params.(shapes.Sphere); ok {
		return PointSphere(p, r, sh.Position, sp.Radius)
	}
	if c, ok := ConeOf(sh); ok {
		return PointCone(p, r, c)
	}
	return PointAABB(p, r, Box(sh))
}

// HitBox reports whether box touches sh.
func HitBox(box math3d.AABB, sh *shapes.Shape) bool {
	if sp, ok := sh.Params.(shapes.Sphere); ok {
		return SphereAABB(sh.Position, sp.Radius, box)
	}
	if c, ok := ConeOf(sh); ok {
		return ConeAABB(c, box)
	}
	return box.Intersects(Box(sh))
}

// World is the set of shapes a body collides with. Floor tiles are
// ignored.
type World []*shapes.Shape

// Blocked reports whether a body of radius r at p touches any shape.
func (w World) Blocked(p math3d.Vec3, r float64) bool {
	for _, sh := range w {
		if sh.Tile {
			continue
		}
		if Hit(p, r, sh) {
			return true
		}
	}
	return false
}

// BlockedBox reports whether box touches any shape.
func (w World) BlockedBox(box math3d.AABB) bool {
	for _, sh := range w {
		if sh.Tile {
			continue
		}
		if HitBox(box, sh) {
			return true
		}
	}
	return false
}

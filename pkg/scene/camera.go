package scene

import (
	"math"

	"github.com/taigrr/bazaar/pkg/math3d"
)

// Camera limits.
const (
	DefaultFOV = 800.0
	MinFOV     = 100.0
	MaxPitch   = math.Pi/2 - 0.1
)

// Camera is a pinhole camera with yaw and pitch. FOV is a focal length in
// pixels, not an angle: a camera-space point at z == FOV projects at scale 1.
//
// Fields may be written directly between frames; the rotation matrix is
// rebuilt lazily when Yaw or Pitch differ from the cached values.
type Camera struct {
	Position math3d.Vec3
	Yaw      float64 // about the vertical axis
	Pitch    float64 // about the camera's horizontal axis, +pitch looks down
	FOV      float64

	rot              math3d.Mat3
	rotYaw, rotPitch float64
	rotValid         bool
	rebuilds         int
}

// NewCamera creates a camera at pos looking down +Z.
func NewCamera(pos math3d.Vec3) *Camera {
	return &Camera{Position: pos, FOV: DefaultFOV}
}

// SetRotation sets yaw and pitch, clamping pitch.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = clampPitch(pitch)
}

// Rotate adds deltas to yaw and pitch, clamping pitch.
func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.SetRotation(c.Yaw+dYaw, c.Pitch+dPitch)
}

// SetFOV sets the focal length, clamped to MinFOV.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = max(MinFOV, fov)
}

// Focal returns the focal length actually used for projection.
func (c *Camera) Focal() float64 {
	if c.FOV == 0 {
		return DefaultFOV
	}
	return max(MinFOV, c.FOV)
}

func clampPitch(p float64) float64 {
	return max(-MaxPitch, min(MaxPitch, p))
}

// Rotation returns the world-to-camera rotation: yaw by -Yaw about Y
// first, then pitch by Pitch about X.
func (c *Camera) Rotation() math3d.Mat3 {
	pitch := clampPitch(c.Pitch)
	if !c.rotValid || c.rotYaw != c.Yaw || c.rotPitch != pitch {
		c.rot = math3d.RotationX(pitch).Mul(math3d.RotationY(-c.Yaw))
		c.rotYaw, c.rotPitch = c.Yaw, pitch
		c.rotValid = true
		c.rebuilds++
	}
	return c.rot
}

// ToCamera transforms a world point into camera space: translate, then
// rotate.
func (c *Camera) ToCamera(p math3d.Vec3) math3d.Vec3 {
	return c.Rotation().MulVec3(p.Sub(c.Position))
}

// Project maps a camera-space point to the screen. ok is false for points
// at or behind the camera.
func (c *Camera) Project(v math3d.Vec3, center math3d.Vec2) (p math3d.Vec2, ok bool) {
	if v.Z <= 0 {
		return math3d.Vec2{}, false
	}
	s := c.Focal() / v.Z
	return math3d.V2(v.X*s+center.X, v.Y*s+center.Y), true
}

// WorldToScreen projects a world point for a width × height viewport and
// returns its camera-space depth.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (screen math3d.Vec2, depth float64, ok bool) {
	v := c.ToCamera(p)
	screen, ok = c.Project(v, math3d.V2(float64(width)/2, float64(height)/2))
	return screen, v.Z, ok
}

// Forward returns the world direction the camera looks along.
func (c *Camera) Forward() math3d.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(clampPitch(c.Pitch))
	return math3d.V3(sy*cp, sp, cy*cp)
}

// Right returns the horizontal right vector.
func (c *Camera) Right() math3d.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	return math3d.V3(cy, 0, -sy)
}

// FlatForward returns Forward projected onto the ground plane.
func (c *Camera) FlatForward() math3d.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	return math3d.V3(sy, 0, cy)
}

// Move walks the camera: forward and right follow the ground plane, up is
// along world up (-Y).
func (c *Camera) Move(forward, right, up float64) {
	delta := c.FlatForward().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(math3d.Up().Scale(up))
	c.Position = c.Position.Add(delta)
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir.IsZero() {
		return
	}
	c.SetRotation(math.Atan2(dir.X, dir.Z), math.Asin(dir.Y))
}

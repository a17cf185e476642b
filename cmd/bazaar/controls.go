package main

import (
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/bazaar/pkg/collide"
	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/scene"
)

// Spring tuning. Damping 1 is critically damped: no overshoot.
const (
	lookFreq    = 4.0
	moveFreq    = 6.0
	springDamp  = 1.0
	minSpeedFPS = 1
)

// Held key bindings. The first name of each group is the one tracked.
var (
	keyForward = []string{"w", "up"}
	keyBack    = []string{"s", "down"}
	keyLeft    = []string{"a", "left"}
	keyRight   = []string{"d", "right"}
	keyRise    = []string{"q"}
	keySink    = []string{"e"}
	keyUse     = []string{promptKey}

	heldBindings = [][]string{keyForward, keyBack, keyLeft, keyRight, keyRise, keySink, keyUse}
)

// heldKey returns the tracked name of the held binding match accepts.
func heldKey(match func(...string) bool) (string, bool) {
	for _, names := range heldBindings {
		if match(names...) {
			return names[0], true
		}
	}
	return "", false
}

// Axis is one look axis. Impulses add velocity, which a spring decays to
// zero so the view coasts to a stop.
type Axis struct {
	Position float64
	Velocity float64

	spring harmonica.Spring
	accel  float64
}

// NewAxis creates an axis at pos stepped fps times a second.
func NewAxis(fps int, pos float64) Axis {
	return Axis{
		Position: pos,
		spring:   harmonica.NewSpring(harmonica.FPS(max(minSpeedFPS, fps)), lookFreq, springDamp),
	}
}

// Update applies velocity to position and decays velocity toward zero.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// Look is mouse-driven yaw and pitch.
type Look struct {
	Yaw, Pitch  Axis
	Sensitivity float64 // radians per cell of drag

	fps int
}

// NewLook creates a look state starting at the camera's rotation.
func NewLook(fps int, cam *scene.Camera, sensitivity float64) *Look {
	return &Look{
		Yaw:         NewAxis(fps, cam.Yaw),
		Pitch:       NewAxis(fps, cam.Pitch),
		Sensitivity: sensitivity,
		fps:         fps,
	}
}

// Drag turns the view by a mouse movement of dx, dy cells.
func (l *Look) Drag(dx, dy int) {
	l.Yaw.Velocity += float64(dx) * l.Sensitivity
	l.Pitch.Velocity += float64(dy) * l.Sensitivity
}

// Update steps both axes and writes the rotation to cam.
func (l *Look) Update(cam *scene.Camera) {
	l.Yaw.Update()
	l.Pitch.Update()
	if l.Pitch.Position > scene.MaxPitch || l.Pitch.Position < -scene.MaxPitch {
		l.Pitch.Position = max(-scene.MaxPitch, min(scene.MaxPitch, l.Pitch.Position))
		l.Pitch.Velocity = 0
	}
	cam.SetRotation(l.Yaw.Position, l.Pitch.Position)
}

// Reset stops the view at yaw, pitch.
func (l *Look) Reset(yaw, pitch float64) {
	l.Yaw = NewAxis(l.fps, yaw)
	l.Pitch = NewAxis(l.fps, pitch)
}

// Mover walks the camera. Each frame the velocity eases toward the
// direction of the held keys, then the camera slides through the world.
type Mover struct {
	Speed    float64 // units per frame at full speed
	Radius   float64
	Velocity math3d.Vec3

	spring harmonica.Spring
	accel  math3d.Vec3
}

// NewMover creates a mover stepped fps times a second.
func NewMover(fps int, speed float64) *Mover {
	return &Mover{
		Speed:  speed,
		Radius: collide.PlayerRadius,
		spring: harmonica.NewSpring(harmonica.FPS(max(minSpeedFPS, fps)), moveFreq, springDamp),
	}
}

// Intent returns the target velocity for the held keys.
func (m *Mover) Intent(cam *scene.Camera, keys *Keys, now time.Time) math3d.Vec3 {
	axis := func(pos, neg []string) float64 {
		v := 0.0
		if keys.Down(pos[0], now) {
			v++
		}
		if keys.Down(neg[0], now) {
			v--
		}
		return v
	}
	dir := cam.FlatForward().Scale(axis(keyForward, keyBack)).
		Add(cam.Right().Scale(axis(keyRight, keyLeft))).
		Add(math3d.Up().Scale(axis(keyRise, keySink)))
	if dir.IsZero() {
		return dir
	}
	return dir.Normalize().Scale(m.Speed)
}

// Step eases the velocity toward target and moves the camera through
// world, stopping and bouncing on each blocked axis.
func (m *Mover) Step(cam *scene.Camera, target math3d.Vec3, world collide.World) {
	v, a := m.Velocity, m.accel
	v.X, a.X = m.spring.Update(v.X, a.X, target.X)
	v.Y, a.Y = m.spring.Update(v.Y, a.Y, target.Y)
	v.Z, a.Z = m.spring.Update(v.Z, a.Z, target.Z)
	m.accel = a

	cam.Position, m.Velocity = world.Slide(cam.Position, v, m.Radius)
}

// Stop drops all momentum.
func (m *Mover) Stop() {
	m.Velocity = math3d.Vec3{}
	m.accel = math3d.Vec3{}
}

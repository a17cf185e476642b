// Package scene holds the state a frame is rendered from: the camera, the
// lights, the registered shapes and the camera-following floor.
//
// A Scene has a single writer. Input and animation mutate it between
// frames; the renderer only reads it.
package scene

import (
	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/shapes"
)

// Scene is the per-program rendering context.
type Scene struct {
	Camera   *Camera
	Lights   []*Light
	Floor    *TiledFloor // nil for no floor
	Animator *LightAnimator

	// RefreshFrames and MoveThreshold gate how often the floor is asked to
	// update; the floor itself still skips moves under half a tile.
	RefreshFrames int
	MoveThreshold float64

	shapes []*shapes.Shape
	all    []*shapes.Shape

	frame        int
	floorX       float64
	floorZ       float64
	floorChecked bool
}

// New creates an empty scene viewed through cam.
func New(cam *Camera) *Scene {
	if cam == nil {
		cam = NewCamera(math3d.Zero3())
	}
	return &Scene{
		Camera:        cam,
		RefreshFrames: DefaultRefreshFrames,
		MoveThreshold: DefaultMoveThreshold,
	}
}

// Add registers a shape and returns its index in Shapes.
func (s *Scene) Add(sh *shapes.Shape) int {
	s.shapes = append(s.shapes, sh)
	return len(s.shapes) - 1
}

// AddLight registers a light and returns its index.
func (s *Scene) AddLight(l *Light) int {
	s.Lights = append(s.Lights, l)
	return len(s.Lights) - 1
}

// Shape returns the first registered shape with the given name, or nil.
func (s *Scene) Shape(name string) *shapes.Shape {
	for _, sh := range s.shapes {
		if sh.Name == name {
			return sh
		}
	}
	return nil
}

// Remove unregisters the first shape with the given name. Indices of later
// shapes shift down by one.
func (s *Scene) Remove(name string) bool {
	for i, sh := range s.shapes {
		if sh.Name == name {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			return true
		}
	}
	return false
}

// Registered returns the shapes added with Add, without floor tiles.
func (s *Scene) Registered() []*shapes.Shape {
	return s.shapes
}

// Shapes returns the registered shapes followed by the current floor
// tiles. A shape's position in this slice is its index for shadow
// exclusion. The slice is reused by the next call.
func (s *Scene) Shapes() []*shapes.Shape {
	s.all = append(s.all[:0], s.shapes...)
	if s.Floor != nil {
		s.all = append(s.all, s.Floor.Tiles()...)
	}
	return s.all
}

// TileCount returns the number of floor tiles present.
func (s *Scene) TileCount() int {
	if s.Floor == nil {
		return 0
	}
	return s.Floor.Len()
}

// Frame returns the number of completed Update calls.
func (s *Scene) Frame() int {
	return s.frame
}

// Update advances the scene one frame: it animates the lights and asks the
// floor to follow the camera on the first frame, every RefreshFrames
// frames, or after the camera travels MoveThreshold.
func (s *Scene) Update() {
	if s.Animator != nil {
		s.Animator.Advance()
	}
	s.updateFloor()
	s.frame++
}

func (s *Scene) updateFloor() {
	if s.Floor == nil {
		return
	}
	x, z := s.Camera.Position.X, s.Camera.Position.Z

	due := !s.floorChecked
	if s.RefreshFrames > 0 && s.frame%s.RefreshFrames == 0 {
		due = true
	}
	if dx, dz := x-s.floorX, z-s.floorZ; dx*dx+dz*dz > s.MoveThreshold*s.MoveThreshold {
		due = true
	}
	if !due {
		return
	}
	s.floorX, s.floorZ = x, z
	s.floorChecked = true
	s.Floor.Update(x, z)
}

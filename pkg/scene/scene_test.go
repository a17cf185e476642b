package scene

import (
	"image/color"
	"testing"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/shapes"
)

var gray = color.RGBA{128, 128, 128, 255}

func TestSceneRegistry(t *testing.T) {
	s := New(nil)
	a := shapes.NewBox("a", math3d.Zero3(), 10, 10, 10, 1, gray)
	b := shapes.NewSphere("b", math3d.V3(0, 0, 100), 10, 8, gray)

	if i := s.Add(a); i != 0 {
		t.Errorf("Add(a) = %d", i)
	}
	if i := s.Add(b); i != 1 {
		t.Errorf("Add(b) = %d", i)
	}
	if s.Shape("b") != b || s.Shape("missing") != nil {
		t.Error("Shape lookup failed")
	}

	if !s.Remove("a") || s.Remove("a") {
		t.Error("Remove should succeed once")
	}
	if got := s.Shapes(); len(got) != 1 || got[0] != b {
		t.Errorf("Shapes after remove = %v", got)
	}
}

func TestSceneShapesIncludeTiles(t *testing.T) {
	s := New(NewCamera(math3d.V3(0, 0, 0)))
	s.Floor = NewTiledFloor(400, 1)
	box := shapes.NewBox("box", math3d.Zero3(), 10, 10, 10, 1, gray)
	s.Add(box)

	s.Update()
	all := s.Shapes()
	if len(all) != 1+9 {
		t.Fatalf("shapes = %d, want 10", len(all))
	}
	if all[0] != box {
		t.Error("registered shapes must come first")
	}
	for _, sh := range all[1:] {
		if !sh.Tile {
			t.Errorf("%s not tagged as tile", sh.Name)
		}
	}
	if s.TileCount() != 9 || len(s.Registered()) != 1 {
		t.Errorf("TileCount = %d, Registered = %d", s.TileCount(), len(s.Registered()))
	}
}

func TestSceneFloorGating(t *testing.T) {
	s := New(NewCamera(math3d.Zero3()))
	s.Floor = NewTiledFloor(400, 1)
	s.RefreshFrames = 5
	s.MoveThreshold = 100

	s.Update() // frame 0: first check
	if s.Floor.Generation() != 1 {
		t.Fatalf("generation = %d after first frame", s.Floor.Generation())
	}

	// A large jump between refresh frames is picked up immediately.
	s.Camera.Position = math3d.V3(1000, 0, 0)
	s.Update()
	if s.Floor.Generation() != 2 {
		t.Errorf("generation = %d after jump, want 2", s.Floor.Generation())
	}
	checkTileSet(t, s.Floor, 1000, 0)

	// Small drift is only examined on refresh frames.
	s.Camera.Position = math3d.V3(1090, 0, 0)
	for range 3 {
		s.Update()
	}
	if s.Frame() != 5 {
		t.Errorf("frame = %d", s.Frame())
	}
}

func TestSceneAnimatesLights(t *testing.T) {
	s := New(nil)
	orbit := NewPointLight(math3d.Zero3(), gray, 1, 0)
	s.AddLight(orbit)
	s.Animator = NewLightAnimator(orbit, nil, nil)
	s.Update()
	if orbit.Position == math3d.Zero3() {
		t.Error("light did not move")
	}
}

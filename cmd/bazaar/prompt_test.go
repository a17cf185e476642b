package main

import (
	"math"
	"testing"
	"time"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/render"
	"github.com/taigrr/bazaar/pkg/scene"
)

func TestPromptVisibility(t *testing.T) {
	t0 := time.Unix(0, 0)
	tests := []struct {
		name    string
		cam     math3d.Vec3
		enabled bool
		want    bool
	}{
		{"inside", math3d.V3(0, 0, -100), true, true},
		{"at edge", math3d.V3(0, 0, -promptDistance), true, true},
		{"outside", math3d.V3(0, 0, -200), true, false},
		{"disabled", math3d.V3(0, 0, -10), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompt(math3d.Zero3(), "test", nil)
			p.Enabled = tt.enabled
			p.Update(tt.cam, false, t0)
			if p.Visible() != tt.want {
				t.Errorf("Visible() = %v, want %v", p.Visible(), tt.want)
			}
		})
	}
}

func TestPromptHold(t *testing.T) {
	t0 := time.Unix(0, 0)
	near := math3d.V3(0, 0, -50)
	fired := 0
	p := NewPrompt(math3d.Zero3(), "test", func() { fired++ })

	p.Update(near, true, t0)
	if !p.Holding() || p.Progress() != 0 {
		t.Fatalf("start: holding %v progress %v", p.Holding(), p.Progress())
	}

	p.Update(near, true, t0.Add(promptHold/2))
	if math.Abs(p.Progress()-0.5) > 1e-9 {
		t.Errorf("progress = %v, want 0.5", p.Progress())
	}
	if fired != 0 {
		t.Fatal("fired early")
	}

	p.Update(near, true, t0.Add(promptHold))
	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
	if p.Holding() || p.Progress() != 0 {
		t.Error("hold should reset after activation")
	}

	// Keeping the key down starts a fresh hold.
	p.Update(near, true, t0.Add(promptHold+time.Millisecond))
	if fired != 1 {
		t.Errorf("fired again without a full hold")
	}

	t.Run("release cancels", func(t *testing.T) {
		p.Update(near, true, t0)
		p.Update(near, false, t0.Add(promptHold/2))
		if p.Holding() || p.Progress() != 0 {
			t.Errorf("holding %v progress %v after release", p.Holding(), p.Progress())
		}
	})

	t.Run("walking away cancels", func(t *testing.T) {
		p.Update(near, true, t0)
		p.Update(math3d.V3(0, 0, -500), true, t0.Add(promptHold))
		if p.Holding() {
			t.Error("still holding out of range")
		}
		if fired != 1 {
			t.Errorf("fired %d times, want 1", fired)
		}
	})
}

func TestPromptFade(t *testing.T) {
	tests := []struct {
		dist float64
		want float64
	}{
		{0, 1},
		{promptDistance * 0.8, 1},
		{promptDistance * 0.9, 0.5},
		{promptDistance, 0},
	}
	for _, tt := range tests {
		p := NewPrompt(math3d.Zero3(), "test", nil)
		p.Update(math3d.V3(tt.dist, 0, 0), false, time.Unix(0, 0))
		if got := p.fade(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("fade at %v = %v, want %v", tt.dist, got, tt.want)
		}
	}
}

func TestPromptLabel(t *testing.T) {
	p := NewPrompt(math3d.Zero3(), "restyle the stand", nil)
	if got, want := p.Label(), "Hold F to restyle the stand"; got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestPromptDraw(t *testing.T) {
	t0 := time.Unix(0, 0)
	cam := scene.NewCamera(math3d.V3(0, 0, -100))
	p := NewPrompt(math3d.Zero3(), "test", nil)

	rec := render.NewRecorder(800, 600)
	if p.Draw(rec, cam) {
		t.Fatal("drew a prompt that was never in range")
	}

	p.Update(cam.Position, false, t0)
	if !p.Draw(rec, cam) {
		t.Fatal("visible prompt not drawn")
	}
	if len(rec.Texts) != 1 || rec.Texts[0].Text != p.Label() {
		t.Fatalf("texts = %+v", rec.Texts)
	}
	if len(rec.Triangles) != 0 {
		t.Errorf("progress bar drawn while not holding")
	}
	txt := rec.Texts[0]
	if txt.Y >= 300 {
		t.Errorf("prompt y = %v, want above the anchor at 300", txt.Y)
	}

	rec.Reset()
	p.Update(cam.Position, true, t0)
	p.Update(cam.Position, true, t0.Add(promptHold/2))
	p.Draw(rec, cam)
	if len(rec.Triangles) != 4 {
		t.Errorf("got %d bar triangles, want 4", len(rec.Triangles))
	}
}

func TestPromptsUpdate(t *testing.T) {
	t0 := time.Unix(0, 0)
	fired := map[string]int{}
	ps := &Prompts{}
	ps.Add(NewPrompt(math3d.V3(0, 0, 0), "a", func() { fired["a"]++ }))
	ps.Add(NewPrompt(math3d.V3(1000, 0, 0), "b", func() { fired["b"]++ }))

	keys := NewKeys()
	keys.Press(promptKey, t0)
	ps.Update(math3d.V3(0, 0, -50), keys, t0)
	keys.Press(promptKey, t0.Add(promptHold))
	ps.Update(math3d.V3(0, 0, -50), keys, t0.Add(promptHold))

	if fired["a"] != 1 || fired["b"] != 0 {
		t.Errorf("fired = %v, want only the near prompt", fired)
	}

	cam := scene.NewCamera(math3d.V3(0, 0, -50))
	rec := render.NewRecorder(800, 600)
	if n := ps.Draw(rec, cam); n != 1 {
		t.Errorf("Draw = %d, want 1", n)
	}
}

package render

import (
	"image/color"
	"strings"
	"testing"

	"github.com/taigrr/bazaar/pkg/math3d"
	"github.com/taigrr/bazaar/pkg/scene"
)

func TestDrawLightMarkers(t *testing.T) {
	cam := scene.NewCamera(math3d.Zero3())
	front := scene.NewPointLight(math3d.V3(0, 0, 400), color.RGBA{255, 200, 0, 128}, 1, 0)
	behind := scene.NewPointLight(math3d.V3(0, 0, -400), white, 1, 0)
	off := scene.NewSpotLight(math3d.V3(0, 0, 300), math3d.Down(), white, 1, 0, 1, 1)
	off.Enabled = false
	sun := scene.NewDirectionalLight(math3d.Down(), white, 1)

	rec := NewRecorder(800, 600)
	if n := DrawLightMarkers(rec, cam, []*scene.Light{front, behind, off, sun, nil}); n != 1 {
		t.Fatalf("drew %d markers, want 1", n)
	}
	if len(rec.Triangles) != 2 {
		t.Fatalf("recorded %d triangles, want 2", len(rec.Triangles))
	}

	tri := rec.Triangles[0]
	if tri.Color != (color.RGBA{255, 200, 0, 255}) {
		t.Errorf("marker color = %v, want opaque light color", tri.Color)
	}
	// Nearer than the focal length: full size.
	if got := tri.Points[1].X - 400; got != markerMin+markerSpan {
		t.Errorf("marker half size = %v, want %v", got, markerMin+markerSpan)
	}
}

func TestDistanceFade(t *testing.T) {
	tests := []struct {
		depth, want float64
	}{
		{-1, 0},
		{400, 1},
		{800, 1},
		{1600, 0.5},
	}
	for _, tc := range tests {
		if got := distanceFade(800, tc.depth); got != tc.want {
			t.Errorf("distanceFade(800, %v) = %v, want %v", tc.depth, got, tc.want)
		}
	}
}

func TestDrawLabels(t *testing.T) {
	cam := scene.NewCamera(math3d.Zero3())
	style := TextStyle{Color: ColorLabel}
	labels := []Label{
		{Text: "Back Cube", Position: math3d.V3(0, 0, 500), Style: style},
		{Text: "Front Sphere", Position: math3d.V3(0, 0, 900), MaxDistance: 600, Style: style},
		{Text: "Hidden", Position: math3d.V3(0, 0, -100), Style: style},
	}

	rec := NewRecorder(800, 600)
	if n := DrawLabels(rec, cam, labels); n != 1 {
		t.Fatalf("drew %d labels, want 1", n)
	}
	got := rec.Texts[0]
	if got.Text != "Back Cube" {
		t.Errorf("drew %q", got.Text)
	}
	w, h := MeasureText("Back Cube", style)
	if got.X != 400-float64(w)/2 || got.Y != 300-float64(h) {
		t.Errorf("label at (%v, %v), want centered above the anchor", got.X, got.Y)
	}
}

func TestUILines(t *testing.T) {
	sc := scene.New(scene.NewCamera(math3d.V3(10, -150, 20)))
	sc.AddLight(scene.NewPointLight(math3d.Zero3(), white, 0.8, 0))
	sun := scene.NewDirectionalLight(math3d.Down(), white, 1)
	sun.Enabled = false
	sc.AddLight(sun)

	lines := UILines(sc, FrameStats{Drawn: 42})
	want := []string{
		"Bazaar - Software Rasterizer",
		"Triangles: 42",
		"Shapes: 0  Tiles: 0",
		"Camera: (10, -150, 20)",
		"L1: point (80%)",
		"L2: directional (off)",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.Contains(strings.Join(lines, "\n"), "Press 1-4 to toggle lights") {
		t.Error("missing light toggle hint")
	}
}

func TestDrawUI(t *testing.T) {
	rec := NewRecorder(800, 600)
	style := TextStyle{Color: ColorText}
	DrawUI(rec, 10, 10, []string{"Title", "L1: spot (off)", "hint"}, style)

	if len(rec.Texts) != 3 {
		t.Fatalf("drew %d lines, want 3", len(rec.Texts))
	}
	colors := []color.RGBA{ColorTitle, ColorOff, ColorText}
	for i, c := range colors {
		if rec.Texts[i].Style.Color != c {
			t.Errorf("line %d color = %v, want %v", i, rec.Texts[i].Style.Color, c)
		}
	}
	if rec.Texts[1].Y <= rec.Texts[0].Y {
		t.Error("lines should advance downward")
	}
}

func TestTerminalTextMetrics(t *testing.T) {
	tr := NewTerminalRenderer(nil, 80, 24)
	if w, h := tr.MeasureText("abc", TextStyle{}); w != 3 || h != 2 {
		t.Errorf("MeasureText = %d, %d, want 3, 2", w, h)
	}
	if w, _ := tr.MeasureText("abc", TextStyle{Padding: 4}); w != 5 {
		t.Errorf("padded width = %d, want 5", w)
	}

	// Lines advance one cell at a time on a terminal.
	DrawUI(tr, 0, 0, []string{"one", "two"}, TextStyle{})
	if got := tr.texts[1].Y; got != 2 {
		t.Errorf("second line at y = %v, want 2", got)
	}
}

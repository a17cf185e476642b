package config

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/taigrr/bazaar/pkg/render"
	"github.com/taigrr/bazaar/pkg/scene"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Width != 800 || cfg.Display.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.FPS != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.Display.FPS)
	}
	if cfg.Camera.Z != -500 {
		t.Errorf("expected camera z -500, got %v", cfg.Camera.Z)
	}
	if cfg.Camera.FOV != scene.DefaultFOV {
		t.Errorf("expected fov %v, got %v", scene.DefaultFOV, cfg.Camera.FOV)
	}
	if cfg.Floor.TileSize != 400 || cfg.Floor.RenderDistance != 20 {
		t.Errorf("expected 400/20 floor, got %v/%d", cfg.Floor.TileSize, cfg.Floor.RenderDistance)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDefaultRenderSettings(t *testing.T) {
	if got := Default().RenderSettings(); got != render.DefaultSettings() {
		t.Errorf("default config should match the renderer defaults:\n got %+v\nwant %+v", got, render.DefaultSettings())
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
display:
  width: 1920
  height: 1080
  background: "#102030"

camera:
  z: -900
  fov: 600

render:
  max_triangles: 500
  shadow_samples: 4
  tile_lighting: single

floor:
  tile_size: 200
  color: forestgreen

logging:
  level: "debug"
  log_file: "bazaar.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if cfg.Display.Width != 1920 || cfg.Display.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if got := cfg.BackgroundColor(); got != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("background = %v", got)
	}
	// Unset keys keep their defaults.
	if cfg.Display.FPS != 60 {
		t.Errorf("expected fps to stay 60, got %d", cfg.Display.FPS)
	}

	s := cfg.RenderSettings()
	if s.MaxTriangles != 500 || s.ShadowSamples != 4 || s.TileLighting != render.TileSingleLight {
		t.Errorf("render settings = %+v", s)
	}

	f := cfg.NewFloor()
	if f == nil || f.TileSize != 200 || f.Y != 120 {
		t.Fatalf("floor = %+v", f)
	}
	if f.Color != (color.RGBA{0x22, 0x8b, 0x22, 0xff}) {
		t.Errorf("floor color = %v, want forestgreen", f.Color)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "bazaar.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
display:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/bazaar.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidateClamps(t *testing.T) {
	cfg := Default()
	cfg.Display.FPS = 1000
	cfg.Camera.FOV = 10
	cfg.Camera.Pitch = 3
	cfg.Camera.Speed = -1
	cfg.Render.Ambient = 2
	cfg.Render.ShadowSamples = 50
	cfg.Render.FarCutoff = -5
	cfg.Floor.Subdivisions = 9
	cfg.Floor.RefreshFrames = 0
	cfg.Logging.Level = " WARN "

	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"fps", float64(cfg.Display.FPS), 240},
		{"fov", cfg.Camera.FOV, scene.MinFOV},
		{"pitch", cfg.Camera.Pitch, scene.MaxPitch},
		{"speed", cfg.Camera.Speed, 8},
		{"ambient", cfg.Render.Ambient, 1},
		{"shadow samples", float64(cfg.Render.ShadowSamples), 8},
		{"far cutoff", cfg.Render.FarCutoff, 0},
		{"subdivisions", float64(cfg.Floor.Subdivisions), 4},
		{"refresh frames", float64(cfg.Floor.RefreshFrames), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if math.Abs(tc.got-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", tc.got, tc.expected)
			}
		})
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %q, want normalized warn", cfg.Logging.Level)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tile lighting", func(c *Config) { c.Render.TileLighting = "gouraud" }},
		{"background", func(c *Config) { c.Display.Background = "#12345" }},
		{"floor color", func(c *Config) { c.Floor.Color = "nope" }},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#50783c", color.RGBA{80, 120, 60, 255}, false},
		{"FF0000", color.RGBA{255, 0, 0, 255}, false},
		{"gold", color.RGBA{255, 215, 0, 255}, false},
		{"#ggg000", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewScene(t *testing.T) {
	cfg := Default()
	cfg.Camera.Yaw = 0.5
	cfg.Floor.RefreshFrames = 3

	sc := cfg.NewScene()
	if sc.Camera.Position.Z != -500 || sc.Camera.Yaw != 0.5 {
		t.Errorf("camera = %+v", sc.Camera)
	}
	if sc.Floor == nil || sc.RefreshFrames != 3 {
		t.Errorf("floor = %v, refresh = %d", sc.Floor, sc.RefreshFrames)
	}

	cfg.Floor.Enabled = false
	if cfg.NewScene().Floor != nil {
		t.Error("disabled floor should be nil")
	}
}

func TestSaveTo(t *testing.T) {
	cfg := Default()
	cfg.Render.ShadowSamples = 2
	cfg.Floor.Color = "#112233"

	path := filepath.Join(t.TempDir(), "nested", FileName)
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config differs:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestResolveConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	if path, err := resolveConfigPath(""); err != nil || path != "" {
		t.Errorf("no config: got %q, %v; want empty path", path, err)
	}

	if _, err := resolveConfigPath(filepath.Join(xdg, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing --config file")
	}

	if err := os.WriteFile(FileName, []byte("display:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path, err := resolveConfigPath(""); err != nil || path != FileName {
		t.Errorf("got %q, %v; want %s in the working directory", path, err, FileName)
	}

	explicit := filepath.Join(xdg, "other.yaml")
	if err := os.WriteFile(explicit, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if path, err := resolveConfigPath(explicit); err != nil || path != explicit {
		t.Errorf("got %q, %v; want the explicit path", path, err)
	}
}

func TestLoadFromFileStrict(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"empty file", "", false},
		{"known keys", "render:\n  shadow_samples: 2\n", false},
		{"unknown section", "lighting:\n  ambient: 0.3\n", true},
		{"misspelled key", "render:\n  shadow_sample: 2\n", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}
			cfg := Default()
			err := loadFromFile(cfg, path)
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Display.FPS = 30
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := resolveConfigPath("")
	if err != nil || path != UserConfigPath() {
		t.Fatalf("got %q, %v; want %s", path, err, UserConfigPath())
	}
	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Display.FPS != 30 {
		t.Errorf("fps = %d, want 30", loaded.Display.FPS)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "shadows flag",
			setup: func() { *flagShadows = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.ShadowSamples != 0 {
					t.Errorf("expected shadows off, got %d", cfg.Render.ShadowSamples)
				}
			},
			teardown: func() { *flagShadows = -1 },
		},
		{
			name: "size and fps flags",
			setup: func() {
				*flagWidth = 320
				*flagHeight = 200
				*flagFPS = 30
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Display.Width != 320 || cfg.Display.Height != 200 || cfg.Display.FPS != 30 {
					t.Errorf("display = %+v", cfg.Display)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
				*flagFPS = 0
			},
		},
		{
			name:  "save-config flag",
			setup: func() { *flagSaveConfig = true },
			verify: func(t *testing.T, cfg *Config) {
				if !SaveConfigRequested() {
					t.Error("expected SaveConfigRequested after --save-config")
				}
			},
			teardown: func() { *flagSaveConfig = false },
		},
		{
			name:  "unset flags keep file values",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.ShadowSamples != 3 || cfg.Display.Width != 1024 {
					t.Errorf("flags overrode file values: %+v %+v", cfg.Render, cfg.Display)
				}
			},
			teardown: func() {},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setup()
			defer tc.teardown()

			cfg := Default()
			cfg.Render.ShadowSamples = 3
			cfg.Display.Width = 1024
			applyFlags(cfg)
			tc.verify(t, cfg)
		})
	}
}

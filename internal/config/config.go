// Package config handles bazaar configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Camera  CameraConfig  `yaml:"camera"`
	Render  RenderConfig  `yaml:"render"`
	Floor   FloorConfig   `yaml:"floor"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds output settings. Width and Height size the snapshot
// image; the terminal demo uses the terminal size.
type DisplayConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	Background string `yaml:"background"` // #rrggbb
}

// CameraConfig holds the starting view and input response.
type CameraConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Z           float64 `yaml:"z"`
	FOV         float64 `yaml:"fov"`
	Yaw         float64 `yaml:"yaw"`
	Pitch       float64 `yaml:"pitch"`
	Sensitivity float64 `yaml:"sensitivity"` // radians per mouse cell
	Speed       float64 `yaml:"speed"`       // units per frame
}

// RenderConfig holds per-frame quality settings.
type RenderConfig struct {
	Margin               float64 `yaml:"margin"`
	FarCutoff            float64 `yaml:"far_cutoff"`
	MaxTriangles         int     `yaml:"max_triangles"`
	Ambient              float64 `yaml:"ambient"`
	AttenuationLinear    float64 `yaml:"attenuation_linear"`
	AttenuationQuadratic float64 `yaml:"attenuation_quadratic"`
	ShadowSamples        int     `yaml:"shadow_samples"`
	ShadowBias           float64 `yaml:"shadow_bias"`
	TileLighting         string  `yaml:"tile_lighting"` // flat or single
	TileFlatFactor       float64 `yaml:"tile_flat_factor"`
}

// FloorConfig holds the tiled ground settings.
type FloorConfig struct {
	Enabled        bool    `yaml:"enabled"`
	TileSize       float64 `yaml:"tile_size"`
	Subdivisions   int     `yaml:"subdivisions"`
	RenderDistance int     `yaml:"render_distance"`
	Y              float64 `yaml:"y"`
	Color          string  `yaml:"color"` // #rrggbb
	RefreshFrames  int     `yaml:"refresh_frames"`
	MoveThreshold  float64 `yaml:"move_threshold"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      800,
			Height:     600,
			FPS:        60,
			Background: "#1a1a1a",
		},
		Camera: CameraConfig{
			Z:           -500,
			FOV:         800,
			Sensitivity: 0.03,
			Speed:       8,
		},
		Render: RenderConfig{
			Margin:               500,
			FarCutoff:            5000,
			Ambient:              0.2,
			AttenuationQuadratic: 0.0001,
			ShadowBias:           0.1,
			TileLighting:         "flat",
			TileFlatFactor:       0.8,
		},
		Floor: FloorConfig{
			Enabled:        true,
			TileSize:       400,
			Subdivisions:   1,
			RenderDistance: 20,
			Y:              120,
			Color:          "#50783c",
			RefreshFrames:  5,
			MoveThreshold:  100,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

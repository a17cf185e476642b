package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagShadows    = flag.Int("shadows", -1, "Shadow samples per light (0 off, 1 hard, up to 8 soft)")
	flagSnapshot   = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
	flagWidth      = flag.Int("width", 0, "Snapshot width")
	flagHeight     = flag.Int("height", 0, "Snapshot height")
	flagFPS        = flag.Int("fps", 0, "Target FPS")
	flagModel      = flag.String("model", "", "GLB model to place in the market")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SnapshotPath returns the --snapshot output path, empty for the
// interactive demo.
func SnapshotPath() string {
	return *flagSnapshot
}

// SaveConfigRequested reports whether --save-config was given.
func SaveConfigRequested() bool {
	return *flagSaveConfig
}

// ModelPath returns the --model path.
func ModelPath() string {
	return *flagModel
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagShadows >= 0 {
		cfg.Render.ShadowSamples = *flagShadows
	}
	if *flagWidth > 0 {
		cfg.Display.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Display.Height = *flagHeight
	}
	if *flagFPS > 0 {
		cfg.Display.FPS = *flagFPS
	}
}

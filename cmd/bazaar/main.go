// bazaar - Terminal Software Rasterizer
// Walk a small 3D market rendered on the CPU into your terminal.
//
// Controls:
//
//	W/A/S/D, arrows - Walk
//	Q/E             - Rise/sink
//	Mouse drag      - Look around
//	Scroll          - Zoom
//	F (hold)        - Use a nearby stand
//	1-4             - Toggle lights
//	L               - Pause light animation
//	X               - Toggle wireframe
//	?               - Toggle HUD
//	R               - Reset view
//	Esc             - Quit
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/taigrr/bazaar/internal/config"
	"github.com/taigrr/bazaar/internal/logger"
	"go.uber.org/zap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "bazaar - Terminal Software Rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: bazaar [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/A/S/D     - Walk\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Rise/sink\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Look around\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom\n")
		fmt.Fprintf(os.Stderr, "  F (hold)    - Use a nearby stand\n")
		fmt.Fprintf(os.Stderr, "  1-4         - Toggle lights\n")
		fmt.Fprintf(os.Stderr, "  L           - Pause light animation\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	config.ParseFlags()

	if err := realMain(); err != nil {
		logger.Error("bazaar failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func realMain() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal UI owns stdout, so only the snapshot mode logs there.
	snap := config.SnapshotPath()
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, snap != ""); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if config.SaveConfigRequested() {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		path := config.UserConfigPath()
		logger.Info("config saved", zap.String("path", path))
		fmt.Fprintf(os.Stderr, "Config written to %s\n", path)
		return nil
	}

	m := NewMarket(cfg, config.ModelPath())
	logger.Debug("market built",
		zap.Int("shapes", len(m.Scene.Registered())),
		zap.Int("lights", len(m.Scene.Lights)),
	)

	if snap != "" {
		return snapshot(cfg, m, snap)
	}
	return run(cfg, m)
}

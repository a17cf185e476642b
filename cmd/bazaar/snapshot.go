package main

import (
	"fmt"
	"time"

	"github.com/taigrr/bazaar/internal/config"
	"github.com/taigrr/bazaar/internal/logger"
	"github.com/taigrr/bazaar/pkg/render"
	"go.uber.org/zap"
)

// snapshot renders a single frame of the market at the configured display
// size and writes it to path as a PNG.
func snapshot(cfg *config.Config, m *Market, path string) error {
	fb := render.NewFramebuffer(cfg.Display.Width, cfg.Display.Height)
	fb.Clear(cfg.BackgroundColor())

	app := NewApp(cfg, m, time.Now())
	m.Scene.Update()
	stats := app.Draw(fb, 1)

	if err := fb.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	logger.Info("snapshot saved",
		zap.String("path", path),
		zap.Int("width", fb.Width),
		zap.Int("height", fb.Height),
		zap.Int("triangles", stats.Drawn),
		zap.Duration("took", stats.Duration),
	)
	return nil
}

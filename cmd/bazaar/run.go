package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/bazaar/internal/config"
	"github.com/taigrr/bazaar/internal/logger"
	"github.com/taigrr/bazaar/pkg/render"
	"go.uber.org/zap"
)

// fovScale maps the configured focal length, tuned for a window
// cfgHeight pixels tall, onto a framebuffer fbHeight pixels tall.
func fovScale(fbHeight, cfgHeight int) float64 {
	if cfgHeight <= 0 {
		return 1
	}
	return float64(fbHeight) / float64(cfgHeight)
}

// run drives the interactive terminal demo until the user quits or the
// process is signalled.
func run(cfg *config.Config, m *Market) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr := render.NewTerminalRenderer(term, width, height)
	_, fbHeight := tr.FramebufferSize()
	bg := cfg.BackgroundColor()

	app := NewApp(cfg, m, time.Now())
	logger.Info("demo started",
		zap.Int("cols", width),
		zap.Int("rows", height),
		zap.Int("shapes", len(m.Scene.Registered())),
	)

	frame := time.Second / time.Duration(cfg.Display.FPS)
	events := term.Events()
	for {
		start := time.Now()

	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				if ws, ok := ev.(uv.WindowSizeEvent); ok {
					width, height = ws.Width, ws.Height
					term.Erase()
					term.Resize(width, height)
					tr = render.NewTerminalRenderer(term, width, height)
					_, fbHeight = tr.FramebufferSize()
					logger.Debug("terminal resized", zap.Int("cols", width), zap.Int("rows", height))
					continue
				}
				app.HandleEvent(ev, start)
			default:
				break drain
			}
		}
		if app.Quit() {
			return nil
		}

		app.Step(start)

		tr.Wireframe = app.Wireframe
		tr.Clear(bg)
		app.Draw(tr, fovScale(fbHeight, cfg.Display.Height))
		if err := tr.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		if elapsed := time.Since(start); elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
}

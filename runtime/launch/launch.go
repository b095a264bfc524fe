// Package launch starts a game on the backend chosen in its configuration.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/plus3/hewn/config"
	"github.com/plus3/hewn/render"
	"github.com/plus3/hewn/runtime"
	"github.com/plus3/hewn/runtime/terminal"
	"github.com/plus3/hewn/runtime/window"
	"go.uber.org/zap"
)

// HeadlessSeconds is how much game time the headless backend simulates.
const HeadlessSeconds = 10

// New returns the runtime selected by cfg.Backend. The headless runtime
// writes its last frame to out.
func New(cfg *config.Config, title string, out io.Writer, logger *zap.Logger) (runtime.Runtime, error) {
	switch cfg.Backend {
	case config.BackendTerminal:
		return terminal.New(
			terminal.WithSize(cfg.Width, cfg.Height),
			terminal.WithFrameInterval(cfg.FrameInterval()),
			terminal.WithMaxDelta(cfg.MaxDelta),
			terminal.WithCamera(cfg.CameraStrategy()),
			terminal.WithLogger(logger),
		), nil

	case config.BackendWindow:
		opts := []window.Option{
			window.WithTitle(title),
			window.WithSize(cfg.Width, cfg.Height),
			window.WithCellSize(cfg.CellSize),
			window.WithMaxDelta(cfg.MaxDelta),
			window.WithCamera(cfg.CameraStrategy()),
			window.WithLogger(logger),
		}
		if cfg.DebugUI {
			opts = append(opts, window.WithDebugUI())
		}
		return window.New(opts...), nil

	case config.BackendHeadless:
		frames := cfg.FrameRate * HeadlessSeconds
		return &runtime.Headless{
			Frames: frames,
			Delta:  1 / float64(cfg.FrameRate),
			View:   runtime.NewView(cfg.Width, cfg.Height, cfg.CameraStrategy()),
			OnFrame: func(frame int, grid *render.Grid) {
				if frame == frames-1 {
					fmt.Fprintln(out, grid.String())
				}
			},
			Logger: logger,
		}, nil
	}
	return nil, fmt.Errorf("launch: unknown backend %q", cfg.Backend)
}

// Run runs game on the configured backend. A player quitting is not an error.
func Run(ctx context.Context, cfg *config.Config, title string, game runtime.Game, out io.Writer, logger *zap.Logger) error {
	rt, err := New(cfg, title, out, logger)
	if err != nil {
		return err
	}

	logger.Info("starting game",
		zap.String("title", title),
		zap.String("backend", cfg.Backend),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height))

	err = rt.Run(ctx, game)
	if errors.Is(err, runtime.ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

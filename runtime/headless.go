package runtime

import (
	"context"

	"github.com/plus3/hewn/render"
	"go.uber.org/zap"
)

// Headless runs a game for a fixed number of frames with a fixed delta and
// scripted input, without any screen. It is used by tests and benchmarks.
type Headless struct {
	Frames int
	Delta  float64

	// Input returns the events delivered before the given frame.
	Input func(frame int) []KeyEvent
	// View, when set, is advanced after every frame and its grid passed to
	// OnFrame.
	View    *View
	OnFrame func(frame int, grid *render.Grid)

	Logger *zap.Logger
}

func (h *Headless) Run(ctx context.Context, game Game) error {
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	game.Start()
	for frame := range h.Frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if h.Input != nil {
			for _, ev := range h.Input(frame) {
				if err := Dispatch(game, ev); err != nil {
					logger.Debug("headless run quit", zap.Int("frame", frame))
					return err
				}
			}
		}

		game.Next(h.Delta)

		if h.View != nil {
			grid := h.View.Next(game.Scene())
			if h.OnFrame != nil {
				h.OnFrame(frame, grid)
			}
		}
	}
	logger.Debug("headless run finished", zap.Int("frames", h.Frames))
	return nil
}

// Package terminal runs games in a terminal using tcell.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/hewn/camera"
	"github.com/plus3/hewn/render"
	"github.com/plus3/hewn/runtime"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultFrameInterval = 33 * time.Millisecond
	DefaultMaxDelta      = 100 * time.Millisecond
)

// Runtime draws the game on a tcell screen. Terminals only report key
// presses, so games receive KeyEvents with Pressed set and no releases.
type Runtime struct {
	screen        tcell.Screen
	width, height int
	frameInterval time.Duration
	maxDelta      time.Duration
	strategy      camera.Strategy
	logger        *zap.Logger
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithScreen uses screen instead of the process terminal.
func WithScreen(screen tcell.Screen) Option {
	return func(r *Runtime) {
		r.screen = screen
	}
}

// WithSize fixes the view size in cells. By default the view fills the
// screen minus the status line.
func WithSize(width, height int) Option {
	return func(r *Runtime) {
		r.width, r.height = width, height
	}
}

// WithFrameInterval sets the time between frames.
func WithFrameInterval(d time.Duration) Option {
	return func(r *Runtime) {
		r.frameInterval = d
	}
}

// WithMaxDelta bounds the delta passed to Game.Next.
func WithMaxDelta(d time.Duration) Option {
	return func(r *Runtime) {
		r.maxDelta = d
	}
}

// WithCamera sets the camera strategy.
func WithCamera(strategy camera.Strategy) Option {
	return func(r *Runtime) {
		r.strategy = strategy
	}
}

// WithLogger sets the logger. It must not write to the terminal.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// New creates a terminal runtime.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		frameInterval: DefaultFrameInterval,
		maxDelta:      DefaultMaxDelta,
		strategy:      camera.NewFollowY(),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run initializes the screen and runs game until ctx ends or the player
// quits, in which case it returns runtime.ErrQuit. The screen is restored
// before Run returns.
func (r *Runtime) Run(ctx context.Context, game runtime.Game) error {
	screen := r.screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("terminal: create screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: init screen: %w", err)
	}
	var fini sync.Once
	release := func() { fini.Do(screen.Fini) }
	defer release()

	events := make(chan tcell.Event, 16)
	g, gctx := errgroup.WithContext(ctx)

	// PollEvent returns nil once the screen is finalized.
	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer release()
		return r.loop(gctx, screen, events, game)
	})

	err := g.Wait()
	if errors.Is(err, runtime.ErrQuit) {
		r.logger.Info("player quit")
	}
	return err
}

func (r *Runtime) loop(ctx context.Context, screen tcell.Screen, events <-chan tcell.Event, game runtime.Game) error {
	view := r.newView(screen, nil)
	clock := runtime.NewFrameClock(r.maxDelta)
	ticker := time.NewTicker(r.frameInterval)
	defer ticker.Stop()

	game.Start()
	clock.Tick(time.Now())
	r.draw(screen, view.Next(game.Scene()), game.Debug())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				key, ok := translateKey(ev)
				if !ok {
					continue
				}
				if err := runtime.Dispatch(game, runtime.KeyEvent{Key: key, Pressed: true}); err != nil {
					return err
				}
			case *tcell.EventResize:
				screen.Sync()
				if r.width <= 0 || r.height <= 0 {
					view = r.newView(screen, view)
				}
			}

		case now := <-ticker.C:
			game.Next(clock.Tick(now))
			r.draw(screen, view.Next(game.Scene()), game.Debug())
		}
	}
}

// newView sizes a view for the screen, keeping the camera position of prev.
func (r *Runtime) newView(screen tcell.Screen, prev *runtime.View) *runtime.View {
	width, height := r.width, r.height
	if width <= 0 || height <= 0 {
		width, height = screen.Size()
		height--
	}
	view := runtime.NewView(width, height, r.strategy)
	if prev != nil {
		view.Viewport.X, view.Viewport.Y = prev.Viewport.X, prev.Viewport.Y
	}
	r.logger.Debug("terminal view", zap.Int("width", width), zap.Int("height", height))
	return view
}

func (r *Runtime) draw(screen tcell.Screen, grid *render.Grid, debug string) {
	screen.Clear()
	background := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for row := range grid.Height {
		for col := range grid.Width {
			cell := grid.At(col, row)
			style := background
			if cell.Set {
				c := cell.Color
				style = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			}
			screen.SetContent(col, row, cell.Glyph, nil, style)
		}
	}
	for i, ch := range []rune(debug) {
		screen.SetContent(i, grid.Height, ch, nil, tcell.StyleDefault)
	}
	screen.Show()
}

func translateKey(ev *tcell.EventKey) (runtime.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return runtime.KeyLeft, true
	case tcell.KeyRight:
		return runtime.KeyRight, true
	case tcell.KeyUp:
		return runtime.KeyUp, true
	case tcell.KeyDown:
		return runtime.KeyDown, true
	case tcell.KeyEscape:
		return runtime.KeyEscape, true
	case tcell.KeyCtrlC:
		return runtime.KeyQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return runtime.KeySpace, true
		case 'q':
			return runtime.KeyQuit, true
		}
	}
	return 0, false
}

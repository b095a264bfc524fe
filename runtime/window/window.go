// Package window runs games in a desktop window, or in a browser canvas when
// built for js/wasm, using ebiten.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/hewn/camera"
	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/render"
	"github.com/plus3/hewn/runtime"
	"go.uber.org/zap"
)

const (
	DefaultCellSize = 12
	DefaultMaxDelta = 100 * time.Millisecond
)

var background = color.RGBA{R: 16, G: 16, B: 24, A: 255}

// overlay is drawn over the game, e.g. the debug inspector.
type overlay interface {
	Update(scene *ecs.Scene, dt float64)
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	WantsKeyboard() bool
}

// Runtime draws each grid cell as a filled square.
type Runtime struct {
	title         string
	width, height int
	cellSize      int
	maxDelta      time.Duration
	strategy      camera.Strategy
	logger        *zap.Logger
	debugUI       bool
	overlay       overlay
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(r *Runtime) {
		r.title = title
	}
}

// WithSize sets the view size in cells.
func WithSize(width, height int) Option {
	return func(r *Runtime) {
		r.width, r.height = width, height
	}
}

// WithCellSize sets the edge length of a cell in pixels.
func WithCellSize(px int) Option {
	return func(r *Runtime) {
		r.cellSize = px
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

// WithDebugUI draws the Dear ImGui scene inspector over the game. Browser
// builds ignore it.
func WithDebugUI() Option {
	return func(r *Runtime) {
		r.debugUI = true
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// New creates a window runtime.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		title:    "hewn",
		width:    80,
		height:   24,
		cellSize: DefaultCellSize,
		maxDelta: DefaultMaxDelta,
		strategy: camera.NewFollowXY(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run opens the window and blocks until it is closed, ctx ends or the player
// quits, in which case it returns runtime.ErrQuit.
func (r *Runtime) Run(ctx context.Context, game runtime.Game) error {
	if r.width <= 0 || r.height <= 0 || r.cellSize <= 0 {
		return fmt.Errorf("window: invalid size %dx%d cells of %dpx", r.width, r.height, r.cellSize)
	}

	if r.debugUI {
		r.overlay = newInspectorOverlay(r)
	}
	ebiten.SetWindowSize(r.width*r.cellSize, r.height*r.cellSize)
	ebiten.SetWindowTitle(r.title)

	a := r.newAdapter(ctx, game, inputKeys{})
	game.Start()

	r.logger.Info("window runtime started",
		zap.Int("width", r.width),
		zap.Int("height", r.height),
		zap.Bool("debug_ui", r.overlay != nil))

	err := ebiten.RunGame(a)
	switch {
	case errors.Is(err, runtime.ErrQuit):
		r.logger.Info("player quit")
		return err
	case err != nil && ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// keySource reports key transitions for the current tick.
type keySource interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

var bindings = []struct {
	key  ebiten.Key
	game runtime.Key
}{
	{ebiten.KeyArrowLeft, runtime.KeyLeft},
	{ebiten.KeyArrowRight, runtime.KeyRight},
	{ebiten.KeyArrowUp, runtime.KeyUp},
	{ebiten.KeyArrowDown, runtime.KeyDown},
	{ebiten.KeySpace, runtime.KeySpace},
	{ebiten.KeyEscape, runtime.KeyEscape},
	{ebiten.KeyQ, runtime.KeyQuit},
}

// adapter implements ebiten.Game on top of a runtime.Game.
type adapter struct {
	ctx      context.Context
	game     runtime.Game
	keys     keySource
	clock    *runtime.FrameClock
	view     *runtime.View
	grid     *render.Grid
	cellSize int
	overlay  overlay
}

func (r *Runtime) newAdapter(ctx context.Context, game runtime.Game, keys keySource) *adapter {
	return &adapter{
		ctx:      ctx,
		game:     game,
		keys:     keys,
		clock:    runtime.NewFrameClock(r.maxDelta),
		view:     runtime.NewView(r.width, r.height, r.strategy),
		cellSize: r.cellSize,
		overlay:  r.overlay,
	}
}

// events returns the key events of the current tick.
func (a *adapter) events() []runtime.KeyEvent {
	var evs []runtime.KeyEvent
	for _, b := range bindings {
		if a.keys.JustPressed(b.key) {
			evs = append(evs, runtime.KeyEvent{Key: b.game, Pressed: true})
		}
		if a.keys.JustReleased(b.key) {
			evs = append(evs, runtime.KeyEvent{Key: b.game})
		}
	}
	return evs
}

func (a *adapter) Update() error {
	if err := a.ctx.Err(); err != nil {
		return err
	}

	if a.overlay == nil || !a.overlay.WantsKeyboard() {
		for _, ev := range a.events() {
			if err := runtime.Dispatch(a.game, ev); err != nil {
				return err
			}
		}
	}

	dt := a.clock.Tick(time.Now())
	a.game.Next(dt)
	a.grid = a.view.Next(a.game.Scene())

	if a.overlay != nil {
		a.overlay.Update(a.game.Scene(), dt)
	}
	return nil
}

func (a *adapter) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if a.grid != nil {
		for _, c := range cellRects(a.grid, a.cellSize) {
			vector.DrawFilledRect(screen, c.X, c.Y, c.Size, c.Size, c.Color, false)
		}
	}
	ebitenutil.DebugPrint(screen, a.game.Debug())

	if a.overlay != nil {
		a.overlay.Draw(screen)
	}
}

func (a *adapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	if a.overlay != nil {
		a.overlay.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return a.view.Viewport.Width * a.cellSize, a.view.Viewport.Height * a.cellSize
}

type cellRect struct {
	X, Y, Size float32
	Color      color.Color
}

// cellRects returns the pixel squares of the set cells of g.
func cellRects(g *render.Grid, cellSize int) []cellRect {
	var rects []cellRect
	size := float32(cellSize)
	for row := range g.Height {
		for col := range g.Width {
			cell := g.At(col, row)
			if !cell.Set {
				continue
			}
			rects = append(rects, cellRect{
				X:     float32(col) * size,
				Y:     float32(row) * size,
				Size:  size,
				Color: cell.Color,
			})
		}
	}
	return rects
}

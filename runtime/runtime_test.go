package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/hewn/camera"
	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/render"
	"github.com/plus3/hewn/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walker is a one-entity game moving right while the right key is held.
type walker struct {
	scene   *ecs.Scene
	player  ecs.EntityId
	starts  int
	handled []runtime.KeyEvent
	elapsed float64
}

func (g *walker) Start() {
	g.starts++
	g.elapsed = 0
	g.scene = ecs.NewScene()
	g.player = g.scene.MustAdd(ecs.Components{
		Position:     &ecs.Position{},
		Velocity:     &ecs.Velocity{},
		Size:         &ecs.Size{W: 1, H: 1},
		Render:       &ecs.Render{Glyph: '@'},
		CameraFollow: &ecs.CameraFollow{},
	})
}

func (g *walker) HandleKey(ev runtime.KeyEvent) bool {
	g.handled = append(g.handled, ev)
	if ev.Key != runtime.KeyRight {
		return false
	}
	e, _ := g.scene.GetMut(g.player)
	if ev.Pressed {
		e.Velocity.X = 1
	} else {
		e.Velocity.X = 0
	}
	return true
}

func (g *walker) Next(dt float64) {
	g.elapsed += dt
	g.scene.Step(dt)
}

func (g *walker) Scene() *ecs.Scene { return g.scene }

func (g *walker) Debug() string { return "" }

func TestFrameClock(t *testing.T) {
	clock := runtime.NewFrameClock(100 * time.Millisecond)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Zero(t, clock.Tick(start))
	assert.InDelta(t, 0.016, clock.Tick(start.Add(16*time.Millisecond)), 1e-9)
	assert.InDelta(t, 0.1, clock.Tick(start.Add(5*time.Second)), 1e-9, "clamped to max delta")
	assert.Zero(t, clock.Tick(start), "time going backwards")

	clock.Reset()
	assert.Zero(t, clock.Tick(start.Add(time.Hour)))
}

func TestDispatch(t *testing.T) {
	g := &walker{}
	g.Start()

	require.ErrorIs(t, runtime.Dispatch(g, runtime.KeyEvent{Key: runtime.KeyQuit, Pressed: true}), runtime.ErrQuit)
	require.ErrorIs(t, runtime.Dispatch(g, runtime.KeyEvent{Key: runtime.KeyEscape, Pressed: true}), runtime.ErrQuit)

	require.NoError(t, runtime.Dispatch(g, runtime.KeyEvent{Key: runtime.KeySpace, Pressed: true}))
	assert.Equal(t, 2, g.starts)

	require.NoError(t, runtime.Dispatch(g, runtime.KeyEvent{Key: runtime.KeyUp, Pressed: true}))
	require.NoError(t, runtime.Dispatch(g, runtime.KeyEvent{Key: runtime.KeySpace}))
	assert.Equal(t, []runtime.KeyEvent{
		{Key: runtime.KeyUp, Pressed: true},
		{Key: runtime.KeySpace},
	}, g.handled)
}

func TestHeadless(t *testing.T) {
	g := &walker{}
	var last []string

	h := &runtime.Headless{
		Frames: 10,
		Delta:  1,
		Input: func(frame int) []runtime.KeyEvent {
			switch frame {
			case 2:
				return []runtime.KeyEvent{{Key: runtime.KeyRight, Pressed: true}}
			case 5:
				return []runtime.KeyEvent{{Key: runtime.KeyRight}}
			}
			return nil
		},
		View: runtime.NewView(5, 1, nil),
		OnFrame: func(frame int, grid *render.Grid) {
			last = grid.Lines()
		},
	}

	require.NoError(t, h.Run(context.Background(), g))
	assert.Equal(t, 10.0, g.elapsed)
	assert.Equal(t, []string{"...@."}, last)
}

func TestHeadlessQuit(t *testing.T) {
	g := &walker{}
	h := &runtime.Headless{
		Frames: 10,
		Delta:  1,
		Input: func(frame int) []runtime.KeyEvent {
			if frame == 3 {
				return []runtime.KeyEvent{{Key: runtime.KeyQuit, Pressed: true}}
			}
			return nil
		},
	}

	require.ErrorIs(t, h.Run(context.Background(), g), runtime.ErrQuit)
	assert.Equal(t, 3.0, g.elapsed)
}

func TestHeadlessContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := (&runtime.Headless{Frames: 1}).Run(ctx, &walker{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestViewTracksCamera(t *testing.T) {
	g := &walker{}
	g.Start()
	e, _ := g.scene.GetMut(g.player)
	e.Position.X = 30

	view := runtime.NewView(20, 1, camera.NewFollowX())
	grid := view.Next(g.Scene())

	assert.Equal(t, 26, view.Viewport.X)
	assert.Equal(t, "....@...............", grid.String())
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "space", runtime.KeySpace.String())
	assert.Equal(t, "Key(42)", runtime.Key(42).String())
}

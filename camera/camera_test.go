package camera_test

import (
	"testing"

	"github.com/plus3/hewn/camera"
	"github.com/plus3/hewn/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticNeverMoves(t *testing.T) {
	vp := &camera.Viewport{X: 3, Y: 4, Width: 10, Height: 10}
	camera.Static{}.Update(vp, ecs.Position{X: 500, Y: -500})
	assert.Equal(t, camera.Viewport{X: 3, Y: 4, Width: 10, Height: 10}, *vp)
}

func TestFollowX(t *testing.T) {
	vp := camera.NewViewport(40, 10)
	s := camera.NewFollowX()

	steps := []struct {
		target float64
		want   int
	}{
		{0, 0},
		{20, 0},
		{37, 0},
		{38, 14},
		{39, 14},
		{50.9, 14},
		{15, 0},
	}
	for _, step := range steps {
		s.Update(vp, ecs.Position{X: step.target, Y: 99})
		assert.Equal(t, step.want, vp.X, "target x %v", step.target)
		assert.Zero(t, vp.Y)
	}
}

func TestFollowY(t *testing.T) {
	vp := camera.NewViewport(10, 20)
	s := camera.NewFollowY()

	s.Update(vp, ecs.Position{Y: 10})
	assert.Zero(t, vp.Y)

	s.Update(vp, ecs.Position{Y: 18})
	assert.Equal(t, 1, vp.Y)

	// Within the dead zone now.
	s.Update(vp, ecs.Position{Y: 12})
	assert.Equal(t, 1, vp.Y)

	s.Update(vp, ecs.Position{Y: 2})
	assert.Zero(t, vp.Y)
}

func TestFollowXY(t *testing.T) {
	vp := camera.NewViewport(40, 20)
	s := camera.NewFollowXY()

	steps := []struct {
		x, y  float64
		wantX int
		wantY int
	}{
		{5, 0, 0, 0},
		{29, 10, 0, 0},
		{30, 10, 1, 0},
		{35, 10, 6, 0},
		{15, 10, 5, 0},
		{15, 19, 5, 2},
		{0, 19, 0, 2},
	}
	for _, step := range steps {
		s.Update(vp, ecs.Position{X: step.x, Y: step.y})
		assert.Equal(t, step.wantX, vp.X, "x for target (%v, %v)", step.x, step.y)
		assert.Equal(t, step.wantY, vp.Y, "y for target (%v, %v)", step.x, step.y)
	}
}

func TestTrack(t *testing.T) {
	scene := ecs.NewScene()
	vp := camera.NewViewport(40, 10)

	assert.False(t, camera.Track(scene, camera.NewFollowX(), vp))

	// A marker without a position cannot be tracked.
	scene.MustAdd(ecs.Components{CameraFollow: &ecs.CameraFollow{}})
	assert.False(t, camera.Track(scene, camera.NewFollowX(), vp))

	scene.MustAdd(ecs.Components{
		Position:     &ecs.Position{X: 100},
		CameraFollow: &ecs.CameraFollow{},
	})
	scene.MustAdd(ecs.Components{
		Position:     &ecs.Position{X: 1000},
		CameraFollow: &ecs.CameraFollow{},
	})

	require.True(t, camera.Track(scene, camera.NewFollowX(), vp))
	assert.Equal(t, 76, vp.X)
}

func TestViewportContains(t *testing.T) {
	vp := &camera.Viewport{X: 2, Y: 2, Width: 3, Height: 2}
	assert.True(t, vp.Contains(2, 2))
	assert.True(t, vp.Contains(4, 3))
	assert.False(t, vp.Contains(5, 3))
	assert.False(t, vp.Contains(4, 4))
	assert.False(t, vp.Contains(1, 2))
}

func TestNamed(t *testing.T) {
	for name, want := range map[string]camera.Strategy{
		"":       camera.Static{},
		"static": camera.Static{},
		"x":      camera.NewFollowX(),
		"y":      camera.NewFollowY(),
		"xy":     camera.NewFollowXY(),
	} {
		got, err := camera.Named(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	_, err := camera.Named("orbit")
	assert.ErrorContains(t, err, "orbit")
}

func TestSystem(t *testing.T) {
	scene := ecs.NewScene()
	scene.MustAdd(ecs.Components{
		Position:     &ecs.Position{X: 0},
		Velocity:     &ecs.Velocity{X: 60},
		CameraFollow: &ecs.CameraFollow{},
	})

	cam := &camera.System{Strategy: camera.NewFollowX(), Viewport: camera.NewViewport(40, 10)}
	scheduler := ecs.NewScheduler(scene)
	scheduler.Register(ecs.MovementSystem{})
	scheduler.Register(cam)

	require.NoError(t, scheduler.Once(1))
	assert.True(t, cam.Tracking)
	assert.Equal(t, 36, cam.Viewport.X)
}

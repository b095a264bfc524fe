package runtime

import (
	"github.com/plus3/hewn/camera"
	"github.com/plus3/hewn/ecs"
	"github.com/plus3/hewn/render"
)

// View follows the camera target of a scene and rasterizes it. Runtimes
// call Next once per frame after the game has advanced.
type View struct {
	Viewport *camera.Viewport
	Strategy camera.Strategy

	grid *render.Grid
}

// NewView creates a width×height view using strategy. A nil strategy keeps
// the camera static.
func NewView(width, height int, strategy camera.Strategy) *View {
	if strategy == nil {
		strategy = camera.Static{}
	}
	return &View{
		Viewport: camera.NewViewport(width, height),
		Strategy: strategy,
		grid:     render.NewGrid(width, height),
	}
}

// Next moves the camera and redraws the grid. The returned grid is reused
// by the following call.
func (v *View) Next(scene *ecs.Scene) *render.Grid {
	camera.Track(scene, v.Strategy, v.Viewport)
	render.Draw(v.grid, render.Snapshot(scene), v.Viewport)
	return v.grid
}

//go:build !js

package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/hewn/debugui"
	debugebiten "github.com/plus3/hewn/debugui/ebiten"
	"github.com/plus3/hewn/ecs"
)

type inspectorOverlay struct {
	backend *debugebiten.Backend
}

func newInspectorOverlay(r *Runtime) overlay {
	return &inspectorOverlay{
		backend: debugebiten.NewBackend(r.title, r.width*r.cellSize, r.height*r.cellSize),
	}
}

func (o *inspectorOverlay) Update(scene *ecs.Scene, dt float64) {
	o.backend.Update(inspectorFrame(scene, dt))
}

// inspectorFrame lists the pairs projected over the frame's delta, the same
// pass a game runs before stepping.
func inspectorFrame(scene *ecs.Scene, dt float64) debugui.Frame {
	return debugui.Frame{
		Scene:      scene,
		DeltaTime:  dt,
		Collisions: scene.CollisionPass(dt),
	}
}

func (o *inspectorOverlay) Draw(screen *ebiten.Image) {
	o.backend.Overlay(screen)
}

func (o *inspectorOverlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

func (o *inspectorOverlay) WantsKeyboard() bool {
	return o.backend.WantsKeyboard()
}

// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/hewn/debugui"
)

// Backend wraps the Ebiten-specific Dear ImGui backend and the inspector it
// draws.
type Backend struct {
	*ebitenbackend.EbitenBackend
	Inspector *debugui.Inspector
}

// NewBackend creates the ImGui backend for a window of the given size.
// imgui.ini persistence is disabled.
func NewBackend(title string, width, height int) *Backend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Backend{EbitenBackend: b, Inspector: debugui.NewInspector()}
}

// Update renders the inspector for the frame. Call it from ebiten.Game.Update.
func (b *Backend) Update(f debugui.Frame) {
	b.BeginFrame()
	b.Inspector.Render(f)
	b.EndFrame()
}

// Overlay draws the inspector over screen. Call it last in ebiten.Game.Draw.
func (b *Backend) Overlay(screen *ebiten.Image) {
	b.Draw(screen)
}

// WantsKeyboard reports whether ImGui consumed the keyboard last frame.
func (b *Backend) WantsKeyboard() bool {
	return b.Inspector.Input.WantCaptureKeyboard
}

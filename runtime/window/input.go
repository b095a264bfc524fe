package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// inputKeys reads key transitions from ebiten.
type inputKeys struct{}

func (inputKeys) JustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func (inputKeys) JustReleased(k ebiten.Key) bool {
	return inpututil.IsKeyJustReleased(k)
}

// Package runtime defines the contract between a game and the platform
// backends that drive it: key events, the Game interface, the frame clock
// and the view that turns a scene into a glyph grid.
package runtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/plus3/hewn/ecs"
)

// ErrQuit is returned by a Runtime when the player asked to quit.
var ErrQuit = errors.New("quit")

// Key is a platform independent key.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEscape
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeySpace:
		return "space"
	case KeyEscape:
		return "escape"
	case KeyQuit:
		return "quit"
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key     Key
	Pressed bool
}

// Game is implemented by the games a Runtime hosts. All methods are called
// from the runtime's loop goroutine.
type Game interface {
	// Start (re)starts the game.
	Start()
	// HandleKey reacts to input and reports whether the game used the event.
	HandleKey(ev KeyEvent) bool
	// Next advances the game by dt seconds.
	Next(dt float64)
	// Scene returns the scene drawn after each frame.
	Scene() *ecs.Scene
	// Debug returns a status line, or "" for none.
	Debug() string
}

// Runtime runs a game until the context ends or the player quits.
type Runtime interface {
	Run(ctx context.Context, game Game) error
}

// Package camera moves a viewport over the world so that it keeps the
// entity marked with ecs.CameraFollow on screen.
package camera

import (
	"fmt"
	"math"

	"github.com/plus3/hewn/ecs"
)

// Viewport is the window of world cells shown on screen. X and Y are the
// world coordinates of its lower-left cell.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// NewViewport creates a viewport of the given size anchored at the origin.
func NewViewport(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// Contains reports whether the world cell (x, y) is visible.
func (vp *Viewport) Contains(x, y int) bool {
	return x >= vp.X && x < vp.X+vp.Width && y >= vp.Y && y < vp.Y+vp.Height
}

// Strategy decides where the viewport goes given the tracked target.
type Strategy interface {
	Update(vp *Viewport, target ecs.Position)
}

// Static never moves the viewport.
type Static struct{}

func (Static) Update(*Viewport, ecs.Position) {}

// FollowX scrolls horizontally once the target gets within a cell of the
// viewport's left edge or close to its right edge, placing the target
// Offset cells before the right edge.
type FollowX struct {
	Offset int
}

// NewFollowX creates a FollowX with the default offset.
func NewFollowX() *FollowX {
	return &FollowX{Offset: 16}
}

func (s *FollowX) Update(vp *Viewport, target ecs.Position) {
	vp.X = follow(vp.X, cell(target.X), s.Offset, vp.Width)
}

// FollowY is FollowX for the vertical axis.
type FollowY struct {
	Offset int
}

// NewFollowY creates a FollowY with the default offset.
func NewFollowY() *FollowY {
	return &FollowY{Offset: 3}
}

func (s *FollowY) Update(vp *Viewport, target ecs.Position) {
	vp.Y = follow(vp.Y, cell(target.Y), s.Offset, vp.Height)
}

// FollowXY follows vertically like FollowY and keeps the target between
// horizontal margins of XOffset cells.
type FollowXY struct {
	XOffset int
	YOffset int
}

// NewFollowXY creates a FollowXY with the default offsets.
func NewFollowXY() *FollowXY {
	return &FollowXY{XOffset: 10, YOffset: 3}
}

func (s *FollowXY) Update(vp *Viewport, target ecs.Position) {
	vp.Y = follow(vp.Y, cell(target.Y), s.YOffset, vp.Height)

	x := cell(target.X)
	left := s.XOffset
	right := max(vp.Width-s.XOffset-1, 0)
	switch {
	case x < vp.X+left:
		vp.X = max(x-left, 0)
	case x > vp.X+right:
		vp.X = max(x-right, 0)
	}
}

// follow returns the new cursor for one axis. The cursor stays put while
// the target is more than one cell past it and short of the far edge.
func follow(cursor, target, offset, screen int) int {
	diff := target - cursor
	if diff < 0 {
		diff = -diff
	}
	if diff > 1 && diff < screen-2 {
		return cursor
	}
	return max(target+offset-screen, 0)
}

func cell(v float64) int {
	return int(math.Floor(v))
}

// Track applies strategy to vp using the first entity marked with
// ecs.CameraFollow that has a position. It returns false when there is no
// such entity and leaves vp untouched.
func Track(scene *ecs.Scene, strategy Strategy, vp *Viewport) bool {
	for _, e := range scene.Each(ecs.HasCameraFollow | ecs.HasPosition) {
		strategy.Update(vp, *e.Position)
		return true
	}
	return false
}

// Named returns the strategy registered under name: "static", "x", "y" or
// "xy".
func Named(name string) (Strategy, error) {
	switch name {
	case "", "static":
		return Static{}, nil
	case "x":
		return NewFollowX(), nil
	case "y":
		return NewFollowY(), nil
	case "xy":
		return NewFollowXY(), nil
	}
	return nil, fmt.Errorf("unknown camera strategy %q", name)
}

// System tracks the camera target once per frame. Register it after
// ecs.MovementSystem.
type System struct {
	Strategy Strategy
	Viewport *Viewport
	Tracking bool
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	s.Tracking = Track(frame.Scene, s.Strategy, s.Viewport)
}

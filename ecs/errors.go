package ecs

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidComponent is matched by every *ComponentError.
var ErrInvalidComponent = errors.New("invalid component")

// ComponentKind identifies one of the component fields of an Entity.
type ComponentKind uint8

const (
	KindPosition ComponentKind = iota
	KindVelocity
	KindSize
	KindRender
	KindCameraFollow
)

func (k ComponentKind) String() string {
	switch k {
	case KindPosition:
		return "position"
	case KindVelocity:
		return "velocity"
	case KindSize:
		return "size"
	case KindRender:
		return "render"
	case KindCameraFollow:
		return "camera follow"
	}
	return fmt.Sprintf("ComponentKind(%d)", uint8(k))
}

// ComponentError reports a component rejected when an entity is added.
type ComponentError struct {
	Kind  ComponentKind
	Field string
	Value float64
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("invalid %s component: %s = %v", e.Kind, e.Field, e.Value)
}

func (e *ComponentError) Is(target error) bool {
	return target == ErrInvalidComponent
}

// validate rejects non-finite coordinates and negative or NaN sizes.
func validate(c Components) error {
	if p := c.Position; p != nil {
		if err := finite(KindPosition, "x", p.X); err != nil {
			return err
		}
		if err := finite(KindPosition, "y", p.Y); err != nil {
			return err
		}
	}
	if v := c.Velocity; v != nil {
		if err := finite(KindVelocity, "x", v.X); err != nil {
			return err
		}
		if err := finite(KindVelocity, "y", v.Y); err != nil {
			return err
		}
	}
	if s := c.Size; s != nil {
		if !(s.W >= 0) || math.IsInf(s.W, 1) {
			return &ComponentError{Kind: KindSize, Field: "width", Value: s.W}
		}
		if !(s.H >= 0) || math.IsInf(s.H, 1) {
			return &ComponentError{Kind: KindSize, Field: "height", Value: s.H}
		}
	}
	return nil
}

func finite(kind ComponentKind, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ComponentError{Kind: kind, Field: field, Value: v}
	}
	return nil
}

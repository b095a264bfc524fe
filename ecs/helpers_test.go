package ecs_test

import "github.com/plus3/hewn/ecs"

// Common component sets for tests

func wall(x, y, w, h float64) ecs.Components {
	return ecs.Components{
		Position: &ecs.Position{X: x, Y: y},
		Size:     &ecs.Size{W: w, H: h},
		Render:   &ecs.Render{Glyph: '#'},
	}
}

func mover(x, y, vx, vy, w, h float64) ecs.Components {
	return ecs.Components{
		Position: &ecs.Position{X: x, Y: y},
		Velocity: &ecs.Velocity{X: vx, Y: vy},
		Size:     &ecs.Size{W: w, H: h},
	}
}

func point(x, y, vx, vy float64) ecs.Components {
	return ecs.Components{
		Position: &ecs.Position{X: x, Y: y},
		Velocity: &ecs.Velocity{X: vx, Y: vy},
	}
}

func position(t interface{ Helper() }, scene *ecs.Scene, id ecs.EntityId) ecs.Position {
	t.Helper()
	e, ok := scene.Get(id)
	if !ok || e.Position == nil {
		return ecs.Position{}
	}
	return *e.Position
}

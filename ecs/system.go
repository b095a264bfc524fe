package ecs

// System represents a behavior that runs once per frame.
// User-defined systems implement this interface and can include Query fields
// for accessing entities, as well as custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// CollisionSystem runs the scene's collision pass for the frame's delta time
// and publishes the result in UpdateFrame.Collisions. Register it after the
// systems that set velocities and before the ones that react to collisions.
type CollisionSystem struct{}

func (CollisionSystem) Execute(frame *UpdateFrame) {
	frame.Collisions = frame.Scene.CollisionPass(frame.DeltaTime)
}

// MovementSystem integrates velocities into positions. Register it after the
// systems that react to collisions.
type MovementSystem struct{}

func (MovementSystem) Execute(frame *UpdateFrame) {
	frame.Scene.Step(frame.DeltaTime)
}

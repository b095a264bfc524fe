package ecs

// UpdateFrame carries the per-frame state shared by the systems run by a Scheduler.
type UpdateFrame struct {
	DeltaTime float64
	Scene     *Scene
	Commands  *Commands

	// Collisions holds the pairs found by CollisionSystem this frame. Systems
	// registered after it read and react to them.
	Collisions []Pair
}

func newUpdateFrame(dt float64, scene *Scene, commands *Commands) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Scene:     scene,
		Commands:  commands,
	}
}

package ecs

import "errors"

// Commands buffers structural changes to a Scene so systems can request them
// while iterating. The buffer is applied by Flush at the end of a frame.
type Commands struct {
	spawns  []Components
	removes []EntityId
	defers  []func()
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Defer queues a function to run after removals and spawns are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues the creation of an entity with the given components. The
// components are copied when the spawn is applied.
func (c *Commands) Spawn(components Components) {
	c.spawns = append(c.spawns, components)
}

// Remove queues the removal of an entity.
func (c *Commands) Remove(entity EntityId) {
	c.removes = append(c.removes, entity)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.removes) + len(c.defers)
}

// Flush applies removals, then spawns, then deferred functions to scene and
// resets the buffer. Spawns rejected by validation are skipped and their
// errors are returned joined.
func (c *Commands) Flush(scene *Scene) error {
	for _, id := range c.removes {
		scene.Remove(id)
	}

	var errs []error
	for _, components := range c.spawns {
		if _, err := scene.Add(components); err != nil {
			errs = append(errs, err)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.removes = c.removes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]

	return errors.Join(errs...)
}

package ecs

// Box is an axis-aligned bounding box covering [MinX, MaxX) × [MinY, MaxY).
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Overlaps reports whether b and o share any area. Edges that only touch do
// not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.MinX < o.MaxX && o.MinX < b.MaxX &&
		b.MinY < o.MaxY && o.MinY < b.MaxY
}

// BoxOf returns the collision box of e, or false if e lacks a Position or a
// Size. When e carries a Velocity the box is swept along it by velocity*dt,
// so it covers both the current and the projected position.
func BoxOf(e *Entity, dt float64) (Box, bool) {
	if e.Position == nil || e.Size == nil {
		return Box{}, false
	}

	var dx, dy float64
	if e.Velocity != nil {
		dx = e.Velocity.X * dt
		dy = e.Velocity.Y * dt
	}

	minX, maxX := sweep(e.Position.X, e.Size.W, dx)
	minY, maxY := sweep(e.Position.Y, e.Size.H, dy)
	return Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, true
}

func sweep(pos, size, delta float64) (lo, hi float64) {
	if delta >= 0 {
		return pos, pos + size + delta
	}
	return pos + delta, pos + size
}

// Collider is an entity's collision box as handed to a Broadphase.
type Collider struct {
	Id  EntityId
	Box Box
}

// CollisionPass reports every pair of entities whose boxes overlap, with
// moving boxes projected forward by velocity*dt. The scene is not modified.
// Pairs are [lower id, higher id] and sorted ascending.
func (s *Scene) CollisionPass(dt float64) []Pair {
	colliders := s.colliders[:0]
	for id, e := range s.Each(HasPosition | HasSize) {
		box, ok := BoxOf(e, dt)
		if !ok {
			continue
		}
		colliders = append(colliders, Collider{Id: id, Box: box})
	}
	s.colliders = colliders

	return s.broadphase.Pairs(colliders)
}

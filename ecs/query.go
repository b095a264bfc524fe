package ecs

import (
	"iter"
)

// Mask is a set of component kinds.
type Mask uint8

const (
	HasPosition     Mask = 1 << KindPosition
	HasVelocity     Mask = 1 << KindVelocity
	HasSize         Mask = 1 << KindSize
	HasRender       Mask = 1 << KindRender
	HasCameraFollow Mask = 1 << KindCameraFollow
)

// Contains reports whether every kind in other is also in m.
func (m Mask) Contains(other Mask) bool {
	return m&other == other
}

// Query caches the ids of the entities matching a mask for the duration of a
// frame. Systems declare Query fields and the Scheduler initializes them on
// registration and executes them before each frame.
type Query struct {
	Require Mask

	scene      *Scene
	cachedIds  []EntityId
	cacheValid bool
}

// NewQuery creates a Query over scene for entities carrying every kind in require.
func NewQuery(scene *Scene, require Mask) *Query {
	return &Query{
		Require: require,
		scene:   scene,
	}
}

// Init binds the Query to a scene. Called by the Scheduler during system registration.
func (q *Query) Init(scene *Scene) {
	q.scene = scene
	q.cacheValid = false
}

// Execute rebuilds the id cache.
// Called automatically by the Scheduler before systems run.
func (q *Query) Execute() {
	q.cachedIds = q.cachedIds[:0]
	for id := range q.scene.Each(q.Require) {
		q.cachedIds = append(q.cachedIds, id)
	}
	q.cacheValid = true
}

// Invalidate drops the cache so the next Iter panics until Execute runs again.
func (q *Query) Invalidate() {
	q.cacheValid = false
}

// Iter returns an iterator over the cached ids and their entities. Entities
// removed since Execute are skipped.
// Panics if Execute() has not been called this frame.
func (q *Query) Iter() iter.Seq2[EntityId, *Entity] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, *Entity) bool) {
		for _, id := range q.cachedIds {
			e, ok := q.scene.GetMut(id)
			if !ok {
				continue
			}
			if !yield(id, e) {
				return
			}
		}
	}
}

// Ids returns the cached ids.
// Panics if Execute() has not been called this frame.
func (q *Query) Ids() []EntityId {
	if !q.cacheValid {
		panic("Query.Ids() called before Query.Execute()")
	}
	return q.cachedIds
}

// Each returns an iterator over all entities carrying every kind in m, in
// ascending id order. A zero mask matches every entity. The loop body may
// Add or Remove entities: removed ones are not visited afterwards and added
// ones are not visited at all.
func (s *Scene) Each(m Mask) iter.Seq2[EntityId, *Entity] {
	return func(yield func(EntityId, *Entity) bool) {
		s.beginIter()
		defer s.endIter()

		for _, id := range s.ids {
			slot, ok := s.slots.Get(id)
			if !ok {
				continue
			}
			e := s.storage.Get(slot)
			if !e.Mask().Contains(m) {
				continue
			}
			if !yield(id, e) {
				return
			}
		}
	}
}

// CameraTargets returns the ids of the entities marked with CameraFollow.
func (s *Scene) CameraTargets() []EntityId {
	var ids []EntityId
	for id := range s.Each(HasCameraFollow) {
		ids = append(ids, id)
	}
	return ids
}

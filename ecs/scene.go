package ecs

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// Scene owns every entity of a game and runs the per-frame simulation.
// A Scene is not safe for concurrent use; it belongs to the goroutine that
// drives the game loop. Entities removed while the scene is being iterated
// are skipped by the rest of the iteration; entities added are not visited.
type Scene struct {
	storage blockStorage[Entity]
	slots   *intmap.Map[EntityId, int]
	ids     []EntityId
	lastId  EntityId

	// iterating counts the Each loops in progress. While it is non-zero,
	// Remove leaves ids untouched and sets stale; the last loop to finish
	// drops the removed ids.
	iterating int
	stale     bool

	broadphase Broadphase
	colliders  []Collider
	logger     *zap.Logger
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) SceneOption {
	return func(s *Scene) {
		s.logger = logger
	}
}

// WithBroadphase replaces the default AllPairs broad phase.
func WithBroadphase(bp Broadphase) SceneOption {
	return func(s *Scene) {
		s.broadphase = bp
	}
}

// NewScene creates an empty scene.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{
		slots:      intmap.New[EntityId, int](256),
		broadphase: AllPairs{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.broadphase == nil {
		s.broadphase = AllPairs{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Add stores a new entity holding copies of the given components and returns
// its id. Components with non-finite coordinates or a negative size are
// rejected with a *ComponentError and no id is consumed.
func (s *Scene) Add(c Components) (EntityId, error) {
	if err := validate(c); err != nil {
		s.logger.Debug("rejected entity", zap.Error(err))
		return NoEntity, err
	}

	id := s.lastId + 1
	s.lastId = id

	slot := s.storage.Append(Entity{Id: id, Components: c.clone()})
	s.slots.Put(id, slot)
	s.ids = append(s.ids, id)
	return id, nil
}

// MustAdd is like Add but panics if the components are invalid.
func (s *Scene) MustAdd(c Components) EntityId {
	id, err := s.Add(c)
	if err != nil {
		panic(err)
	}
	return id
}

// Get returns a copy of the entity record. The component pointers refer to
// scene-owned data and must be treated as read-only; use GetMut to modify.
func (s *Scene) Get(id EntityId) (Entity, bool) {
	e, ok := s.GetMut(id)
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// GetMut returns the scene's entity record for in-place modification. The
// pointer stays valid until the entity is removed or the scene is compacted.
func (s *Scene) GetMut(id EntityId) (*Entity, bool) {
	slot, ok := s.slots.Get(id)
	if !ok {
		return nil, false
	}
	return s.storage.Get(slot), true
}

// Contains reports whether id refers to a live entity.
func (s *Scene) Contains(id EntityId) bool {
	_, ok := s.slots.Get(id)
	return ok
}

// Remove deletes the entity. Its id is never issued again. Returns false if
// the id is unknown or already removed.
func (s *Scene) Remove(id EntityId) bool {
	slot, ok := s.slots.Get(id)
	if !ok {
		return false
	}
	s.slots.Del(id)
	s.storage.Delete(slot)

	if s.iterating > 0 {
		s.stale = true
		return true
	}
	if i, found := slices.BinarySearch(s.ids, id); found {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
	return true
}

// Len returns the number of live entities.
func (s *Scene) Len() int {
	return s.slots.Len()
}

// Ids returns the live entity ids in ascending order.
func (s *Scene) Ids() []EntityId {
	ids := make([]EntityId, 0, s.Len())
	for _, id := range s.ids {
		if s.Contains(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Entities returns an iterator over all live entities in ascending id order.
func (s *Scene) Entities() iter.Seq2[EntityId, *Entity] {
	return s.Each(0)
}

// Compact packs entity storage after many removals. Pointers returned by
// GetMut before Compact are stale afterwards.
func (s *Scene) Compact() {
	remap := s.storage.Compact()
	for _, id := range s.ids {
		if old, ok := s.slots.Get(id); ok {
			s.slots.Put(id, remap[old])
		}
	}
	s.logger.Debug("compacted scene", zap.Int("entities", s.Len()))
}

// Step integrates velocity into position for every entity carrying both:
// position += velocity * dt, with dt in seconds. dt is applied as given.
func (s *Scene) Step(dt float64) {
	for _, e := range s.Each(HasPosition | HasVelocity) {
		e.Position.X += e.Velocity.X * dt
		e.Position.Y += e.Velocity.Y * dt
	}
}

func (s *Scene) beginIter() {
	s.iterating++
}

func (s *Scene) endIter() {
	s.iterating--
	if s.iterating == 0 && s.stale {
		s.ids = slices.DeleteFunc(s.ids, func(id EntityId) bool {
			return !s.Contains(id)
		})
		s.stale = false
	}
}

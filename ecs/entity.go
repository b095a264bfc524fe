package ecs

// EntityId is the only handle to an entity. Ids are issued in increasing
// order starting at 1 and are never reissued by the same Scene.
type EntityId uint64

// NoEntity is the zero EntityId. Scenes never issue it.
const NoEntity EntityId = 0

// Entity is a fixed-shape record holding an optional instance of each
// component kind.
type Entity struct {
	Id EntityId
	Components
}

// Pair is an unordered pair of colliding entities, stored as
// [lower id, higher id].
type Pair [2]EntityId

// newPair normalizes a and b into ascending order.
func newPair(a, b EntityId) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{a, b}
}

// Has reports whether id is one of the two entities in the pair.
func (p Pair) Has(id EntityId) bool {
	return p[0] == id || p[1] == id
}

// Other returns the entity paired with id, or NoEntity if id is not part of p.
func (p Pair) Other(id EntityId) EntityId {
	switch id {
	case p[0]:
		return p[1]
	case p[1]:
		return p[0]
	}
	return NoEntity
}

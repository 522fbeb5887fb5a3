package ecs

import "fmt"

// Entity is a handle to a game object in a World. The ID indexes the
// world's entity table and the Generation guards against stale handles
// after an ID has been recycled.
type Entity struct {
	ID         uint32
	Generation uint32
}

// Nil is the zero handle. It never refers to a live entity.
var Nil = Entity{}

// IsNil reports whether e is the zero handle.
func (e Entity) IsNil() bool {
	return e == Nil
}

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.ID, e.Generation)
}

// entityRecord holds the per-ID state of an entity.
type entityRecord struct {
	name       string
	generation uint32
	alive      bool
	// dying is set once deletion has been requested. No components can be
	// added from then on.
	dying bool
	// comps maps a component type to the storage indices of the entity's
	// components of that type, in insertion order.
	comps map[ComponentID][]int
}

func (r *entityRecord) reset() {
	r.name = ""
	r.alive = false
	r.dying = false
	r.comps = nil
}

// lastIndex returns the most recently added index for a component type.
func (r *entityRecord) lastIndex(id ComponentID) (int, bool) {
	idx := r.comps[id]
	if len(idx) == 0 {
		return 0, false
	}
	return idx[len(idx)-1], true
}

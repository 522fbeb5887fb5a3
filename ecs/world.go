package ecs

import (
	"math"
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// MaxComponentTypes is the number of distinct component types a World can hold.
const MaxComponentTypes = math.MaxUint16

var (
	// ErrEntityNotFound is returned for handles that do not refer to a live entity.
	ErrEntityNotFound = eris.New("entity not found")
)

// Option configures a World.
type Option func(w *World)

// WithLogger sets the logger used for world diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithCapacity preallocates room for n entities.
func WithCapacity(n int) Option {
	return func(w *World) {
		w.entities = make([]entityRecord, 0, n)
	}
}

// World manages all entities and components
type World struct {
	entities []entityRecord
	freeIDs  []uint32
	// entityIDs maps entity names to IDs. Duplicate names overwrite.
	entityIDs     map[string]uint32
	typeToStorage map[reflect.Type]componentStore
	// updaters is indexed by ComponentID, in registration order.
	updaters       []componentStore
	resources      Resources
	eventManager   *EventManager
	logger         zerolog.Logger
	ticks          uint64
	busy           int
	pendingDeletes []Entity
}

// NewWorld creates a new ECS world
func NewWorld(opts ...Option) *World {
	w := &World{
		entityIDs:     make(map[string]uint32),
		typeToStorage: make(map[reflect.Type]componentStore),
		eventManager:  NewEventManager(),
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Logger returns the world's logger.
func (w *World) Logger() *zerolog.Logger {
	return &w.logger
}

// Events returns the world's event manager
func (w *World) Events() *EventManager {
	return w.eventManager
}

// Ticks returns how many times Update has completed.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// NewEntity creates a named entity. If another live entity already uses the
// name, the name lookup is repointed to the new entity; the old one keeps
// living and stays reachable through its handle.
func (w *World) NewEntity(name string) Entity {
	var id uint32
	if n := len(w.freeIDs); n > 0 {
		id = w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
	} else {
		id = uint32(len(w.entities))
		w.entities = append(w.entities, entityRecord{})
	}
	rec := &w.entities[id]
	rec.generation++
	rec.alive = true
	rec.name = name
	rec.comps = make(map[ComponentID][]int)
	e := Entity{ID: id, Generation: rec.generation}

	if prev, ok := w.entityIDs[name]; ok && w.entities[prev].alive {
		w.logger.Warn().
			Str("name", name).
			Uint32("previous_id", prev).
			Stringer("entity", e).
			Msg("duplicate entity name, name lookup now points to the new entity")
	}
	w.entityIDs[name] = id

	w.logger.Debug().Str("name", name).Stringer("entity", e).Msg("entity created")
	w.eventManager.Emit(EntityCreated{Entity: e, Name: name})
	return e
}

// record returns the live record for e.
func (w *World) record(e Entity) (*entityRecord, bool) {
	if int(e.ID) >= len(w.entities) {
		return nil, false
	}
	rec := &w.entities[e.ID]
	if !rec.alive || rec.generation != e.Generation {
		return nil, false
	}
	return rec, true
}

// Alive reports whether e refers to a live entity.
func (w *World) Alive(e Entity) bool {
	_, ok := w.record(e)
	return ok
}

// Lookup returns the entity currently registered under name.
func (w *World) Lookup(name string) (Entity, bool) {
	id, ok := w.entityIDs[name]
	if !ok {
		return Nil, false
	}
	rec := &w.entities[id]
	if !rec.alive {
		return Nil, false
	}
	return Entity{ID: id, Generation: rec.generation}, true
}

// Name returns the name e was created with.
func (w *World) Name(e Entity) (string, bool) {
	rec, ok := w.record(e)
	if !ok {
		return "", false
	}
	return rec.name, true
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities) - len(w.freeIDs)
}

// Entities returns all live entities ordered by ID.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, w.Len())
	for id := range w.entities {
		rec := &w.entities[id]
		if rec.alive {
			out = append(out, Entity{ID: uint32(id), Generation: rec.generation})
		}
	}
	return out
}

// ComponentTypes describes every registered component type in registration order.
func (w *World) ComponentTypes() []ComponentType {
	out := make([]ComponentType, 0, len(w.updaters))
	for _, s := range w.updaters {
		out = append(out, ComponentType{ID: s.componentID(), Name: s.componentName(), Count: s.len()})
	}
	return out
}

// storageFor returns the storage for C, creating it and appending its
// updater the first time C is used.
func storageFor[C any, P ComponentPtr[C]](w *World) *storage[C, P] {
	t := reflect.TypeFor[C]()
	if s, ok := w.typeToStorage[t]; ok {
		return s.(*storage[C, P])
	}
	if len(w.updaters) >= MaxComponentTypes {
		panic("ecs: too many component types")
	}
	s := &storage[C, P]{
		id:   ComponentID(len(w.updaters)),
		name: componentName[C, P](),
	}
	w.typeToStorage[t] = s
	w.updaters = append(w.updaters, s)
	w.logger.Debug().Uint16("component_id", uint16(s.id)).Str("component", s.name).Msg("component registered")
	return s
}

// AddComponent adds a new component of type C to e and returns its index
// in the type's storage. The component is default-constructed, its Create
// hook runs, then configure (if not nil) runs before it is stored. An
// entity may hold several components of the same type; GetComponent
// returns the most recent one.
func AddComponent[C any, P ComponentPtr[C]](w *World, e Entity, configure func(P)) (int, error) {
	if rec, ok := w.record(e); !ok || rec.dying {
		return -1, eris.Wrapf(ErrEntityNotFound, "add %s to entity %s", componentName[C, P](), e)
	}
	s := storageFor[C, P](w)

	c := new(C)
	w.busy++
	P(c).Create(w, e)
	if configure != nil {
		configure(P(c))
	}
	w.busy--

	rec, ok := w.record(e)
	if !ok || rec.dying {
		if d, ok := any(P(c)).(Destroyer); ok {
			d.Destroy()
		}
		w.settle()
		return -1, eris.Wrapf(ErrEntityNotFound, "entity %s deleted while adding %s", e, s.name)
	}
	nth := len(rec.comps[s.id])
	idx := s.push(c, slotOwner{entity: e.ID, nth: nth})
	rec.comps[s.id] = append(rec.comps[s.id], idx)

	w.eventManager.Emit(ComponentAdded{Entity: e, Component: s.id, Index: idx})
	w.settle()
	return idx, nil
}

// typedStore is implemented by every storage[C, P] for its C.
type typedStore[C any] interface {
	get(idx int) (*C, bool)
}

func lookupStore[C any](w *World) (componentStore, typedStore[C], bool) {
	s, ok := w.typeToStorage[reflect.TypeFor[C]()]
	if !ok {
		return nil, nil, false
	}
	return s, s.(typedStore[C]), true
}

// GetComponent returns the most recently added component of type C on e, or
// nil and false if e has none or is not alive.
func GetComponent[C any](w *World, e Entity) (*C, bool) {
	rec, ok := w.record(e)
	if !ok {
		return nil, false
	}
	s, ts, ok := lookupStore[C](w)
	if !ok {
		return nil, false
	}
	idx, ok := rec.lastIndex(s.componentID())
	if !ok {
		return nil, false
	}
	return ts.get(idx)
}

// Components returns all components of type C on e in insertion order.
func Components[C any](w *World, e Entity) []*C {
	rec, ok := w.record(e)
	if !ok {
		return nil
	}
	s, ts, ok := lookupStore[C](w)
	if !ok {
		return nil
	}
	idxs := rec.comps[s.componentID()]
	out := make([]*C, 0, len(idxs))
	for _, idx := range idxs {
		if c, ok := ts.get(idx); ok {
			out = append(out, c)
		}
	}
	return out
}

// ComponentIndices returns the storage indices of e's components of type C.
func ComponentIndices[C any](w *World, e Entity) []int {
	rec, ok := w.record(e)
	if !ok {
		return nil
	}
	s, _, ok := lookupStore[C](w)
	if !ok {
		return nil
	}
	return slices.Clone(rec.comps[s.componentID()])
}

// Update runs every component updater once, in the order the component types
// were first used. Component types first used during the update start being
// updated on the next call. Deletions requested during the update are applied
// when it returns.
func (w *World) Update() {
	w.busy++
	n := len(w.updaters)
	for i := 0; i < n; i++ {
		w.updaters[i].update()
	}
	w.busy--
	w.ticks++
	w.settle()
}

// DeleteEntity removes e and all of its components. Components implementing
// Destroyer are destroyed first. While the world is updating or adding a
// component the deletion is queued and applied afterwards.
func (w *World) DeleteEntity(e Entity) error {
	rec, ok := w.record(e)
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "delete entity %s", e)
	}
	if rec.dying {
		return nil
	}
	if w.busy > 0 {
		rec.dying = true
		w.pendingDeletes = append(w.pendingDeletes, e)
		return nil
	}
	w.deleteNow(e)
	w.settle()
	return nil
}

// DeleteEntityByName deletes the entity the name currently resolves to.
func (w *World) DeleteEntityByName(name string) error {
	e, ok := w.Lookup(name)
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "delete entity %q", name)
	}
	return w.DeleteEntity(e)
}

func (w *World) deleteNow(e Entity) {
	w.busy++
	w.entities[e.ID].dying = true
	comps := w.entities[e.ID].comps
	for id, idxs := range comps {
		s := w.updaters[id]
		sorted := slices.Clone(idxs)
		slices.Sort(sorted)
		// Highest first, so whatever moves into a hole belongs to another entity.
		for k := len(sorted) - 1; k >= 0; k-- {
			idx := sorted[k]
			owner, moved := s.remove(idx)
			if moved {
				w.entities[owner.entity].comps[id][owner.nth] = idx
			}
		}
	}

	rec := &w.entities[e.ID]
	name := rec.name
	if id, ok := w.entityIDs[name]; ok && id == e.ID {
		delete(w.entityIDs, name)
	}
	rec.reset()
	w.freeIDs = append(w.freeIDs, e.ID)
	w.busy--

	w.logger.Debug().Str("name", name).Stringer("entity", e).Msg("entity deleted")
	w.eventManager.Emit(EntityDeleted{Entity: e, Name: name})
}

// settle applies queued deletions once no update or add is in progress.
func (w *World) settle() {
	if w.busy > 0 {
		return
	}
	for len(w.pendingDeletes) > 0 {
		e := w.pendingDeletes[0]
		w.pendingDeletes = w.pendingDeletes[1:]
		if _, ok := w.record(e); ok {
			w.deleteNow(e)
		}
	}
}

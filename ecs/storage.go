package ecs

// componentStore is the type-independent view of a component storage. Each
// store doubles as the updater for its component type.
type componentStore interface {
	componentID() ComponentID
	componentName() string
	len() int
	// update calls Update on every instance present when the call began.
	update()
	// remove swap-removes the component at idx and returns the owner and
	// slot of the component that moved into idx, if any.
	remove(idx int) (owner slotOwner, moved bool)
}

// slotOwner identifies which entity owns a stored component and at which
// position of the entity's index list for that type the index is kept.
type slotOwner struct {
	entity uint32
	nth    int
}

// storage is the growable list of all components of type C.
type storage[C any, P ComponentPtr[C]] struct {
	id     ComponentID
	name   string
	items  []*C
	owners []slotOwner
}

func (s *storage[C, P]) componentID() ComponentID {
	return s.id
}

func (s *storage[C, P]) componentName() string {
	return s.name
}

func (s *storage[C, P]) len() int {
	return len(s.items)
}

func (s *storage[C, P]) push(c *C, owner slotOwner) int {
	s.items = append(s.items, c)
	s.owners = append(s.owners, owner)
	return len(s.items) - 1
}

func (s *storage[C, P]) get(idx int) (*C, bool) {
	if idx < 0 || idx >= len(s.items) {
		return nil, false
	}
	return s.items[idx], true
}

func (s *storage[C, P]) update() {
	n := len(s.items)
	for i := 0; i < n; i++ {
		P(s.items[i]).Update()
	}
}

func (s *storage[C, P]) remove(idx int) (slotOwner, bool) {
	if d, ok := any(P(s.items[idx])).(Destroyer); ok {
		d.Destroy()
	}
	last := len(s.items) - 1
	moved := idx != last
	if moved {
		s.items[idx] = s.items[last]
		s.owners[idx] = s.owners[last]
	}
	s.items[last] = nil
	s.items = s.items[:last]
	s.owners = s.owners[:last]
	if !moved {
		return slotOwner{}, false
	}
	return s.owners[idx], true
}

package ecs

import (
	"reflect"
)

// ComponentID is a unique identifier for component types within a World
type ComponentID uint16

// Component is the capability set every component type provides through its
// pointer type. Create is called once on a zero value before the component is
// stored; Update is called once per tick.
type Component interface {
	Create(w *World, e Entity)
	Update()
}

// Destroyer is implemented by components that need to release resources
// when their entity is deleted.
type Destroyer interface {
	Destroy()
}

// Named lets a component type choose the name it is registered under.
type Named interface {
	ComponentName() string
}

// ComponentPtr constrains P to be *C and to implement Component.
type ComponentPtr[C any] interface {
	*C
	Component
}

// ComponentType describes a registered component type.
type ComponentType struct {
	ID   ComponentID
	Name string
	// Count is the number of live instances at the time of the call.
	Count int
}

// componentName returns the registration name for C.
func componentName[C any, P ComponentPtr[C]]() string {
	var zero C
	if n, ok := any(P(&zero)).(Named); ok {
		return n.ComponentName()
	}
	return reflect.TypeFor[C]().String()
}

// RegisterComponent registers component type C with the world and returns
// its ID. Registering an already known type returns the existing ID. Types
// are also registered lazily the first time they are added to an entity.
func RegisterComponent[C any, P ComponentPtr[C]](w *World) ComponentID {
	return storageFor[C, P](w).id
}

// LookupComponent returns the ID of C if it has been registered.
func LookupComponent[C any](w *World) (ComponentID, bool) {
	s, ok := w.typeToStorage[reflect.TypeFor[C]()]
	if !ok {
		return 0, false
	}
	return s.componentID(), true
}

package ecs

import "reflect"

// Resources is a type-keyed store of world singletons such as the renderer
// or the asset library. At most one value per type is kept.
type Resources struct {
	items map[reflect.Type]any
}

// SetResource stores v as the world's resource of type *T, replacing any
// previous value.
func SetResource[T any](w *World, v *T) {
	if v == nil {
		panic("ecs: cannot set nil resource")
	}
	r := &w.resources
	if r.items == nil {
		r.items = make(map[reflect.Type]any)
	}
	r.items[reflect.TypeFor[T]()] = v
}

// GetResource returns the world's resource of type *T.
func GetResource[T any](w *World) (*T, bool) {
	v, ok := w.resources.items[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// RemoveResource drops the resource of type *T and reports whether it existed.
func RemoveResource[T any](w *World) bool {
	t := reflect.TypeFor[T]()
	if _, ok := w.resources.items[t]; !ok {
		return false
	}
	delete(w.resources.items, t)
	return true
}

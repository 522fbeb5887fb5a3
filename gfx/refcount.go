package gfx

import "sync/atomic"

// refCount tracks shared ownership of a graphics resource. A resource starts
// with one reference; the free func runs when the last one is released.
type refCount struct {
	refs atomic.Int32
	free func()
}

func (r *refCount) init(free func()) {
	r.refs.Store(1)
	r.free = free
}

// Retain adds a reference.
func (r *refCount) Retain() {
	r.refs.Add(1)
}

// Release drops a reference and reports whether it was the last one.
// Releasing an already freed resource does nothing.
func (r *refCount) Release() bool {
	for {
		n := r.refs.Load()
		if n <= 0 {
			return false
		}
		if !r.refs.CompareAndSwap(n, n-1) {
			continue
		}
		if n == 1 {
			if r.free != nil {
				r.free()
			}
			return true
		}
		return false
	}
}

// Refs returns the current reference count.
func (r *refCount) Refs() int {
	return int(r.refs.Load())
}

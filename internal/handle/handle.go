// Package handle maps opaque integer handles to Go values for host
// boundaries that cannot hold Go pointers.
//
// Handles start at 1 and are never reused, so 0 and released handles always
// resolve to nil. Lookups go through sync.Map and do not take a mutex on
// the audio thread.
package handle

import (
	"sync"
	"sync/atomic"
)

// Registry owns values of type T behind opaque handles.
type Registry[T any] struct {
	items sync.Map
	next  atomic.Uintptr
}

// Register stores v and returns its handle. A nil v returns 0.
func (r *Registry[T]) Register(v *T) uintptr {
	if v == nil {
		return 0
	}
	id := r.next.Add(1)
	r.items.Store(id, v)
	return id
}

// Load returns the value for id, or nil when id is 0, unknown or released.
func (r *Registry[T]) Load(id uintptr) *T {
	if id == 0 {
		return nil
	}
	v, ok := r.items.Load(id)
	if !ok {
		return nil
	}
	return v.(*T)
}

// Release forgets id and returns the value it held, or nil.
func (r *Registry[T]) Release(id uintptr) *T {
	if id == 0 {
		return nil
	}
	v, ok := r.items.LoadAndDelete(id)
	if !ok {
		return nil
	}
	return v.(*T)
}

// Len returns the number of live handles.
func (r *Registry[T]) Len() int {
	n := 0
	r.items.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Package wasmheap hands out float32 regions addressed by their location in
// linear memory, so a WebAssembly host can read and write sample blocks in
// place.
//
// A region stays referenced by the Heap until Free, which keeps the garbage
// collector from reclaiming memory the host still points at. Freed regions
// are recycled through a per-size sync.Pool.
package wasmheap

import (
	"fmt"
	"sync"
	"unsafe"
)

// Heap tracks live regions by address.
type Heap struct {
	live sync.Map // uintptr -> *[]float32

	mu    sync.Mutex
	pools map[int]*sync.Pool
}

// New returns an empty heap.
func New() *Heap {
	return &Heap{pools: make(map[int]*sync.Pool)}
}

// Alloc returns the address of a zeroed region of n floats, or 0 when n <= 0.
func (h *Heap) Alloc(n int) uintptr {
	if n <= 0 {
		return 0
	}

	region := h.pool(n).Get().(*[]float32)
	for i := range *region {
		(*region)[i] = 0
	}

	ptr := uintptr(unsafe.Pointer(&(*region)[0]))
	h.live.Store(ptr, region)
	return ptr
}

// Slice returns the first n floats of the live region at ptr, or nil when
// ptr is unknown or n is out of range.
func (h *Heap) Slice(ptr uintptr, n int) []float32 {
	if ptr == 0 || n < 0 {
		return nil
	}
	v, ok := h.live.Load(ptr)
	if !ok {
		return nil
	}
	region := *v.(*[]float32)
	if n > len(region) {
		return nil
	}
	return region[:n]
}

// Free releases the region at ptr. n must equal the size it was allocated
// with.
func (h *Heap) Free(ptr uintptr, n int) error {
	if ptr == 0 {
		return nil
	}
	v, ok := h.live.Load(ptr)
	if !ok {
		return fmt.Errorf("wasmheap free of unknown region: %#x", ptr)
	}
	region := v.(*[]float32)
	if len(*region) != n {
		return fmt.Errorf("wasmheap free size mismatch at %#x: allocated %d, freed %d",
			ptr, len(*region), n)
	}

	h.live.Delete(ptr)
	h.pool(n).Put(region)
	return nil
}

// Live returns the number of allocated regions.
func (h *Heap) Live() int {
	n := 0
	h.live.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (h *Heap) pool(n int) *sync.Pool {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.pools[n]
	if !ok {
		p = &sync.Pool{
			New: func() any {
				s := make([]float32, n)
				return &s
			},
		}
		h.pools[n] = p
	}
	return p
}

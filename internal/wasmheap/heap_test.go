package wasmheap

import "testing"

func TestAllocSliceFree(t *testing.T) {
	h := New()

	ptr := h.Alloc(128)
	if ptr == 0 {
		t.Fatal("Alloc(128) returned 0")
	}

	s := h.Slice(ptr, 128)
	if len(s) != 128 {
		t.Fatalf("Slice len: got %d want 128", len(s))
	}
	for i, v := range s {
		if v != 0 {
			t.Fatalf("fresh region[%d] = %v, want 0", i, v)
		}
	}

	s[5] = 3
	if got := h.Slice(ptr, 6)[5]; got != 3 {
		t.Fatalf("write not visible through Slice: got %v", got)
	}

	if err := h.Free(ptr, 128); err != nil {
		t.Fatalf("Free() error = %v", err)
	}
	if h.Slice(ptr, 1) != nil {
		t.Fatal("Slice after Free should be nil")
	}
	if h.Live() != 0 {
		t.Fatalf("Live: got %d want 0", h.Live())
	}
}

func TestAllocNonPositive(t *testing.T) {
	h := New()
	if ptr := h.Alloc(0); ptr != 0 {
		t.Fatalf("Alloc(0): got %#x want 0", ptr)
	}
	if ptr := h.Alloc(-4); ptr != 0 {
		t.Fatalf("Alloc(-4): got %#x want 0", ptr)
	}
	if err := h.Free(0, 10); err != nil {
		t.Fatalf("Free(0) error = %v", err)
	}
}

func TestFreeSizeMismatch(t *testing.T) {
	h := New()
	ptr := h.Alloc(64)

	if err := h.Free(ptr, 32); err == nil {
		t.Fatal("expected error for size mismatch")
	}
	if h.Slice(ptr, 64) == nil {
		t.Fatal("region must stay live after a rejected Free")
	}
	if err := h.Free(ptr, 64); err != nil {
		t.Fatalf("Free() error = %v", err)
	}
	if err := h.Free(ptr, 64); err == nil {
		t.Fatal("expected error for double free")
	}
}

func TestSliceBounds(t *testing.T) {
	h := New()
	ptr := h.Alloc(16)

	if h.Slice(ptr, 17) != nil {
		t.Fatal("Slice beyond region should be nil")
	}
	if h.Slice(ptr, -1) != nil {
		t.Fatal("negative Slice should be nil")
	}
	if h.Slice(ptr+4, 4) != nil {
		t.Fatal("interior address is not a region")
	}
}

func TestRecycledRegionIsZeroed(t *testing.T) {
	h := New()
	ptr := h.Alloc(8)
	s := h.Slice(ptr, 8)
	for i := range s {
		s[i] = 1
	}
	if err := h.Free(ptr, 8); err != nil {
		t.Fatal(err)
	}

	again := h.Slice(h.Alloc(8), 8)
	for i, v := range again {
		if v != 0 {
			t.Fatalf("recycled region[%d] = %v, want 0", i, v)
		}
	}
}

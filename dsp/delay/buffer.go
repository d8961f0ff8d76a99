// Package delay provides the fixed-capacity circular sample buffer that backs
// the echo engine. Capacity is chosen once at construction; nothing on the
// read/write path allocates or resizes.
package delay

import "fmt"

// MaxSamples is the capacity of the engine's delay buffer: 4 s at 48 kHz.
const MaxSamples = 192000

// Buffer is a circular buffer of mono samples indexed modulo its capacity.
type Buffer struct {
	samples []float64
}

// New returns a zeroed buffer of fixed capacity.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("delay buffer capacity must be > 0: %d", capacity)
	}
	return &Buffer{samples: make([]float64, capacity)}, nil
}

// Len returns the buffer capacity.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Wrap maps any position into [0, Len()).
func (b *Buffer) Wrap(pos int) int {
	size := len(b.samples)
	if pos >= 0 && pos < size {
		return pos
	}
	if pos < 0 && pos > -size {
		return pos + size
	}
	pos %= size
	if pos < 0 {
		pos += size
	}
	return pos
}

// Write stores v at pos modulo capacity.
func (b *Buffer) Write(pos int, v float64) {
	b.samples[b.Wrap(pos)] = v
}

// Read returns the sample stored at pos modulo capacity.
func (b *Buffer) Read(pos int) float64 {
	return b.samples[b.Wrap(pos)]
}

// Fill sets every slot to v.
func (b *Buffer) Fill(v float64) {
	for i := range b.samples {
		b.samples[i] = v
	}
}

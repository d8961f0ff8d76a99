// Package playback renders echo engine output as the interleaved
// little-endian float32 byte stream audio device players pull from.
package playback

import (
	"encoding/binary"
	"math"
	"sync"
)

// Source fills dst with interleaved stereo float32 frames.
type Source interface {
	Process(dst []float32)
}

// Reader adapts a Source to the io.Reader oto pulls little-endian float32
// bytes from.
type Reader struct {
	mu     sync.Mutex
	source Source
	buf    []float32
}

// NewReader returns a Reader over src. frames sizes the initial scratch
// buffer so steady-state reads do not allocate.
func NewReader(src Source, frames int) *Reader {
	if frames < 1 {
		frames = 1
	}
	return &Reader{source: src, buf: make([]float32, 2*frames)}
}

// Read renders len(p)/8 stereo frames into p.
func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)

	for i, v := range r.buf {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return frames * 8, nil
}

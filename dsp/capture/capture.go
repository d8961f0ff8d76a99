// Package capture records recent per-voice tap output for host-side display.
//
// Every voice slot owns a fixed ring of Size samples. All rings share one
// write index that advances once per processed sample, so a host can rebuild
// chronological order for any voice by rotating from WriteIndex.
package capture

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/meko-christian/algo-approx"

	"github.com/cwbudde/kodama-dsp/dsp/tap"
)

// Size is the number of samples kept per voice.
const Size = 512

const (
	ln10       = 2.302585092994045684017991454684
	silenceDB  = -130.0
	silenceLin = 3.1622776601683794e-07 // 10^(silenceDB/20)
)

// silent is returned for voice indices outside the capture.
var silent [Size]float64

// Capture holds one ring per supported voice.
type Capture struct {
	rings   [tap.MaxVoices][Size]float64
	write   int
}

// Record stores v for voice at the current write index. Out-of-range voices
// are ignored.
func (c *Capture) Record(voice int, v float64) {
	if voice < 0 || voice >= tap.MaxVoices {
		return
	}
	c.rings[voice][c.write] = v
}

// Advance moves the shared write index forward by one sample.
func (c *Capture) Advance() {
	c.write++
	if c.write >= Size {
		c.write = 0
	}
}

// WriteIndex returns the slot the next sample will be written to, which is
// also the oldest sample in every ring.
func (c *Capture) WriteIndex() int {
	return c.write
}

// Reset zeroes all rings and rewinds the write index.
func (c *Capture) Reset() {
	for v := range c.rings {
		for i := range c.rings[v] {
			c.rings[v][i] = 0
		}
	}
	c.write = 0
}

// Voice returns a read-only view of the raw ring for voice index. Indices
// outside [0, tap.MaxVoices) yield an all-zero ring.
func (c *Capture) Voice(index int) []float64 {
	if index < 0 || index >= tap.MaxVoices {
		return silent[:]
	}
	return c.rings[index][:]
}

// CopyRotated writes the ring for voice index into dst oldest-first and
// returns the number of samples written.
func (c *Capture) CopyRotated(index int, dst []float64) int {
	ring := c.Voice(index)
	n := len(dst)
	if n > Size {
		n = Size
	}
	head := copy(dst[:n], ring[c.write:])
	copy(dst[head:n], ring[:c.write])
	return n
}

// Level summarizes the captured signal of one voice.
type Level struct {
	Peak   float64
	RMS    float64
	PeakDB float64
}

// Level measures peak and RMS over the whole ring of voice index. It only
// reads capture state, so concurrent readers do not interfere with each
// other; they still must not overlap with processing.
func (c *Capture) Level(index int) Level {
	ring := c.Voice(index)
	var squares [Size]float64
	sq := squares[:]
	vecmath.MulBlock(sq, ring, ring)

	peak := 0.0
	sum := 0.0
	for i, v := range ring {
		if a := math.Abs(v); a > peak {
			peak = a
		}
		sum += sq[i]
	}
	return Level{
		Peak:   peak,
		RMS:    math.Sqrt(sum / Size),
		PeakDB: FastDB(peak),
	}
}

// FastDB converts a linear amplitude to dBFS for display, floored at
// -130 dB.
func FastDB(linear float64) float64 {
	if linear <= silenceLin || math.IsNaN(linear) {
		return silenceDB
	}
	return 20 * approx.FastLog(linear) / ln10
}

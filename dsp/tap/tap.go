// Package tap derives the read offsets and gains of a multi-tap echo.
//
// Taps decay geometrically by DecayPerTap and are normalized so the summed
// tap energy is one for any voice count. Consecutive taps are staggered by
// base*(voices+1)/voices samples instead of plain multiples of the base
// delay.
package tap

import (
	"math"

	"github.com/cwbudde/kodama-dsp/dsp/delay"
)

const (
	// MaxVoices is the largest supported number of taps.
	MaxVoices = 16

	// DecayPerTap is the amplitude ratio between neighboring taps before
	// normalization.
	DecayPerTap = 0.75
)

// ClampVoices limits n to [1, MaxVoices].
func ClampVoices(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxVoices {
		return MaxVoices
	}
	return n
}

// Gain returns the normalized gain of tap index for the given voice count.
// The squares of all gains for one voice count sum to one.
func Gain(index, voices int) float64 {
	voices = ClampVoices(voices)
	if index < 0 || index >= voices {
		return 0
	}

	total := 0.0
	for k := 0; k < voices; k++ {
		total += math.Pow(DecayPerTap, float64(2*k))
	}
	return math.Pow(DecayPerTap, float64(index)) / math.Sqrt(total)
}

// Delay returns the read offset in samples of tap index for a base delay of
// base samples. The result never exceeds delay.MaxSamples-1.
func Delay(index, voices, base int) int {
	d := base * (index + 1)
	if voices > 1 {
		d += base * index / voices
	}
	if d > delay.MaxSamples-1 {
		return delay.MaxSamples - 1
	}
	return d
}

// Spacing returns the nominal distance in samples between consecutive taps.
func Spacing(voices, base int) float64 {
	voices = ClampVoices(voices)
	if voices == 1 {
		return float64(base)
	}
	return float64(base) * float64(voices+1) / float64(voices)
}

// Geometry caches the delays and gains for one (voices, base) pair.
// The zero value is empty; call Update before reading it.
type Geometry struct {
	voices int
	base   int
	delays [MaxVoices]int
	gains  [MaxVoices]float64
}

// Update recomputes the tap table when voices or base changed and reports
// whether it did.
func (g *Geometry) Update(voices, base int) bool {
	voices = ClampVoices(voices)
	if voices == g.voices && base == g.base {
		return false
	}
	g.voices = voices
	g.base = base

	total := 0.0
	raw := 1.0
	for i := 0; i < voices; i++ {
		g.gains[i] = raw
		total += raw * raw
		raw *= DecayPerTap
	}
	norm := 1 / math.Sqrt(total)
	for i := 0; i < MaxVoices; i++ {
		if i < voices {
			g.gains[i] *= norm
			g.delays[i] = Delay(i, voices, base)
			continue
		}
		g.gains[i] = 0
		g.delays[i] = 0
	}
	return true
}

// Voices returns the cached voice count.
func (g *Geometry) Voices() int { return g.voices }

// Base returns the cached base delay in samples.
func (g *Geometry) Base() int { return g.base }

// Delays returns the cached tap delays. The slice aliases the cache.
func (g *Geometry) Delays() []int { return g.delays[:g.voices] }

// Gains returns the cached tap gains. The slice aliases the cache.
func (g *Geometry) Gains() []float64 { return g.gains[:g.voices] }

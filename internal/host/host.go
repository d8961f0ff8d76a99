// Package host is the calling-convention-neutral boundary shared by the C
// ABI and the WebAssembly exports. Engines live behind opaque handles;
// every operation on a zero, unknown or destroyed handle is a no-op that
// returns zero.
package host

import (
	"github.com/cwbudde/kodama-dsp/dsp/echo"
	"github.com/cwbudde/kodama-dsp/internal/handle"
)

// Host owns the engines created through one boundary.
type Host struct {
	engines handle.Registry[echo.Engine]
}

// Create returns a handle to a new engine with default parameters, or 0
// when sampleRate is not a usable rate.
func (h *Host) Create(sampleRate float64) uintptr {
	e, err := echo.NewEngine(sampleRate)
	if err != nil {
		return 0
	}
	return h.engines.Register(e)
}

// Destroy releases the engine behind id.
func (h *Host) Destroy(id uintptr) {
	h.engines.Release(id)
}

// Engine returns the engine behind id or nil.
func (h *Host) Engine(id uintptr) *echo.Engine {
	return h.engines.Load(id)
}

// Live returns the number of engines not yet destroyed.
func (h *Host) Live() int {
	return h.engines.Len()
}

// SetSampleRate forwards to the engine behind id.
func (h *Host) SetSampleRate(id uintptr, hz float64) {
	if e := h.engines.Load(id); e != nil {
		e.SetSampleRate(hz)
	}
}

// SetDelayTime forwards to the engine behind id.
func (h *Host) SetDelayTime(id uintptr, ms float64) {
	if e := h.engines.Load(id); e != nil {
		e.SetDelayTime(ms)
	}
}

// SetFeedback forwards to the engine behind id.
func (h *Host) SetFeedback(id uintptr, v float64) {
	if e := h.engines.Load(id); e != nil {
		e.SetFeedback(v)
	}
}

// SetMix forwards to the engine behind id.
func (h *Host) SetMix(id uintptr, v float64) {
	if e := h.engines.Load(id); e != nil {
		e.SetMix(v)
	}
}

// SetVoices forwards to the engine behind id.
func (h *Host) SetVoices(id uintptr, n int) {
	if e := h.engines.Load(id); e != nil {
		e.SetVoices(n)
	}
}

// Process runs one float32 block through the engine behind id and returns
// the number of samples processed.
func (h *Host) Process(id uintptr, leftIn, rightIn, leftOut, rightOut []float32) int {
	e := h.engines.Load(id)
	if e == nil {
		return 0
	}
	return e.Process32(leftIn, rightIn, leftOut, rightOut)
}

// Reset clears the engine behind id.
func (h *Host) Reset(id uintptr) {
	if e := h.engines.Load(id); e != nil {
		e.Reset()
	}
}

// VoiceCount returns the voice count of the engine behind id, or 0.
func (h *Host) VoiceCount(id uintptr) int {
	if e := h.engines.Load(id); e != nil {
		return e.Voices()
	}
	return 0
}

// WaveformSize returns the per-voice capture length.
func WaveformSize() int {
	return echo.WaveformSize
}

// VoiceWaveform copies the chronologically ordered capture of voice into
// dst and returns the number of samples written.
func (h *Host) VoiceWaveform(id uintptr, voice int, dst []float32) int {
	e := h.engines.Load(id)
	if e == nil || voice < 0 {
		return 0
	}
	return e.CopyVoiceWaveform32(voice, dst)
}

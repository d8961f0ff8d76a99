package echo

import (
	"github.com/cwbudde/kodama-dsp/dsp/capture"
	"github.com/cwbudde/kodama-dsp/dsp/core"
)

// WaveformSize is the number of samples captured per voice.
const WaveformSize = capture.Size

// VoiceWaveform returns the raw capture ring of voice index. The slice
// aliases engine state and must not be modified. Voices at or above the
// current voice count read as silence.
func (e *Engine) VoiceWaveform(index int) []float64 {
	if index >= e.voices {
		index = -1
	}
	return e.capture.Voice(index)
}

// WaveformWriteIndex returns the shared capture cursor. The oldest sample
// of every ring sits at this index.
func (e *Engine) WaveformWriteIndex() int {
	return e.capture.WriteIndex()
}

// CopyVoiceWaveform writes the capture of voice index into dst oldest-first
// and returns the number of samples written.
func (e *Engine) CopyVoiceWaveform(index int, dst []float64) int {
	if index >= e.voices {
		index = -1
	}
	return e.capture.CopyRotated(index, dst)
}

// CopyVoiceWaveform32 is CopyVoiceWaveform for float32 host buffers.
func (e *Engine) CopyVoiceWaveform32(index int, dst []float32) int {
	return copyRotated(e.VoiceWaveform(index), e.capture.WriteIndex(), dst)
}

// VoiceLevel measures the captured signal of voice index.
func (e *Engine) VoiceLevel(index int) capture.Level {
	if index >= e.voices {
		index = -1
	}
	return e.capture.Level(index)
}

func copyRotated[T core.Sample](ring []float64, start int, dst []T) int {
	n := min(len(dst), len(ring))
	for i := 0; i < n; i++ {
		j := start + i
		if j >= len(ring) {
			j -= len(ring)
		}
		dst[i] = T(ring[j])
	}
	return n
}

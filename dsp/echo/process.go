package echo

import (
	"github.com/cwbudde/kodama-dsp/dsp/core"
	"github.com/cwbudde/kodama-dsp/dsp/delay"
)

// Process runs one block and returns the number of samples processed: the
// length of the shortest of the four buffers. Outputs may alias inputs.
func (e *Engine) Process(leftIn, rightIn, leftOut, rightOut []float64) int {
	return process(e, leftIn, rightIn, leftOut, rightOut)
}

// Process32 is Process for float32 host buffers.
func (e *Engine) Process32(leftIn, rightIn, leftOut, rightOut []float32) int {
	return process(e, leftIn, rightIn, leftOut, rightOut)
}

func process[T core.Sample](e *Engine, leftIn, rightIn, leftOut, rightOut []T) int {
	n := min(len(leftIn), len(rightIn), len(leftOut), len(rightOut))
	if n == 0 {
		return 0
	}

	// Parameters are latched once per block so the tap table stays
	// consistent for every sample in it.
	e.geometry.Update(e.voices, e.BaseDelaySamples())
	delays := e.geometry.Delays()
	gains := e.geometry.Gains()
	feedback := e.feedback
	wetGain := e.mix
	dryGain := 1 - e.mix

	for i := 0; i < n; i++ {
		l := float64(leftIn[i])
		r := float64(rightIn[i])
		mono := 0.5 * (l + r)

		wet := 0.0
		last := 0.0
		for t, d := range delays {
			read := e.cursor - d
			if read < 0 {
				read += delay.MaxSamples
			}
			y := e.buffer.Read(read)
			wet += y * gains[t]
			e.capture.Record(t, y)
			last = y
		}

		e.buffer.Write(e.cursor, core.FlushDenormals(mono+last*feedback))

		leftOut[i] = T(l*dryGain + wet*wetGain)
		rightOut[i] = T(r*dryGain + wet*wetGain)

		e.cursor++
		if e.cursor >= delay.MaxSamples {
			e.cursor = 0
		}
		e.capture.Advance()
	}

	return n
}

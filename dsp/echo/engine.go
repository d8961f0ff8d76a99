package echo

import (
	"fmt"
	"math"

	"github.com/cwbudde/kodama-dsp/dsp/capture"
	"github.com/cwbudde/kodama-dsp/dsp/core"
	"github.com/cwbudde/kodama-dsp/dsp/delay"
	"github.com/cwbudde/kodama-dsp/dsp/tap"
)

const (
	// MaxDelayMs is the upper bound of the delay time parameter.
	MaxDelayMs = 2000.0

	// MaxBaseDelaySamples bounds the base delay so that the full tap
	// spread of MaxVoices taps stays inside the buffer.
	MaxBaseDelaySamples = delay.MaxSamples/tap.MaxVoices - 1

	defaultDelayMs  = 300.0
	defaultFeedback = 0.3
	defaultMix      = 0.5
	defaultVoices   = 1
)

// Engine is one multi-tap echo channel strip.
type Engine struct {
	sampleRate float64
	delayMs    float64
	feedback   float64
	mix        float64
	voices     int

	buffer *delay.Buffer
	cursor int

	geometry tap.Geometry
	capture  capture.Capture
}

// NewEngine creates an engine with 300 ms delay, 0.3 feedback, 0.5 mix and a
// single voice unless options override them.
func NewEngine(sampleRate float64, opts ...Option) (*Engine, error) {
	if !validSampleRate(sampleRate) {
		return nil, fmt.Errorf("echo sample rate must be > 0: %f", sampleRate)
	}

	buf, err := delay.New(delay.MaxSamples)
	if err != nil {
		return nil, fmt.Errorf("echo delay buffer: %w", err)
	}

	cfg := applyOptions(opts...)
	e := &Engine{
		sampleRate: sampleRate,
		delayMs:    defaultDelayMs,
		feedback:   defaultFeedback,
		mix:        defaultMix,
		voices:     defaultVoices,
		buffer:     buf,
	}
	e.SetDelayTime(cfg.delayMs)
	e.SetFeedback(cfg.feedback)
	e.SetMix(cfg.mix)
	e.SetVoices(cfg.voices)
	e.geometry.Update(e.voices, e.BaseDelaySamples())

	return e, nil
}

// SetSampleRate stores the host sample rate. Buffer contents are not
// resampled. Non-positive or non-finite rates are ignored.
func (e *Engine) SetSampleRate(hz float64) {
	if validSampleRate(hz) {
		e.sampleRate = hz
	}
}

// SetDelayTime sets the base delay in milliseconds, clamped to [0, 2000].
func (e *Engine) SetDelayTime(ms float64) {
	if math.IsNaN(ms) {
		return
	}
	e.delayMs = core.Clamp(ms, 0, MaxDelayMs)
}

// SetFeedback sets the recirculation amount of the last tap, clamped to
// [0, 1].
func (e *Engine) SetFeedback(v float64) {
	if math.IsNaN(v) {
		return
	}
	e.feedback = core.Clamp(v, 0, 1)
}

// SetMix sets the wet amount, clamped to [0, 1].
func (e *Engine) SetMix(v float64) {
	if math.IsNaN(v) {
		return
	}
	e.mix = core.Clamp(v, 0, 1)
}

// SetVoices sets the tap count, clamped to [1, tap.MaxVoices].
func (e *Engine) SetVoices(n int) {
	e.voices = tap.ClampVoices(n)
}

// Reset clears the delay buffer and all capture rings and rewinds both
// cursors.
func (e *Engine) Reset() {
	e.buffer.Fill(0)
	e.cursor = 0
	e.capture.Reset()
}

// SampleRate returns the sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// DelayTime returns the delay time in milliseconds.
func (e *Engine) DelayTime() float64 { return e.delayMs }

// Feedback returns the feedback amount in [0, 1].
func (e *Engine) Feedback() float64 { return e.feedback }

// Mix returns the wet amount in [0, 1].
func (e *Engine) Mix() float64 { return e.mix }

// Voices returns the tap count.
func (e *Engine) Voices() int { return e.voices }

// WriteCursor returns the next buffer slot to be written.
func (e *Engine) WriteCursor() int { return e.cursor }

// BaseDelaySamples returns the base delay the next block will use.
func (e *Engine) BaseDelaySamples() int {
	samples := math.Round(e.delayMs / 1000 * e.sampleRate)
	if samples >= MaxBaseDelaySamples {
		return MaxBaseDelaySamples
	}
	return core.ClampInt(int(samples), 1, MaxBaseDelaySamples)
}

// TapDelays writes the tap delays for the current parameters into dst and
// returns how many were written.
func (e *Engine) TapDelays(dst []int) int {
	base := e.BaseDelaySamples()
	n := min(len(dst), e.voices)
	for i := 0; i < n; i++ {
		dst[i] = tap.Delay(i, e.voices, base)
	}
	return n
}

// TailSeconds returns how long the longest tap keeps sounding after the
// input stops, ignoring feedback repeats.
func (e *Engine) TailSeconds() float64 {
	longest := tap.Delay(e.voices-1, e.voices, e.BaseDelaySamples())
	return float64(longest) / e.sampleRate
}

func validSampleRate(hz float64) bool {
	return hz > 0 && !math.IsNaN(hz) && !math.IsInf(hz, 0)
}

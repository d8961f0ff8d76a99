// Package analysis turns a voice capture into a magnitude spectrum for
// display. It runs on the host's UI side, never on the audio path.
package analysis

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/kodama-dsp/dsp/capture"
)

// Analyzer computes windowed magnitude spectra of a fixed size. All scratch
// memory is allocated once in NewAnalyzer.
type Analyzer struct {
	size       int
	window     []float64
	windowGain float64
	plan       *algofft.Plan[complex128]

	windowed []float64
	in       []complex128
	out      []complex128
	re       []float64
	im       []float64
	mag      []float64
}

// NewAnalyzer builds a periodic Hann window and FFT plan for size samples.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size < 2 {
		return nil, fmt.Errorf("analysis size must be >= 2: %d", size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("analysis fft plan: %w", err)
	}

	win := make([]float64, size)
	sum := 0.0
	for i := range win {
		win[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
		sum += win[i]
	}

	bins := size/2 + 1
	return &Analyzer{
		size:       size,
		window:     win,
		windowGain: sum / float64(size),
		plan:       plan,
		windowed:   make([]float64, size),
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		mag:        make([]float64, bins),
	}, nil
}

// Size returns the analysis length in samples.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of magnitude bins produced: Size/2+1.
func (a *Analyzer) Bins() int { return a.size/2 + 1 }

// MagnitudeDB writes the spectrum of waveform into dst in dBFS, where a
// full-scale sine on a bin center reads 0 dB. Bins are floored at -130 dB.
func (a *Analyzer) MagnitudeDB(waveform, dst []float64) error {
	if len(waveform) != a.size {
		return fmt.Errorf("analysis input length must be %d: %d", a.size, len(waveform))
	}
	bins := a.Bins()
	if len(dst) < bins {
		return fmt.Errorf("analysis output length must be >= %d: %d", bins, len(dst))
	}

	vecmath.MulBlock(a.windowed, waveform, a.window)
	for i, v := range a.windowed {
		a.in[i] = complex(v, 0)
	}
	if err := a.plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("analysis fft: %w", err)
	}

	for k := 0; k < bins; k++ {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}
	vecmath.Magnitude(a.mag, a.re, a.im)

	scale := 2 / (float64(a.size) * a.windowGain)
	for k := 0; k < bins; k++ {
		dst[k] = capture.FastDB(a.mag[k] * scale)
	}
	return nil
}

// PeakBin returns the index and value of the loudest bin, skipping DC.
func PeakBin(spectrum []float64) (int, float64) {
	if len(spectrum) < 2 {
		return 0, math.Inf(-1)
	}
	best := 1
	for k := 2; k < len(spectrum); k++ {
		if spectrum[k] > spectrum[best] {
			best = k
		}
	}
	return best, spectrum[best]
}

// BinFrequency returns the center frequency of bin k in Hz.
func BinFrequency(k, size int, sampleRate float64) float64 {
	if size <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(size)
}

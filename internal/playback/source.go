package playback

import "github.com/cwbudde/kodama-dsp/dsp/echo"

// ClickSource feeds a periodic click through an echo engine.
type ClickSource struct {
	engine *echo.Engine
	period int
	amp    float32
	pos    int

	left  []float32
	right []float32
}

// NewClickSource returns a source that emits one full-scale click of
// amplitude amp every period frames, processed by e. blockFrames sizes the
// engine block.
func NewClickSource(e *echo.Engine, period int, amp float32, blockFrames int) *ClickSource {
	if period < 1 {
		period = 1
	}
	if blockFrames < 1 {
		blockFrames = 1
	}
	return &ClickSource{
		engine: e,
		period: period,
		amp:    amp,
		left:   make([]float32, blockFrames),
		right:  make([]float32, blockFrames),
	}
}

// Process renders interleaved stereo frames into dst.
func (s *ClickSource) Process(dst []float32) {
	frames := len(dst) / 2
	for done := 0; done < frames; {
		n := min(frames-done, len(s.left))
		l := s.left[:n]
		r := s.right[:n]
		for i := range l {
			v := float32(0)
			if s.pos == 0 {
				v = s.amp
			}
			l[i], r[i] = v, v
			s.pos++
			if s.pos >= s.period {
				s.pos = 0
			}
		}

		s.engine.Process32(l, r, l, r)

		out := dst[2*done : 2*(done+n)]
		for i := 0; i < n; i++ {
			out[2*i] = l[i]
			out[2*i+1] = r[i]
		}
		done += n
	}
}

package capture

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/kodama-dsp/dsp/tap"
)

func TestRecordAndAdvance(t *testing.T) {
	var c Capture

	for i := 0; i < 3; i++ {
		c.Record(0, float64(i+1))
		c.Record(2, -float64(i+1))
		c.Advance()
	}

	if got := c.WriteIndex(); got != 3 {
		t.Fatalf("WriteIndex: got %d want 3", got)
	}

	ring := c.Voice(0)
	for i := 0; i < 3; i++ {
		if ring[i] != float64(i+1) {
			t.Fatalf("voice 0 slot %d: got %v want %v", i, ring[i], float64(i+1))
		}
	}

	if got := c.Voice(2)[1]; got != -2 {
		t.Fatalf("voice 2 slot 1: got %v want -2", got)
	}

	if got := c.Voice(1)[0]; got != 0 {
		t.Fatalf("untouched voice 1: got %v want 0", got)
	}
}

func TestWriteIndexWraps(t *testing.T) {
	var c Capture
	for i := 0; i < Size+5; i++ {
		c.Advance()
	}

	if got := c.WriteIndex(); got != 5 {
		t.Fatalf("WriteIndex: got %d want 5", got)
	}
}

func TestVoiceOutOfRangeIsSilent(t *testing.T) {
	var c Capture
	c.Record(tap.MaxVoices, 1)
	c.Record(-1, 1)

	for _, idx := range []int{-1, tap.MaxVoices, 1000} {
		ring := c.Voice(idx)
		if len(ring) != Size {
			t.Fatalf("Voice(%d) len: got %d want %d", idx, len(ring), Size)
		}
		for i, v := range ring {
			if v != 0 {
				t.Fatalf("Voice(%d)[%d]: got %v want 0", idx, i, v)
			}
		}
	}
}

func TestCopyRotatedChronological(t *testing.T) {
	var c Capture
	// Write Size+10 ramp values so the oldest sample sits at index 10.
	for i := 0; i < Size+10; i++ {
		c.Record(3, float64(i))
		c.Advance()
	}

	dst := make([]float64, Size)
	if n := c.CopyRotated(3, dst); n != Size {
		t.Fatalf("CopyRotated: got %d want %d", n, Size)
	}

	for i, v := range dst {
		if want := float64(i + 10); v != want {
			t.Fatalf("dst[%d]: got %v want %v", i, v, want)
		}
	}
}

func TestCopyRotatedShortDestination(t *testing.T) {
	var c Capture
	for i := 0; i < Size+Size-4; i++ {
		c.Record(0, float64(i))
		c.Advance()
	}

	dst := make([]float64, 8)
	if n := c.CopyRotated(0, dst); n != 8 {
		t.Fatalf("CopyRotated: got %d want 8", n)
	}

	for i, v := range dst {
		if want := float64(Size - 4 + i); v != want {
			t.Fatalf("dst[%d]: got %v want %v", i, v, want)
		}
	}
}

func TestReset(t *testing.T) {
	var c Capture
	c.Record(5, 1)
	c.Advance()
	c.Reset()

	if c.WriteIndex() != 0 {
		t.Fatalf("WriteIndex after Reset: got %d want 0", c.WriteIndex())
	}

	if got := c.Voice(5)[0]; got != 0 {
		t.Fatalf("after Reset: got %v want 0", got)
	}
}

func TestLevel(t *testing.T) {
	var c Capture
	for i := 0; i < Size; i++ {
		v := 0.5
		if i%2 == 1 {
			v = -0.5
		}
		c.Record(1, v)
		c.Advance()
	}

	lvl := c.Level(1)
	if math.Abs(lvl.Peak-0.5) > 1e-12 {
		t.Fatalf("Peak: got %v want 0.5", lvl.Peak)
	}

	if math.Abs(lvl.RMS-0.5) > 1e-12 {
		t.Fatalf("RMS: got %v want 0.5", lvl.RMS)
	}

	if math.Abs(lvl.PeakDB-(-6.0206)) > 0.5 {
		t.Fatalf("PeakDB: got %v want about -6.02", lvl.PeakDB)
	}

	if silent := c.Level(0); silent.Peak != 0 || silent.PeakDB != silenceDB {
		t.Fatalf("silent voice level: got %+v", silent)
	}
}

func TestFastDB(t *testing.T) {
	if got := FastDB(0); got != silenceDB {
		t.Fatalf("FastDB(0): got %v want %v", got, silenceDB)
	}

	if got := FastDB(1); math.Abs(got) > 0.5 {
		t.Fatalf("FastDB(1): got %v want about 0", got)
	}

	if got := FastDB(0.1); math.Abs(got+20) > 0.5 {
		t.Fatalf("FastDB(0.1): got %v want about -20", got)
	}
}

func TestLevelConcurrentReaders(t *testing.T) {
	var c Capture
	for i := 0; i < Size; i++ {
		c.Record(0, float64(i%7)/7)
		c.Record(1, -0.25)
		c.Advance()
	}
	want0 := c.Level(0)
	want1 := c.Level(1)

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				idx, want := 0, want0
				if (g+i)%2 == 1 {
					idx, want = 1, want1
				}
				if got := c.Level(idx); got != want {
					errs <- fmt.Sprintf("voice %d: got %+v want %+v", idx, got, want)
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}
}

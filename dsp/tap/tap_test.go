package tap

import (
	"math"
	"testing"

	"github.com/cwbudde/kodama-dsp/dsp/delay"
)

func TestDelayWorkedExample(t *testing.T) {
	want := []int{1000, 2250, 3500, 4750}
	for i, w := range want {
		if got := Delay(i, 4, 1000); got != w {
			t.Fatalf("Delay(%d, 4, 1000): got %d want %d", i, got, w)
		}
	}

	for i := 1; i < len(want); i++ {
		if spacing := want[i] - want[i-1]; spacing != 1250 {
			t.Fatalf("spacing %d: got %d want 1250", i, spacing)
		}
	}

	if got := Spacing(4, 1000); got != 1250 {
		t.Fatalf("Spacing(4, 1000): got %v want 1250", got)
	}
}

func TestDelaySingleVoiceHasNoOffset(t *testing.T) {
	if got := Delay(0, 1, 4410); got != 4410 {
		t.Fatalf("got %d want 4410", got)
	}

	if got := Spacing(1, 4410); got != 4410 {
		t.Fatalf("Spacing: got %v want 4410", got)
	}
}

func TestDelayClampedToCapacity(t *testing.T) {
	base := delay.MaxSamples/MaxVoices - 1
	for i := 0; i < MaxVoices; i++ {
		if got := Delay(i, MaxVoices, base); got > delay.MaxSamples-1 {
			t.Fatalf("Delay(%d): got %d beyond capacity", i, got)
		}
	}

	if got := Delay(15, 16, 100000); got != delay.MaxSamples-1 {
		t.Fatalf("got %d want %d", got, delay.MaxSamples-1)
	}
}

func TestGainEnergyNormalized(t *testing.T) {
	for voices := 1; voices <= MaxVoices; voices++ {
		sum := 0.0
		for i := 0; i < voices; i++ {
			g := Gain(i, voices)
			sum += g * g
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("voices=%d: sum of squared gains %v want 1", voices, sum)
		}
	}
}

func TestGainSingleVoiceIsUnity(t *testing.T) {
	if got := Gain(0, 1); got != 1 {
		t.Fatalf("Gain(0, 1): got %v want exactly 1", got)
	}
}

func TestGainDecays(t *testing.T) {
	for i := 1; i < 8; i++ {
		ratio := Gain(i, 8) / Gain(i-1, 8)
		if math.Abs(ratio-DecayPerTap) > 1e-12 {
			t.Fatalf("tap %d ratio: got %v want %v", i, ratio, DecayPerTap)
		}
	}
}

func TestGainOutOfRange(t *testing.T) {
	if got := Gain(-1, 4); got != 0 {
		t.Fatalf("Gain(-1, 4): got %v want 0", got)
	}

	if got := Gain(4, 4); got != 0 {
		t.Fatalf("Gain(4, 4): got %v want 0", got)
	}
}

func TestClampVoices(t *testing.T) {
	tests := []struct{ in, want int }{
		{-3, 1}, {0, 1}, {1, 1}, {7, 7}, {16, 16}, {20, 16},
	}
	for _, tc := range tests {
		if got := ClampVoices(tc.in); got != tc.want {
			t.Fatalf("ClampVoices(%d): got %d want %d", tc.in, got, tc.want)
		}
	}
}

func TestGeometryMatchesPureFunctions(t *testing.T) {
	var g Geometry
	if !g.Update(6, 777) {
		t.Fatal("first Update should recompute")
	}

	if g.Voices() != 6 || g.Base() != 777 {
		t.Fatalf("cached pair: got (%d, %d) want (6, 777)", g.Voices(), g.Base())
	}

	delays := g.Delays()
	gains := g.Gains()
	if len(delays) != 6 || len(gains) != 6 {
		t.Fatalf("lengths: got %d/%d want 6", len(delays), len(gains))
	}

	for i := range delays {
		if want := Delay(i, 6, 777); delays[i] != want {
			t.Fatalf("delay %d: got %d want %d", i, delays[i], want)
		}
		if want := Gain(i, 6); math.Abs(gains[i]-want) > 1e-12 {
			t.Fatalf("gain %d: got %v want %v", i, gains[i], want)
		}
	}
}

func TestGeometryUpdateOnlyOnChange(t *testing.T) {
	var g Geometry
	g.Update(4, 1000)

	if g.Update(4, 1000) {
		t.Fatal("unchanged pair should not recompute")
	}

	if !g.Update(4, 1001) {
		t.Fatal("changed base should recompute")
	}

	if !g.Update(2, 1001) {
		t.Fatal("changed voices should recompute")
	}

	if got := len(g.Delays()); got != 2 {
		t.Fatalf("Delays len after shrink: got %d want 2", got)
	}
}

func BenchmarkGeometryUpdate(b *testing.B) {
	var g Geometry
	for i := 0; i < b.N; i++ {
		g.Update(1+i%MaxVoices, 1000)
	}
}

// Command echoinfo prints the tap layout of the multi-tap echo and,
// optionally, how an impulse comes out of it.
//
// Usage:
//
//	echoinfo [flags]
//
// Examples:
//
//	echoinfo -voices 4
//	echoinfo -rate 44100 -delay 100 -voices 8
//	echoinfo -voices 4 -render 48000 -spectrum
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/kodama-dsp/dsp/analysis"
	"github.com/cwbudde/kodama-dsp/dsp/capture"
	"github.com/cwbudde/kodama-dsp/dsp/core"
	"github.com/cwbudde/kodama-dsp/dsp/echo"
	"github.com/cwbudde/kodama-dsp/dsp/tap"
)

func main() {
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	delayMs := flag.Float64("delay", 300, "delay time in milliseconds (0..2000)")
	feedback := flag.Float64("feedback", 0.3, "feedback amount (0..1)")
	mix := flag.Float64("mix", 0.5, "wet amount (0..1)")
	voices := flag.Int("voices", 1, "number of taps (1..16)")
	render := flag.Int("render", 0, "process an impulse through this many samples and report levels")
	spectrum := flag.Bool("spectrum", false, "with -render, report the dominant capture frequency per voice")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: echoinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints tap delays and gains of the multi-tap echo.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echoinfo -voices 4\n")
		fmt.Fprintf(os.Stderr, "  echoinfo -rate 44100 -delay 100 -voices 8\n")
		fmt.Fprintf(os.Stderr, "  echoinfo -voices 4 -render 48000 -spectrum\n")
	}
	flag.Parse()

	engine, err := echo.NewEngine(*rate,
		echo.WithDelayTime(*delayMs),
		echo.WithFeedback(*feedback),
		echo.WithMix(*mix),
		echo.WithVoices(*voices),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printTaps(os.Stdout, engine); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *render > 0 {
		if err := printRender(os.Stdout, engine, *render, *spectrum); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printTaps(w io.Writer, e *echo.Engine) error {
	base := e.BaseDelaySamples()
	voices := e.Voices()
	delays := make([]int, voices)
	e.TapDelays(delays)

	if _, err := fmt.Fprintf(w, "rate=%.0f Hz  delay=%.1f ms  base=%d samples  voices=%d  spacing=%.1f samples  tail=%.3f s\n\n",
		e.SampleRate(), e.DelayTime(), base, voices, tap.Spacing(voices, base), e.TailSeconds()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Tap\tDelay [samples]\tDelay [ms]\tGain\tGain [dB]\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "---\t---------------\t----------\t----\t---------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, d := range delays {
		g := tap.Gain(i, voices)
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%.2f\t%.6f\t%.2f\n",
			i, d, 1000*float64(d)/e.SampleRate(), g, core.LinearToDB(g)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func printRender(w io.Writer, e *echo.Engine, length int, withSpectrum bool) error {
	in := make([]float64, length)
	in[0] = 1
	left := make([]float64, length)
	right := make([]float64, length)
	e.Process(in, in, left, right)

	peak, sumSq := 0.0, 0.0
	for _, v := range left {
		peak = math.Max(peak, math.Abs(v))
		sumSq += v * v
	}
	if _, err := fmt.Fprintf(w, "\nimpulse over %d samples: peak=%.6f rms=%.6f\n\n",
		length, peak, math.Sqrt(sumSq/float64(length))); err != nil {
		return fmt.Errorf("write render summary: %w", err)
	}

	var analyzer *analysis.Analyzer
	var bins, wave []float64
	if withSpectrum {
		a, err := analysis.NewAnalyzer(capture.Size)
		if err != nil {
			return err
		}
		analyzer = a
		bins = make([]float64, a.Bins())
		wave = make([]float64, capture.Size)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Voice\tCapture Peak\tCapture RMS\tPeak [dBFS]"
	if withSpectrum {
		header += "\tDominant [Hz]"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for v := 0; v < e.Voices(); v++ {
		lvl := e.VoiceLevel(v)
		row := fmt.Sprintf("%d\t%.6f\t%.6f\t%.1f", v, lvl.Peak, lvl.RMS, lvl.PeakDB)
		if analyzer != nil {
			e.CopyVoiceWaveform(v, wave)
			if err := analyzer.MagnitudeDB(wave, bins); err != nil {
				return err
			}
			k, _ := analysis.PeakBin(bins)
			row += fmt.Sprintf("\t%.1f", analysis.BinFrequency(k, capture.Size, e.SampleRate()))
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Command echoplay auditions the echo engine on the default audio device by
// playing a click train through it.
//
// Usage:
//
//	echoplay [flags]
//
// Examples:
//
//	echoplay -delay 250 -voices 4 -feedback 0.4
//	echoplay -rate 44100 -period 2 -seconds 10
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/kodama-dsp/dsp/echo"
	"github.com/cwbudde/kodama-dsp/internal/playback"
)

func main() {
	rate := flag.Int("rate", 48000, "sample rate in Hz")
	delayMs := flag.Float64("delay", 300, "delay time in milliseconds (0..2000)")
	feedback := flag.Float64("feedback", 0.3, "feedback amount (0..1)")
	mix := flag.Float64("mix", 0.5, "wet amount (0..1)")
	voices := flag.Int("voices", 1, "number of taps (1..16)")
	period := flag.Float64("period", 1.5, "seconds between clicks")
	seconds := flag.Float64("seconds", 6, "playback duration in seconds")
	bufferMs := flag.Int("buffer", 40, "device buffer in milliseconds")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: echoplay [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a click train through the multi-tap echo.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	engine, err := echo.NewEngine(float64(*rate),
		echo.WithDelayTime(*delayMs),
		echo.WithFeedback(*feedback),
		echo.WithMix(*mix),
		echo.WithVoices(*voices),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "echoplay: %v\n", err)
		os.Exit(1)
	}

	buffer := time.Duration(*bufferMs) * time.Millisecond
	periodFrames := int(*period * float64(*rate))
	src := playback.NewClickSource(engine, periodFrames, 0.8, 512)

	player, err := NewPlayer(*rate, buffer, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "echoplay: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "playing %.1fs: delay=%.0fms feedback=%.2f mix=%.2f voices=%d\n",
		*seconds, engine.DelayTime(), engine.Feedback(), engine.Mix(), engine.Voices())
	player.Play()
	time.Sleep(time.Duration(*seconds * float64(time.Second)))

	if err := player.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "echoplay: %v\n", err)
		os.Exit(1)
	}
}

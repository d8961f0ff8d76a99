// Command libkodama builds the echo engine as a C shared library.
//
// Build:
//
//	go build -buildmode=c-shared -o libkodama_dsp.so ./cmd/libkodama
//
// The generated header declares the kodama_dsp_* functions. A handle is an
// opaque uintptr_t; 0 is never a valid handle. Every export treats a zero
// or destroyed handle and any NULL buffer pointer as a no-op. Handles are
// not reused, so calling into a destroyed handle is harmless, but the host
// must still not race destroy against process on another thread.
package main

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/cwbudde/kodama-dsp/internal/host"
)

var engines host.Host

func main() {}

// recoverPanic keeps Go panics from unwinding into the host and reports
// them on stderr.
func recoverPanic(op string) {
	if r := recover(); r != nil {
		fmt.Fprintf(os.Stderr, "kodama_dsp: panic in %s: %v\n", op, r)
	}
}

//export kodama_dsp_create
func kodama_dsp_create(sampleRate C.float) C.uintptr_t {
	defer recoverPanic("create")
	return C.uintptr_t(engines.Create(float64(sampleRate)))
}

//export kodama_dsp_destroy
func kodama_dsp_destroy(h C.uintptr_t) {
	defer recoverPanic("destroy")
	engines.Destroy(uintptr(h))
}

//export kodama_dsp_set_sample_rate
func kodama_dsp_set_sample_rate(h C.uintptr_t, sampleRate C.float) {
	defer recoverPanic("set_sample_rate")
	engines.SetSampleRate(uintptr(h), float64(sampleRate))
}

//export kodama_dsp_set_delay_time
func kodama_dsp_set_delay_time(h C.uintptr_t, ms C.float) {
	defer recoverPanic("set_delay_time")
	engines.SetDelayTime(uintptr(h), float64(ms))
}

//export kodama_dsp_set_feedback
func kodama_dsp_set_feedback(h C.uintptr_t, value C.float) {
	defer recoverPanic("set_feedback")
	engines.SetFeedback(uintptr(h), float64(value))
}

//export kodama_dsp_set_mix
func kodama_dsp_set_mix(h C.uintptr_t, value C.float) {
	defer recoverPanic("set_mix")
	engines.SetMix(uintptr(h), float64(value))
}

//export kodama_dsp_set_voices
func kodama_dsp_set_voices(h C.uintptr_t, value C.uint32_t) {
	defer recoverPanic("set_voices")
	engines.SetVoices(uintptr(h), int(value))
}

//export kodama_dsp_process
func kodama_dsp_process(h C.uintptr_t, leftIn, rightIn, leftOut, rightOut *C.float, numSamples C.size_t) {
	defer recoverPanic("process")
	if leftIn == nil || rightIn == nil || leftOut == nil || rightOut == nil || numSamples == 0 {
		return
	}
	n := int(numSamples)
	engines.Process(uintptr(h),
		floats(leftIn, n), floats(rightIn, n),
		floats(leftOut, n), floats(rightOut, n))
}

//export kodama_dsp_reset
func kodama_dsp_reset(h C.uintptr_t) {
	defer recoverPanic("reset")
	engines.Reset(uintptr(h))
}

//export kodama_dsp_get_voice_count
func kodama_dsp_get_voice_count(h C.uintptr_t) C.uint32_t {
	defer recoverPanic("get_voice_count")
	return C.uint32_t(engines.VoiceCount(uintptr(h)))
}

//export kodama_dsp_get_waveform_size
func kodama_dsp_get_waveform_size() C.size_t {
	return C.size_t(host.WaveformSize())
}

//export kodama_dsp_get_voice_waveform
func kodama_dsp_get_voice_waveform(h C.uintptr_t, voiceIndex C.uint32_t, out *C.float) {
	defer recoverPanic("get_voice_waveform")
	if out == nil {
		return
	}
	engines.VoiceWaveform(uintptr(h), int(voiceIndex), floats(out, host.WaveformSize()))
}

// floats views n C floats as a Go slice without copying.
func floats(p *C.float, n int) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(p)), n)
}

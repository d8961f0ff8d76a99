//go:build js && wasm

// Command wasm exposes the echo engine to JavaScript as the KodamaDSP
// object. Sample blocks live in regions handed out by alloc, addressed by
// their offset into the module's linear memory; an AudioWorklet views them
// through a Float32Array on the instance memory and calls process in place.
package main

import (
	"syscall/js"

	"github.com/cwbudde/kodama-dsp/internal/host"
	"github.com/cwbudde/kodama-dsp/internal/wasmheap"
)

var funcs []js.Func

func main() {
	var engines host.Host
	heap := wasmheap.New()

	api := js.Global().Get("Object").New()

	api.Set("create", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		return float64(engines.Create(sr))
	}))

	api.Set("destroy", export(func(args []js.Value) any {
		if id, ok := handleArg(args); ok {
			engines.Destroy(id)
		}
		return js.Null()
	}))

	api.Set("setSampleRate", setter(func(id uintptr, v js.Value) {
		engines.SetSampleRate(id, v.Float())
	}))
	api.Set("setDelayTime", setter(func(id uintptr, v js.Value) {
		engines.SetDelayTime(id, v.Float())
	}))
	api.Set("setFeedback", setter(func(id uintptr, v js.Value) {
		engines.SetFeedback(id, v.Float())
	}))
	api.Set("setMix", setter(func(id uintptr, v js.Value) {
		engines.SetMix(id, v.Float())
	}))
	api.Set("setVoices", setter(func(id uintptr, v js.Value) {
		engines.SetVoices(id, v.Int())
	}))

	api.Set("process", export(func(args []js.Value) any {
		if len(args) < 6 {
			return 0
		}
		id, _ := handleArg(args)
		n := args[5].Int()
		leftIn := heap.Slice(uintptr(args[1].Int()), n)
		rightIn := heap.Slice(uintptr(args[2].Int()), n)
		leftOut := heap.Slice(uintptr(args[3].Int()), n)
		rightOut := heap.Slice(uintptr(args[4].Int()), n)
		if leftIn == nil || rightIn == nil || leftOut == nil || rightOut == nil {
			return 0
		}
		return engines.Process(id, leftIn, rightIn, leftOut, rightOut)
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if id, ok := handleArg(args); ok {
			engines.Reset(id)
		}
		return js.Null()
	}))

	api.Set("voiceCount", export(func(args []js.Value) any {
		id, _ := handleArg(args)
		return engines.VoiceCount(id)
	}))

	api.Set("waveformSize", export(func([]js.Value) any {
		return host.WaveformSize()
	}))

	api.Set("voiceWaveform", export(func(args []js.Value) any {
		if len(args) < 3 {
			return 0
		}
		id, _ := handleArg(args)
		out := heap.Slice(uintptr(args[2].Int()), host.WaveformSize())
		if out == nil {
			return 0
		}
		return engines.VoiceWaveform(id, args[1].Int(), out)
	}))

	api.Set("alloc", export(func(args []js.Value) any {
		if len(args) < 1 {
			return 0
		}
		return float64(heap.Alloc(args[0].Int()))
	}))

	api.Set("free", export(func(args []js.Value) any {
		if len(args) < 2 {
			return js.Null()
		}
		if err := heap.Free(uintptr(args[0].Int()), args[1].Int()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	js.Global().Set("KodamaDSP", api)
	select {}
}

func handleArg(args []js.Value) (uintptr, bool) {
	if len(args) < 1 || args[0].Type() != js.TypeNumber {
		return 0, false
	}
	return uintptr(args[0].Int()), true
}

func setter(fn func(id uintptr, v js.Value)) js.Func {
	return export(func(args []js.Value) any {
		if len(args) < 2 {
			return js.Null()
		}
		if id, ok := handleArg(args); ok {
			fn(id, args[1])
		}
		return js.Null()
	})
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

package main

import (
	"io"
	"os"
	"strings"
	"testing"
)

func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stderr
	os.Stderr = w
	fn()
	os.Stderr = old
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestRecoverPanicReportsOperation(t *testing.T) {
	out := captureStderr(t, func() {
		defer recoverPanic("process")
		panic("boom")
	})

	if !strings.Contains(out, "panic in process: boom") {
		t.Fatalf("stderr: got %q", out)
	}
}

func TestRecoverPanicQuietWithoutPanic(t *testing.T) {
	out := captureStderr(t, func() {
		defer recoverPanic("reset")
	})

	if out != "" {
		t.Fatalf("stderr: got %q want empty", out)
	}
}

// Package echo implements a multi-tap feedback delay for stereo blocks.
//
// The engine sums the stereo input to mono, writes it into a fixed
// 192000-sample circular buffer and reads up to sixteen taps back out of it.
// Tap offsets and gains come from package tap; their energy is normalized
// so loudness stays roughly constant for any voice count. Only the last tap
// is fed back into the buffer. The wet signal is mono and is mixed against
// the untouched stereo dry signal.
//
// Every tap's raw output is also recorded into a per-voice capture ring for
// display (see package capture).
//
// Parameters are clamped rather than rejected and block processing silently
// truncates to the shortest buffer, so the audio callback never fails.
// Process and Process32 do not allocate. The engine performs no internal
// synchronization: one goroutine mutates and processes at a time.
package echo

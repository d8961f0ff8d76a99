package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/kodama-dsp/internal/playback"
)

// Player owns one oto context and player.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// NewPlayer opens the default device at sampleRate and prepares src for
// playback. It blocks until the device is ready.
func NewPlayer(sampleRate int, bufferSize time.Duration, src playback.Source) (*Player, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("playback sample rate must be > 0: %d", sampleRate)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("playback open device: %w", err)
	}
	<-ready

	frames := int(bufferSize.Seconds() * float64(sampleRate))
	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(playback.NewReader(src, frames)),
	}, nil
}

// Play starts pulling audio from the source.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil {
		p.player.Play()
	}
}

// Close stops playback.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}

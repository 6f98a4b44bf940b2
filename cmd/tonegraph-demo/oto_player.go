package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"

	"github.com/auroral-tones/tonegraph"
)

// otoPlayer bridges an *tonegraph.AudioEngine to oto's pull-based audio
// callback. The engine pointer is held behind an atomic so Read, which
// runs on oto's own audio thread, never takes a lock to find it.
type otoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	engine    atomic.Pointer[tonegraph.AudioEngine]
	left      []float32
	right     []float32
	interlace []float32
	mu        sync.Mutex // setup/control only, never touched by Read
	started   bool
}

func newOtoPlayer(engine *tonegraph.AudioEngine, sampleRate int) (*otoPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	p := &otoPlayer{ctx: ctx}
	p.engine.Store(engine)
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read renders one oto callback's worth of interleaved stereo float32
// samples. It never allocates once the scratch buffers below have grown
// to the largest size oto has asked for.
func (p *otoPlayer) Read(out []byte) (int, error) {
	engine := p.engine.Load()
	if engine == nil {
		clearBytes(out)
		return len(out), nil
	}

	frames := len(out) / 8 // 2 channels * 4 bytes/float32
	if cap(p.left) < frames {
		p.left = make([]float32, frames)
		p.right = make([]float32, frames)
		p.interlace = make([]float32, frames*2)
	}
	left := p.left[:frames]
	right := p.right[:frames]

	if err := engine.FillStereoBuffer(left, right); err != nil {
		clearBytes(out)
		return len(out), nil
	}

	interlace := p.interlace[:frames*2]
	for i := 0; i < frames; i++ {
		interlace[2*i] = left[i]
		interlace[2*i+1] = right[i]
	}
	n := copy(out, (*[1 << 30]byte)(unsafe.Pointer(&interlace[0]))[:frames*8])
	return n, nil
}

func clearBytes(p []byte) {
	for i := range p {
		p[i] = 0
	}
}

func (p *otoPlayer) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		p.player.Play()
		p.started = true
	}
}

func (p *otoPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.player != nil {
		p.player.Close()
		p.player = nil
	}
	p.started = false
}

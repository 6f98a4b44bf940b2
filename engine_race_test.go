package tonegraph

import (
	"sync"
	"testing"
	"time"
)

// TestAudioEngine_ConcurrentConfigAndRender stresses the lock-free handoff
// between UpdateConfigs (control thread) and FillStereoBuffer (audio
// thread). The test itself asserts nothing about the resulting samples -
// the race detector is the oracle. Run with -race.
func TestAudioEngine_ConcurrentConfigAndRender(t *testing.T) {
	e, err := NewAudioEngine(SRDefault)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Initialize([]LayerConfiguration{
		{CarrierHz: 220, Weight: 1, ChannelMode: Stereo, StereoOffsetHz: 4},
		{CarrierHz: 440, ModulatorHz: 5, ModulatorDepth: 0.5, Weight: 0.5},
	}, Stereo); err != nil {
		t.Fatal(err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Go(func() {
		iter := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			hz := float32(200 + iter%100)
			e.UpdateConfigs([]LayerConfiguration{
				{CarrierHz: hz, Weight: 1, ChannelMode: Stereo, StereoOffsetHz: 4},
				{CarrierHz: hz * 2, ModulatorHz: 5, ModulatorDepth: 0.5, Weight: 0.5},
			})
			e.SetMasterGain(float32(iter%2) * 0.5)
			e.SetOutputGain(0.8)
			iter++
		}
	})

	wg.Go(func() {
		left := make([]float32, 256)
		right := make([]float32, 256)
		for {
			select {
			case <-stop:
				return
			default:
			}
			e.FillStereoBuffer(left, right)
			e.GetLayerEnvelopeValue(0)
		}
	})

	time.Sleep(100 * time.Millisecond)
	close(stop)
	wg.Wait()
}

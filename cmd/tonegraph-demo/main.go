// tonegraph-demo plays a short, looping binaural/AM tone session through
// the system's default audio device, using github.com/ebitengine/oto/v3
// as the platform output backend. It exists to exercise AudioEngine
// against a real audio callback; it is not part of the engine itself.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/auroral-tones/tonegraph"
)

func main() {
	sampleRate := flag.Int("sr", tonegraph.SRDefault, "sample rate in Hz")
	carrier := flag.Float64("carrier", 220, "carrier frequency in Hz")
	offset := flag.Float64("offset", 6, "binaural offset in Hz (0 disables)")
	modHz := flag.Float64("mod-hz", 4, "amplitude modulator frequency in Hz")
	modDepth := flag.Float64("mod-depth", 0.3, "amplitude modulator depth, 0-1")
	duration := flag.Duration("duration", 20*time.Second, "how long to play before fading out")
	flag.Parse()

	mode := tonegraph.Stereo
	layer, err := tonegraph.NewLayerConfiguration(tonegraph.LayerConfiguration{
		CarrierHz:      float32(*carrier),
		ModulatorHz:    float32(*modHz),
		ModulatorDepth: float32(*modDepth),
		Weight:         1,
		ChannelMode:    mode,
		StereoOffsetHz: float32(*offset),
	}, *sampleRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid layer configuration: %v\n", err)
		os.Exit(1)
	}

	engine, err := tonegraph.NewAudioEngine(*sampleRate)
	if err != nil {
		log.Fatalf("tonegraph-demo: %v", err)
	}
	if err := engine.Initialize([]tonegraph.LayerConfiguration{layer}, mode); err != nil {
		log.Fatalf("tonegraph-demo: %v", err)
	}

	player, err := newOtoPlayer(engine, *sampleRate)
	if err != nil {
		log.Fatalf("tonegraph-demo: failed to open audio device: %v", err)
	}
	defer player.Close()

	if err := engine.Start(); err != nil {
		log.Fatalf("tonegraph-demo: %v", err)
	}
	player.Start()

	go func() {
		for err := range engine.Errors() {
			log.Printf("tonegraph-demo: critical engine error: %v", err)
		}
	}()

	log.Printf("tonegraph-demo: playing carrier=%.1fHz offset=%.1fHz for %s", *carrier, *offset, *duration)
	time.Sleep(*duration)

	if err := engine.Stop(); err != nil {
		log.Fatalf("tonegraph-demo: %v", err)
	}
	// Render 2 s of the release tail before tearing the device down. With
	// the default 30 s release timing the tone has only partly faded by
	// then, so the end of the fade is cut off.
	time.Sleep(2 * time.Second)
	engine.Dispose()
}

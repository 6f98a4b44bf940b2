// mono_layer.go - One signal path: carrier -> pre-mod headroom -> AM -> envelope -> weight

package tonegraph

// MonoLayer owns one carrier oscillator, one LFO, and one envelope, and
// renders them into a caller-supplied block according to a
// LayerConfiguration. All of its state is owned exclusively by the audio
// thread once Initialize has run.
type MonoLayer struct {
	carrier     SineOscillator
	lfo         LFO
	envelope    Envelope
	modScratch  [MaxBuffer]float32
	am          AmModulator
	initialized bool
}

// Initialize configures the envelope's attack/release timing and marks
// the layer ready to render. It must run once before the first call to
// UpdateAndProcess.
func (l *MonoLayer) Initialize(sr int, attackSeconds, releaseSeconds float32) {
	l.envelope.Configure(attackSeconds, releaseSeconds, sr)
	l.initialized = true
}

// UpdateAndProcess renders one block of this layer's signal: carrier,
// pre-modulation headroom, optional AM, envelope, and weight. If the
// layer hasn't been initialized it clears block and returns, matching the
// engine's fail-silent discipline.
//
// gate distinguishes an actively-playing block (envelope re-triggered to
// its "on" target every call, per spec §4.5) from a release-tail block
// rendered after Stop, where the envelope must keep decaying toward the
// target TriggerRelease already set rather than being pulled back up.
func (l *MonoLayer) UpdateAndProcess(block []float32, sr int, cfg LayerConfiguration, gate bool) {
	if !l.initialized {
		clear(block)
		return
	}

	l.carrier.SetFrequency(cfg.CarrierHz, sr)
	if gate {
		l.envelope.Trigger(true)
	}

	l.carrier.Process(block)

	for i := range block {
		block[i] *= preModHeadroom
	}

	if cfg.ModulatorHz > 0 && cfg.ModulatorDepth > 0 {
		l.lfo.SetFrequency(cfg.ModulatorHz, sr)
		mod := l.modScratch[:len(block)]
		l.lfo.Process(mod)
		l.am.Apply(block, mod, cfg.ModulatorDepth)
	}

	l.envelope.Process(block)

	switch cfg.Weight {
	case 1:
		// no-op: full weight already applied
	case 0:
		clear(block)
	default:
		w := cfg.Weight
		for i := range block {
			block[i] *= w
		}
	}
}

// TriggerRelease moves the envelope toward silence without stopping
// rendering; a release tail continues to play out on subsequent calls.
func (l *MonoLayer) TriggerRelease() {
	l.envelope.Trigger(false)
}

// EnvelopeValue reports the layer's current envelope gain, for metering.
func (l *MonoLayer) EnvelopeValue() float32 {
	return l.envelope.Value()
}

// Reset returns the oscillator, LFO, and envelope to their initial state.
// Callers must only invoke this while the layer is not playing.
func (l *MonoLayer) Reset() {
	l.carrier.Reset()
	l.lfo.Reset()
	l.envelope.Reset()
}

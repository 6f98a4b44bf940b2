// oscillator.go - Phase-accumulating sine carrier

package tonegraph

import "math"

// SineOscillator is a continuous sinusoid driven by a double-precision
// phase accumulator so multi-hour sessions don't drift audibly. Output is
// cast to float32 only at the point of writing a sample.
type SineOscillator struct {
	phase     float64 // current phase, radians, wrapped to [0, 2*pi)
	increment float64 // phase advance per sample, radians
}

// SetFrequency recomputes the phase increment for f Hz at sample rate sr.
// Callers must only invoke this between blocks: either from the audio
// thread before rendering a block, or from a single writer while no block
// is in flight.
func (o *SineOscillator) SetFrequency(f float32, sr int) {
	o.increment = 2 * math.Pi * float64(f) / float64(sr)
}

// Process fills block with one sample per phase step and advances the
// phase accumulator. Phase wraps by subtraction, never modulo, so it never
// snaps outside [0, 2*pi).
func (o *SineOscillator) Process(block []float32) {
	phase := o.phase
	inc := o.increment
	for i := range block {
		block[i] = fastSin(phase)
		phase += inc
		if phase >= 2*math.Pi {
			phase -= 2 * math.Pi
		} else if phase < 0 {
			phase += 2 * math.Pi
		}
	}
	o.phase = phase
}

// Reset returns the oscillator to phase zero.
func (o *SineOscillator) Reset() {
	o.phase = 0
}

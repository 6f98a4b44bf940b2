// lfo.go - Low-frequency sinusoid updated at control rate

package tonegraph

import "math"

// LFO is a sub-audio sinusoid whose value is recomputed only once every
// ControlRate samples; the samples in between linearly interpolate
// between the previous and next control-rate value. This cuts sine
// evaluations to one per ControlRate samples relative to a full-rate
// oscillator without
// introducing audible stepping at the modulation rates this engine uses.
type LFO struct {
	phase     float64 // control-rate phase accumulator, radians
	increment float64 // phase advance per control-rate tick (pre-scaled by ControlRate)
	prevValue float32 // value at the start of the current interpolation span
	nextValue float32 // value at the end of the current interpolation span
	counter   int     // samples elapsed since the last control-rate tick
}

// SetFrequency recomputes the control-rate phase increment for f Hz at
// sample rate sr, preserving wall-clock frequency despite the reduced
// update rate. Same single-writer-between-blocks contract as
// SineOscillator.SetFrequency.
func (l *LFO) SetFrequency(f float32, sr int) {
	l.increment = 2 * math.Pi * float64(f) * ControlRate / float64(sr)
}

// Reset returns the LFO to a neutral starting state.
func (l *LFO) Reset() {
	l.phase = 0
	l.prevValue = 0
	l.nextValue = 0
	l.counter = 0
}

// Process fills block with the interpolated LFO waveform, advancing the
// control-rate phase as needed.
func (l *LFO) Process(block []float32) {
	for i := range block {
		if l.counter == 0 {
			l.prevValue = l.nextValue
			l.phase += l.increment
			if l.phase >= 2*math.Pi {
				l.phase -= 2 * math.Pi
			} else if l.phase < 0 {
				l.phase += 2 * math.Pi
			}
			l.nextValue = fastSin(l.phase)
		}
		t := float32(l.counter) / float32(ControlRate)
		block[i] = l.prevValue + (l.nextValue-l.prevValue)*t
		l.counter++
		if l.counter >= ControlRate {
			l.counter = 0
		}
	}
}

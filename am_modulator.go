// am_modulator.go - Headroom-preserving amplitude modulation

package tonegraph

// AmModulator applies amplitude modulation in place. It carries no state;
// every call is independent of every other.
type AmModulator struct{}

// Apply multiplies carrier[i] by an amplitude derived from mod[i] and
// depth. depth <= 0 is a no-op; depth > 1 is clamped to 1. The amplitude
// maps mod's [-1, 1] range onto [1-depth, 1], so full-depth modulation
// never raises the carrier's peak above its pre-modulation peak.
func (AmModulator) Apply(carrier, mod []float32, depth float32) {
	if depth <= 0 {
		return
	}
	if depth > 1 {
		depth = 1
	}
	for i := range carrier {
		amplitude := 1 - depth + depth*0.5*(mod[i]+1)
		carrier[i] *= amplitude
	}
}

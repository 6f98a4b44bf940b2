// envelope.go - Asymmetric exponential attack/release gain

package tonegraph

// Envelope is an exponential smoother with independent attack and release
// coefficients. It multiplies each sample of a block by its current gain,
// moving that gain toward 0 or 1 depending on the last trigger.
type Envelope struct {
	current  float32
	target   float32
	kAttack  float32
	kRelease float32
}

// Configure derives the per-sample attack/release coefficients from
// attackSeconds/releaseSeconds at sample rate sr. Values below
// MinEnvelopeSeconds are floored to it, which keeps the coefficient finite
// and avoids an impulsive, audible edge.
func (e *Envelope) Configure(attackSeconds, releaseSeconds float32, sr int) {
	if attackSeconds < MinEnvelopeSeconds {
		attackSeconds = MinEnvelopeSeconds
	}
	if releaseSeconds < MinEnvelopeSeconds {
		releaseSeconds = MinEnvelopeSeconds
	}
	e.kAttack = 1 / (attackSeconds * float32(sr))
	e.kRelease = 1 / (releaseSeconds * float32(sr))
}

// Trigger sets the envelope's target to 1 (gate on) or 0 (gate off/release).
func (e *Envelope) Trigger(on bool) {
	if on {
		e.target = 1
	} else {
		e.target = 0
	}
}

// Process multiplies each sample of block by the envelope's current gain,
// updating that gain one exponential step per sample.
func (e *Envelope) Process(block []float32) {
	current := e.current
	target := e.target
	kAttack := e.kAttack
	kRelease := e.kRelease
	for i := range block {
		k := kRelease
		if target > current {
			k = kAttack
		}
		current += (target - current) * k
		block[i] *= current
	}
	e.current = current
}

// Value reports the envelope's current gain, for metering.
func (e *Envelope) Value() float32 { return e.current }

// Reset returns the envelope to silence with no pending target.
func (e *Envelope) Reset() {
	e.current = 0
	e.target = 0
}

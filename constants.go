// constants.go - Tunables and hard limits for the tonegraph synthesis engine

package tonegraph

// Sample-rate bounds and the engine's default operating rate.
const (
	SRMin     = 8000
	SRMax     = 192000
	SRDefault = 48000
)

// Pool and buffer limits. These size every fixed allocation made by
// Initialize; nothing in the audio path grows them afterward.
const (
	MaxLayers = 8
	MaxBuffer = 4096
)

// ControlRate is the number of audio samples between LFO recomputations.
// Intermediate samples are linearly interpolated. Changing it trades CPU
// for perceived smoothness; it never changes correctness.
const ControlRate = 16

// MixHeadroom is the fixed -6 dB attenuation applied after additive layer
// summation. It does not by itself keep a sum of many full-weight layers
// inside +-1.0; SafetyClamp is the final bound on every output sample.
const MixHeadroom = 0.5

// MaxConsecutiveErrors is how many back-to-back render faults the engine
// tolerates before latching into the critical-error state.
const MaxConsecutiveErrors = 3

// Default envelope timing, applied unless Initialize is called with
// explicit attack/release overrides.
const (
	DefaultAttackSeconds  = 10.0
	DefaultReleaseSeconds = 30.0
)

// MinEnvelopeSeconds floors attack/release so a 0s (or negative) request
// can't produce a division by zero or an impulsive, clicking edge.
const MinEnvelopeSeconds = 0.1

// Carrier and modulation ranges (Hz) and the Nyquist safety factor.
const (
	CarrierHzMin       = 20.0
	CarrierHzMax       = 2000.0
	NyquistSafetyRatio = 0.45

	ModulatorHzMin = 0.1
	ModulatorHzMax = 100.0
)

// MasterGainSlew is the per-sample smoothing coefficient applied to the
// master gain target; at SRDefault this settles in roughly 100ms.
const MasterGainSlew = 0.001

// SafetyClamp is the hard ceiling/floor applied to every output sample
// after mixing and gain, strictly inside the +-1.0 rail.
const SafetyClamp = 0.999

// preModHeadroom is the fixed attenuation a MonoLayer applies to its
// carrier before amplitude modulation, so AM at any depth cannot push the
// layer's output above the layer's own weight.
const preModHeadroom = 0.5

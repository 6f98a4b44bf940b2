// stereo_layer.go - Two coupled MonoLayers with a binaural frequency offset

package tonegraph

// StereoLayer renders a binaural pair: the left channel carries
// cfg.CarrierHz, the right carries cfg.CarrierHz+cfg.StereoOffsetHz. Both
// sides share modulation and envelope timing and are triggered and reset
// together, but keep independent oscillator phase so the offset is a
// purely perceptual ("binaural beat") phenomenon rather than amplitude
// modulation baked into either channel.
type StereoLayer struct {
	left  MonoLayer
	right MonoLayer
}

// Initialize configures both underlying MonoLayers with the same
// envelope timing.
func (s *StereoLayer) Initialize(sr int, attackSeconds, releaseSeconds float32) {
	s.left.Initialize(sr, attackSeconds, releaseSeconds)
	s.right.Initialize(sr, attackSeconds, releaseSeconds)
}

// UpdateAndProcess renders left and right blocks from a single
// configuration, offsetting only the right channel's carrier frequency.
// gate is forwarded unchanged to both channels so they stay envelope-
// synchronized whether actively playing or decaying a release tail.
func (s *StereoLayer) UpdateAndProcess(left, right []float32, sr int, cfg LayerConfiguration, gate bool) {
	s.left.UpdateAndProcess(left, sr, cfg, gate)

	rightCfg := cfg
	rightCfg.CarrierHz = cfg.CarrierHz + cfg.StereoOffsetHz
	s.right.UpdateAndProcess(right, sr, rightCfg, gate)
}

// TriggerRelease releases both channels together.
func (s *StereoLayer) TriggerRelease() {
	s.left.TriggerRelease()
	s.right.TriggerRelease()
}

// EnvelopeValue reports the left channel's envelope gain; left and right
// are driven identically so either side is representative for metering.
func (s *StereoLayer) EnvelopeValue() float32 {
	return s.left.EnvelopeValue()
}

// Reset returns both channels to their initial state.
func (s *StereoLayer) Reset() {
	s.left.Reset()
	s.right.Reset()
}

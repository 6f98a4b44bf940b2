// mixer.go - Fixed-size layer pool, additive summation, fixed mix headroom

package tonegraph

// Mixer owns a fixed-size pool of MaxLayers mono and MaxLayers stereo
// layer slots, allocated once by Initialize and never again. Which pool
// backs slot i on a given render depends on that layer's configured
// ChannelMode; lastMode records that choice so metering can find the
// right slot afterward.
type Mixer struct {
	monoPool   [MaxLayers]MonoLayer
	stereoPool [MaxLayers]StereoLayer

	monoTmp  [MaxBuffer]float32
	leftTmp  [MaxBuffer]float32
	rightTmp [MaxBuffer]float32

	activeLayerCount int
	outputMode       ChannelMode
	lastMode         [MaxLayers]ChannelMode
}

// Initialize configures layerCount slots of both pools (layerCount is
// clamped to MaxLayers) with the given envelope timing, and records the
// mixer's render mode.
func (m *Mixer) Initialize(layerCount int, sr int, mode ChannelMode, attackSeconds, releaseSeconds float32) {
	if layerCount > MaxLayers {
		layerCount = MaxLayers
	}
	for i := 0; i < layerCount; i++ {
		m.monoPool[i].Initialize(sr, attackSeconds, releaseSeconds)
		m.stereoPool[i].Initialize(sr, attackSeconds, releaseSeconds)
	}
	m.activeLayerCount = layerCount
	m.outputMode = mode
}

// RenderMono sums up to min(activeLayerCount, snapshot.Len()) layers into
// out, every layer rendered through its mono slot regardless of its
// configured ChannelMode (there is no left/right to offset into), then
// applies MixHeadroom. Returns ChannelModeMismatch if the mixer wasn't
// initialized for Mono output. gate false renders a release tail without
// re-triggering attack; see MonoLayer.UpdateAndProcess.
func (m *Mixer) RenderMono(out []float32, sr int, snapshot LayerSnapshot, gate bool) error {
	if m.outputMode != Mono {
		return errChannelModeMismatch()
	}
	clear(out)

	n := snapshot.Len()
	if m.activeLayerCount < n {
		n = m.activeLayerCount
	}
	scratch := m.monoTmp[:len(out)]
	for i := 0; i < n; i++ {
		cfg := snapshot.At(i)
		m.monoPool[i].UpdateAndProcess(scratch, sr, cfg, gate)
		m.lastMode[i] = Mono
		for j := range out {
			out[j] += scratch[j]
		}
	}
	for i := range out {
		out[i] *= MixHeadroom
	}
	return nil
}

// RenderStereo sums up to min(activeLayerCount, snapshot.Len()) layers
// into left and right. A layer configured for Stereo renders through its
// binaural slot into both planes unpanned; a Mono layer renders through
// its mono slot and is panned with an equal-power law. Returns
// ChannelModeMismatch if the mixer wasn't initialized for Stereo output,
// or InvalidBufferGeometry if left and right differ in length. gate false
// renders a release tail without re-triggering attack.
func (m *Mixer) RenderStereo(left, right []float32, sr int, snapshot LayerSnapshot, gate bool) error {
	if m.outputMode != Stereo {
		return errChannelModeMismatch()
	}
	if len(left) != len(right) {
		return errInvalidBufferGeometry("left/right length mismatch")
	}
	clear(left)
	clear(right)

	n := snapshot.Len()
	if m.activeLayerCount < n {
		n = m.activeLayerCount
	}
	for i := 0; i < n; i++ {
		cfg := snapshot.At(i)
		if cfg.ChannelMode == Stereo {
			l := m.leftTmp[:len(left)]
			r := m.rightTmp[:len(right)]
			m.stereoPool[i].UpdateAndProcess(l, r, sr, cfg, gate)
			m.lastMode[i] = Stereo
			for j := range left {
				left[j] += l[j]
				right[j] += r[j]
			}
			continue
		}

		m.lastMode[i] = Mono
		mono := m.monoTmp[:len(left)]
		m.monoPool[i].UpdateAndProcess(mono, sr, cfg, gate)

		theta := (cfg.Pan + 1) * (piOverFour)
		gainL := cos32(theta)
		gainR := sin32(theta)
		for j := range left {
			left[j] += mono[j] * gainL
			right[j] += mono[j] * gainR
		}
	}
	for i := range left {
		left[i] *= MixHeadroom
		right[i] *= MixHeadroom
	}
	return nil
}

// TriggerReleaseAll moves every active layer's envelope toward silence.
func (m *Mixer) TriggerReleaseAll() {
	for i := 0; i < m.activeLayerCount; i++ {
		m.monoPool[i].TriggerRelease()
		m.stereoPool[i].TriggerRelease()
	}
}

// Reset returns every active layer to its initial state. Callers must
// only invoke this while the mixer is not playing.
func (m *Mixer) Reset() {
	for i := 0; i < m.activeLayerCount; i++ {
		m.monoPool[i].Reset()
		m.stereoPool[i].Reset()
	}
}

// LayerEnvelopeValue returns the current envelope gain of layer i, using
// whichever pool last rendered that slot. Out-of-range or never-rendered
// indices return 0.
func (m *Mixer) LayerEnvelopeValue(i int) float32 {
	if i < 0 || i >= m.activeLayerCount {
		return 0
	}
	if m.lastMode[i] == Stereo {
		return m.stereoPool[i].EnvelopeValue()
	}
	return m.monoPool[i].EnvelopeValue()
}

// engine.go - Public facade: lifecycle, lock-free config handoff, gain
// smoothing, safety limiter, and the consecutive-error guard

package tonegraph

import (
	"fmt"
	"log"
	"math"
	"sync/atomic"

	"github.com/auroral-tones/tonegraph/internal/notify"
)

type engineState int32

const (
	stateUninitialized engineState = iota
	stateInitialized
	statePlaying
	stateStopped
	stateDisposed
)

// AudioEngine is the public facade described in spec §4.8: one control
// thread (the UI) configures it and starts/stops it; one audio thread
// drives FillMonoBuffer/FillStereoBuffer on a real-time cadence. No
// method here allocates, locks, or blocks except the ones explicitly
// documented as control-thread-only.
type AudioEngine struct {
	sampleRate  int
	channelMode ChannelMode

	mixer Mixer

	state       atomic.Int32
	initialized atomic.Bool
	disposed    atomic.Bool

	snapshot    atomic.Pointer[LayerSnapshot]
	configDirty atomic.Bool

	masterGainTargetBits atomic.Uint32
	outputGainBits       atomic.Uint32
	smoothedGain         float32 // audio-thread-only

	consecutiveErrors atomic.Int32
	lastError         atomic.Pointer[EngineError]
	hasCriticalError  atomic.Bool

	notifier *notify.Notifier
	logger   *log.Logger
}

// NewAudioEngine validates sampleRate against [SRMin, SRMax] and returns
// an engine in the Uninitialized state, master gain and output gain both
// defaulted to 1 (smoothed gain itself starts at 0, so a fresh engine
// fades in rather than starting at full amplitude instantly).
func NewAudioEngine(sampleRate int) (*AudioEngine, error) {
	if sampleRate < SRMin || sampleRate > SRMax {
		return nil, errInvalidSampleRate(sampleRate)
	}
	e := &AudioEngine{
		sampleRate: sampleRate,
		logger:     log.Default(),
		notifier:   notify.New(4),
	}
	e.state.Store(int32(stateUninitialized))
	e.masterGainTargetBits.Store(math.Float32bits(1))
	e.outputGainBits.Store(math.Float32bits(1))
	return e, nil
}

// SetLogger redirects the engine's control-thread diagnostics (never
// called from FillMonoBuffer/FillStereoBuffer). Passing nil discards
// them.
func (e *AudioEngine) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(discardWriter{}, "", 0)
	}
	e.logger = l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// Initialize validates configs, allocates the layer pool with
// DefaultAttackSeconds/DefaultReleaseSeconds timing, and publishes the
// first snapshot. It must run exactly once before the first Start.
func (e *AudioEngine) Initialize(configs []LayerConfiguration, mode ChannelMode) error {
	return e.InitializeWithEnvelope(configs, mode, DefaultAttackSeconds, DefaultReleaseSeconds)
}

// InitializeWithEnvelope is Initialize with explicit attack/release
// timing for callers that don't want the spec defaults.
func (e *AudioEngine) InitializeWithEnvelope(configs []LayerConfiguration, mode ChannelMode, attackSeconds, releaseSeconds float32) error {
	if e.disposed.Load() {
		return errDisposed()
	}
	snap, err := NewLayerSnapshot(configs, e.sampleRate)
	if err != nil {
		e.logger.Printf("tonegraph: initialize rejected: %v", err)
		return err
	}

	e.mixer.Initialize(len(configs), e.sampleRate, mode, attackSeconds, releaseSeconds)
	e.channelMode = mode
	e.snapshot.Store(&snap)
	e.configDirty.Store(true)
	e.initialized.Store(true)
	e.state.Store(int32(stateInitialized))
	return nil
}

// UpdateConfigs validates configs and atomically replaces the published
// snapshot. It is lock-free and safe to call from the control thread at
// any time, including while the audio thread is rendering.
func (e *AudioEngine) UpdateConfigs(configs []LayerConfiguration) error {
	if e.disposed.Load() {
		return errDisposed()
	}
	snap, err := NewLayerSnapshot(configs, e.sampleRate)
	if err != nil {
		e.logger.Printf("tonegraph: update_configs rejected: %v", err)
		return err
	}
	e.snapshot.Store(&snap)
	e.configDirty.Store(true)
	return nil
}

// SetMasterGain clamps v to [0, 1] and stores it as the smoothing
// target; FillMonoBuffer/FillStereoBuffer slew smoothedGain toward it
// one step per sample (spec §5's MasterGainSlew).
func (e *AudioEngine) SetMasterGain(v float32) {
	e.masterGainTargetBits.Store(math.Float32bits(clamp01(v)))
}

// FadeMasterGainTo is a named alias for SetMasterGain: master-gain
// smoothing is always on, so there is no separate "ramped" code path the
// way there is for per-channel envelopes, but call sites read more
// clearly naming the fade they intend.
func (e *AudioEngine) FadeMasterGainTo(target float32) {
	e.SetMasterGain(target)
}

// SetOutputGain clamps v to [0, 1] and stores it as the final linear
// multiplier applied every sample, after gain smoothing and before the
// safety clamp.
func (e *AudioEngine) SetOutputGain(v float32) {
	e.outputGainBits.Store(math.Float32bits(clamp01(v)))
}

// OutputGain reports the current output gain multiplier.
func (e *AudioEngine) OutputGain() float32 {
	return math.Float32frombits(e.outputGainBits.Load())
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Start transitions Initialized or Stopped to Playing. It is an error to
// start an engine that has never been Initialized.
func (e *AudioEngine) Start() error {
	if e.disposed.Load() {
		return errDisposed()
	}
	if !e.initialized.Load() {
		return errNotInitialized()
	}
	e.state.Store(int32(statePlaying))
	return nil
}

// Stop triggers every active layer's release and moves the engine to
// Stopped. It is not a cancellation: FillMonoBuffer/FillStereoBuffer keep
// rendering the release tail until envelopes reach silence. It is an
// error to stop an engine that has never been Initialized, matching the
// state diagram in spec §4.8.
func (e *AudioEngine) Stop() error {
	if e.disposed.Load() {
		return errDisposed()
	}
	if !e.initialized.Load() {
		return errNotInitialized()
	}
	e.mixer.TriggerReleaseAll()
	e.state.Store(int32(stateStopped))
	return nil
}

// Reset returns every layer's oscillator, LFO, and envelope to its
// initial state, and clears the latched error state. Callers must not
// invoke it while the engine is Playing. reset() composed with itself is
// a no-op beyond the first call.
func (e *AudioEngine) Reset() error {
	if e.disposed.Load() {
		return errDisposed()
	}
	e.mixer.Reset()
	e.consecutiveErrors.Store(0)
	e.lastError.Store(nil)
	e.hasCriticalError.Store(false)
	return nil
}

// Dispose is idempotent. After it returns, every other method on e
// returns Disposed.
func (e *AudioEngine) Dispose() {
	if e.disposed.Swap(true) {
		return
	}
	e.state.Store(int32(stateDisposed))
	e.logger.Printf("tonegraph: engine disposed")
}

// FillMonoBuffer is the real-time entry point for Mono-mode engines. It
// never allocates, locks, or blocks in steady state, and never invokes a
// subscriber synchronously. Stopped is not silent: it keeps rendering the
// release tail (gate=false, so envelopes decay toward the target Stop
// already set instead of being re-triggered) until they reach silence on
// their own. Once the engine has latched into the critical-error state
// (see recordFault), every call renders unconditional silence regardless
// of the lifecycle state, until Reset clears the latch.
func (e *AudioEngine) FillMonoBuffer(block []float32) error {
	if e.disposed.Load() {
		return errDisposed()
	}
	if e.channelMode != Mono {
		return errChannelModeMismatch()
	}
	if len(block) > MaxBuffer {
		return errInvalidBufferGeometry("block length exceeds MaxBuffer")
	}
	if e.hasCriticalError.Load() {
		clear(block)
		return nil
	}
	state := engineState(e.state.Load())
	if state != statePlaying && state != stateStopped {
		clear(block)
		return nil
	}
	snap := e.snapshot.Load()
	if snap == nil {
		clear(block)
		return nil
	}

	if err := e.renderMonoSafe(block, *snap, state == statePlaying); err != nil {
		e.recordFault(block, err)
		return nil
	}
	e.applyMonoGainAndLimiter(block)
	e.consecutiveErrors.Store(0)
	return nil
}

// FillStereoBuffer is the real-time entry point for Stereo-mode engines.
// left and right must be equal length. See FillMonoBuffer for the
// Stopped release-tail behavior.
func (e *AudioEngine) FillStereoBuffer(left, right []float32) error {
	if e.disposed.Load() {
		return errDisposed()
	}
	if e.channelMode != Stereo {
		return errChannelModeMismatch()
	}
	if len(left) != len(right) {
		return errInvalidBufferGeometry("left/right length mismatch")
	}
	if len(left) > MaxBuffer {
		return errInvalidBufferGeometry("block length exceeds MaxBuffer")
	}
	if e.hasCriticalError.Load() {
		clear(left)
		clear(right)
		return nil
	}
	state := engineState(e.state.Load())
	if state != statePlaying && state != stateStopped {
		clear(left)
		clear(right)
		return nil
	}
	snap := e.snapshot.Load()
	if snap == nil {
		clear(left)
		clear(right)
		return nil
	}

	if err := e.renderStereoSafe(left, right, *snap, state == statePlaying); err != nil {
		e.recordFault(left, err)
		clear(right)
		return nil
	}
	e.applyStereoGainAndLimiter(left, right)
	e.consecutiveErrors.Store(0)
	return nil
}

func (e *AudioEngine) renderMonoSafe(block []float32, snap LayerSnapshot, gate bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errInternalRenderFault(fmt.Sprint(r))
		}
	}()
	return e.mixer.RenderMono(block, e.sampleRate, snap, gate)
}

func (e *AudioEngine) renderStereoSafe(left, right []float32, snap LayerSnapshot, gate bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errInternalRenderFault(fmt.Sprint(r))
		}
	}()
	return e.mixer.RenderStereo(left, right, e.sampleRate, snap, gate)
}

// recordFault implements the critical-error policy of spec §4.8/§7:
// silence the block, count the fault, and latch the engine into a
// critical-error state after MaxConsecutiveErrors in a row. It never
// logs and never invokes a subscriber synchronously; delivery is handed
// to the notifier's background goroutine.
func (e *AudioEngine) recordFault(block []float32, cause error) {
	clear(block)
	ee, ok := cause.(*EngineError)
	if !ok {
		ee = &EngineError{Kind: KindInternalRenderFault, msg: cause.Error()}
	} else if ee.Kind != KindInternalRenderFault {
		ee = &EngineError{Kind: KindInternalRenderFault, msg: ee.Error()}
	}
	e.lastError.Store(ee)

	n := e.consecutiveErrors.Add(1)
	if n >= MaxConsecutiveErrors {
		e.hasCriticalError.Store(true)
		e.state.Store(int32(stateStopped))
		e.notifier.Dispatch(ee)
	}
}

func (e *AudioEngine) applyMonoGainAndLimiter(block []float32) {
	smoothed := e.smoothedGain
	target := math.Float32frombits(e.masterGainTargetBits.Load())
	outGain := math.Float32frombits(e.outputGainBits.Load())

	for i := range block {
		smoothed += (target - smoothed) * MasterGainSlew
		v := block[i] * smoothed * outGain
		block[i] = hardClamp(v)
	}
	e.smoothedGain = smoothed
}

func (e *AudioEngine) applyStereoGainAndLimiter(left, right []float32) {
	smoothed := e.smoothedGain
	target := math.Float32frombits(e.masterGainTargetBits.Load())
	outGain := math.Float32frombits(e.outputGainBits.Load())

	for i := range left {
		smoothed += (target - smoothed) * MasterGainSlew
		gain := smoothed * outGain
		left[i] = hardClamp(left[i] * gain)
		right[i] = hardClamp(right[i] * gain)
	}
	e.smoothedGain = smoothed
}

func hardClamp(v float32) float32 {
	if v > SafetyClamp {
		return SafetyClamp
	}
	if v < -SafetyClamp {
		return -SafetyClamp
	}
	return v
}

// GetLayerEnvelopeValue is a bounds-safe metering read: out-of-range or
// not-yet-initialized indices return 0, and so does every index once the
// engine has latched into the critical-error state (spec §7: "metering
// drops to 0 ... until the engine is reset or replaced"). Safe to call
// from the control thread while the audio thread renders; a torn read
// here is only a visual artifact, never a correctness issue.
func (e *AudioEngine) GetLayerEnvelopeValue(i int) float32 {
	if e.hasCriticalError.Load() {
		return 0
	}
	return e.mixer.LayerEnvelopeValue(i)
}

// LayerEnvelopeValues fills out with the envelope gain of layers
// 0..len(out), clamped to MaxLayers, for hosts that want every active
// meter in one call instead of polling GetLayerEnvelopeValue per index.
// Every entry is 0 once the engine has latched into the critical-error
// state.
func (e *AudioEngine) LayerEnvelopeValues(out []float32) {
	n := len(out)
	if n > MaxLayers {
		n = MaxLayers
	}
	if e.hasCriticalError.Load() {
		clear(out[:n])
		return
	}
	for i := 0; i < n; i++ {
		out[i] = e.mixer.LayerEnvelopeValue(i)
	}
}

// TryGetCriticalError reports the last fault recorded by the render path
// and whether the engine has latched into the critical-error state. Safe
// to poll from the control thread at any time.
func (e *AudioEngine) TryGetCriticalError() (error, bool) {
	ee := e.lastError.Load()
	if ee == nil {
		return nil, e.hasCriticalError.Load()
	}
	return ee, e.hasCriticalError.Load()
}

// Errors returns the channel critical-error notifications are delivered
// on, from an unspecified background goroutine (never the audio thread
// itself). Subscribers must tolerate that.
func (e *AudioEngine) Errors() <-chan error {
	return e.notifier.Errors()
}

// SampleRate reports the engine's fixed instance sample rate.
func (e *AudioEngine) SampleRate() int { return e.sampleRate }

// ChannelMode reports the engine's render mode, valid once Initialize
// has run.
func (e *AudioEngine) ChannelMode() ChannelMode { return e.channelMode }

// config.go - Immutable, validated layer configuration and snapshots

package tonegraph

// ChannelMode selects whether a layer (or an engine's overall render
// target) is single-voice or carries an independent left/right carrier
// pair.
type ChannelMode int

const (
	Mono ChannelMode = iota
	Stereo
)

func (m ChannelMode) String() string {
	if m == Stereo {
		return "Stereo"
	}
	return "Mono"
}

// LayerConfiguration is an immutable, validated description of one
// synthesis layer. Values are constructed through NewLayerConfiguration
// and are safe to copy and share across goroutines; nothing in this
// package ever mutates one after construction.
type LayerConfiguration struct {
	CarrierHz      float32
	ModulatorHz    float32
	ModulatorDepth float32
	Weight         float32
	ChannelMode    ChannelMode
	StereoOffsetHz float32
	Pan            float32
}

// NewLayerConfiguration validates every field against sr (the engine's
// instance sample rate) and returns an InvalidConfiguration error naming
// the first offending field.
func NewLayerConfiguration(cfg LayerConfiguration, sr int) (LayerConfiguration, error) {
	if err := validateCarrier(cfg.CarrierHz, sr); err != nil {
		return LayerConfiguration{}, err
	}
	if cfg.ModulatorHz != 0 {
		if cfg.ModulatorHz < ModulatorHzMin || cfg.ModulatorHz > ModulatorHzMax {
			return LayerConfiguration{}, errInvalidConfiguration("modulator_hz")
		}
	}
	if cfg.ModulatorDepth < 0 || cfg.ModulatorDepth > 1 {
		return LayerConfiguration{}, errInvalidConfiguration("modulator_depth")
	}
	if cfg.Weight < 0 || cfg.Weight > 1 {
		return LayerConfiguration{}, errInvalidConfiguration("weight")
	}
	if cfg.ChannelMode == Stereo {
		if err := validateCarrier(cfg.CarrierHz+cfg.StereoOffsetHz, sr); err != nil {
			return LayerConfiguration{}, errInvalidConfiguration("stereo_offset_hz")
		}
	}
	if cfg.Pan < -1 || cfg.Pan > 1 {
		return LayerConfiguration{}, errInvalidConfiguration("pan")
	}
	return cfg, nil
}

func validateCarrier(hz float32, sr int) error {
	if hz < CarrierHzMin || hz > CarrierHzMax {
		return errInvalidConfiguration("carrier_hz")
	}
	if hz >= NyquistSafetyRatio*float32(sr) {
		return errInvalidConfiguration("carrier_hz")
	}
	return nil
}

// WithWeight returns a copy of cfg with Weight replaced by w, re-validated
// against sr. It exists so callers can mute/solo a layer drawn from a
// published snapshot without hand-building a new struct literal.
func (cfg LayerConfiguration) WithWeight(w float32, sr int) (LayerConfiguration, error) {
	next := cfg
	next.Weight = w
	return NewLayerConfiguration(next, sr)
}

// LayerSnapshot is an ordered, bounded, immutable sequence of validated
// layer configurations, published atomically by AudioEngine.
type LayerSnapshot struct {
	layers []LayerConfiguration
}

// NewLayerSnapshot validates non-emptiness, the MaxLayers bound, and every
// member configuration against sr, returning a snapshot that is safe to
// publish and share.
func NewLayerSnapshot(configs []LayerConfiguration, sr int) (LayerSnapshot, error) {
	if len(configs) == 0 {
		return LayerSnapshot{}, errInvalidConfiguration("configs")
	}
	if len(configs) > MaxLayers {
		return LayerSnapshot{}, errInvalidConfiguration("configs")
	}
	validated := make([]LayerConfiguration, len(configs))
	for i, c := range configs {
		v, err := NewLayerConfiguration(c, sr)
		if err != nil {
			return LayerSnapshot{}, err
		}
		validated[i] = v
	}
	return LayerSnapshot{layers: validated}, nil
}

// Len reports the number of layers in the snapshot.
func (s LayerSnapshot) Len() int { return len(s.layers) }

// At returns the i'th layer configuration. Callers must keep i within
// [0, Len()); this package only ever calls it that way.
func (s LayerSnapshot) At(i int) LayerConfiguration { return s.layers[i] }

// lut.go - Lookup table for sine evaluation, adapted from the teacher's
// audio_lut.go. Only the sine table survives here: the teacher's
// companion tanh table backed its overdrive effect, which has no
// equivalent in this engine (see DESIGN.md).

package tonegraph

import "math"

const (
	sinLUTSize = 8192           // entries for sine, ~0.00077 radian resolution
	sinLUTMask = sinLUTSize - 1 // mask for fast wraparound indexing
)

const sinLUTScale = float32(sinLUTSize) / (2 * math.Pi)

var sinLUT [sinLUTSize]float32

func init() {
	for i := 0; i < sinLUTSize; i++ {
		phase := float64(i) * 2 * math.Pi / float64(sinLUTSize)
		sinLUT[i] = float32(math.Sin(phase))
	}
}

// fastSin returns sin(phase) via the lookup table with linear
// interpolation. phase must already be wrapped to [0, 2*pi); every caller
// in this package maintains that invariant itself.
func fastSin(phase float64) float32 {
	indexF := float32(phase) * sinLUTScale
	index := int(indexF)
	frac := indexF - float32(index)

	index &= sinLUTMask
	nextIndex := (index + 1) & sinLUTMask

	return sinLUT[index] + frac*(sinLUT[nextIndex]-sinLUT[index])
}

const piOverFour = math.Pi / 4

// cos32 and sin32 back the mixer's equal-power pan law; they run at most
// once per layer per block, so a plain lookup-table evaluation (rather
// than math.Cos/math.Sin) keeps the whole render path on one code path.
func cos32(theta float32) float32 {
	return fastSin(float64(theta) + math.Pi/2)
}

func sin32(theta float32) float32 {
	return fastSin(float64(theta))
}

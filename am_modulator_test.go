package tonegraph

import "testing"

func TestAmModulatorZeroDepthIsNoOp(t *testing.T) {
	carrier := []float32{1, -1, 0.5, -0.5}
	mod := []float32{1, -1, 1, -1}
	want := append([]float32(nil), carrier...)

	AmModulator{}.Apply(carrier, mod, 0)
	for i := range carrier {
		if carrier[i] != want[i] {
			t.Fatalf("index %d: expected unchanged %v, got %v", i, want[i], carrier[i])
		}
	}
}

func TestAmModulatorFullDepthPreservesPeak(t *testing.T) {
	carrier := make([]float32, 256)
	for i := range carrier {
		carrier[i] = 1 // worst-case peak carrier
	}
	mod := make([]float32, 256)
	for i := range mod {
		mod[i] = 1 // mod at its own peak too
	}

	AmModulator{}.Apply(carrier, mod, 1)
	for i, s := range carrier {
		if s > 1.0001 {
			t.Fatalf("index %d: AM raised carrier peak above 1: %v", i, s)
		}
	}
}

func TestAmModulatorDepthClampedAboveOne(t *testing.T) {
	a := []float32{1, 1}
	b := []float32{1.5, 1.5}
	mod := []float32{-1, -1}

	AmModulator{}.Apply(a, mod, 1)
	AmModulator{}.Apply(b, mod, 2)
	if a[0] != b[0] {
		t.Fatalf("depth > 1 should behave as depth == 1, got %v vs %v", a[0], b[0])
	}
}

func TestAmModulatorTroughAtFullDepth(t *testing.T) {
	carrier := []float32{1}
	mod := []float32{-1} // modulator at its trough
	AmModulator{}.Apply(carrier, mod, 1)
	if carrier[0] > 0.0001 {
		t.Fatalf("expected near-silence at full depth + trough, got %v", carrier[0])
	}
}

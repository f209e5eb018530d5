package signal

import (
	"math"
	"testing"
)

func TestPreEmphasisConstant(t *testing.T) {
	const x = 0.5

	samples := make([]float64, 32)
	for i := range samples {
		samples[i] = x
	}

	PreEmphasis(samples, 0.97)

	if samples[0] != x {
		t.Errorf("samples[0] = %v, want %v", samples[0], x)
	}

	want := x * (1 - 0.97)
	for i := 1; i < len(samples); i++ {
		if math.Abs(samples[i]-want) > 1e-12 {
			t.Fatalf("samples[%d] = %v, want %v", i, samples[i], want)
		}
	}
}

func TestPreEmphasisReadsOriginalPredecessor(t *testing.T) {
	samples := []float64{1, 2, 3, 4}

	PreEmphasis(samples, 1.0)

	want := []float64{1, 1, 1, 1}
	for i := range samples {
		if samples[i] != want[i] {
			t.Fatalf("samples[%d] = %v, want %v", i, samples[i], want[i])
		}
	}
}

func TestPreEmphasisShort(t *testing.T) {
	samples := []float64{0.25}
	PreEmphasis(samples, 0.97)

	if samples[0] != 0.25 {
		t.Fatalf("single sample changed: %v", samples[0])
	}

	PreEmphasis(nil, 0.97)
}

func TestNormalizePeak(t *testing.T) {
	samples := []float64{0.1, -0.4, 0.2, -0.05}

	Normalize(samples, 1.0)

	maxAbs := 0.0
	for _, v := range samples {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}

	if math.Abs(maxAbs-1.0) > 1e-12 {
		t.Fatalf("peak after normalize = %v, want 1.0", maxAbs)
	}

	// Relative shape is preserved.
	if math.Abs(samples[0]-0.25) > 1e-12 {
		t.Fatalf("samples[0] = %v, want 0.25", samples[0])
	}
}

func TestNormalizeCustomPeak(t *testing.T) {
	samples := []float64{2, -8, 4}

	Normalize(samples, 0.5)

	if math.Abs(samples[1]+0.5) > 1e-12 {
		t.Fatalf("samples[1] = %v, want -0.5", samples[1])
	}
}

func TestNormalizeSilence(t *testing.T) {
	samples := []float64{0, 0, 0, 0}

	Normalize(samples, 1.0)

	for i, v := range samples {
		if v != 0 {
			t.Fatalf("samples[%d] = %v, want 0 (silence must stay untouched)", i, v)
		}
	}
}

func TestNormalizeNearSilence(t *testing.T) {
	samples := []float64{1e-9, -1e-9}

	Normalize(samples, 1.0)

	if samples[0] != 1e-9 {
		t.Fatalf("near-silent frame was scaled: %v", samples[0])
	}
}

// Package signal provides time-domain conditioning applied to audio frames
// before spectral analysis.
package signal

import (
	"github.com/cwbudde/algo-vecmath"
)

// peakEpsilon is the smallest peak magnitude worth normalizing. Frames at
// or below this level stay untouched so near-silence is not blown up into
// full-scale noise. The value is the float32 machine epsilon, matching the
// precision of the raw audio samples.
const peakEpsilon = 1.1920929e-7

// DefaultPreEmphasis is the conventional first-order pre-emphasis
// coefficient for speech.
const DefaultPreEmphasis = 0.97

// PreEmphasis applies the first-order high-pass difference
// samples[i] -= coeff * samples[i-1] in place.
//
// Iteration runs from the highest index down so every subtraction reads the
// original predecessor value. Forward iteration would feed already-emphasized
// samples back into the difference and change the result.
func PreEmphasis(samples []float64, coeff float64) {
	for i := len(samples) - 1; i >= 1; i-- {
		samples[i] -= coeff * samples[i-1]
	}
}

// Normalize scales samples in place so the largest magnitude equals peak.
// Inputs whose peak does not exceed the silence threshold are left unchanged.
func Normalize(samples []float64, peak float64) {
	m := vecmath.MaxAbs(samples)
	if m <= peakEpsilon {
		return
	}

	vecmath.ScaleBlockInPlace(samples, peak/m)
}

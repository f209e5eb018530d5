package mel

import (
	"errors"
	"math"
)

var (
	// ErrInvalidChannels indicates a non-positive filter channel count.
	ErrInvalidChannels = errors.New("mel: channel count must be > 0")
	// ErrInvalidRate indicates a non-positive sample rate.
	ErrInvalidRate = errors.New("mel: sample rate must be > 0")
	// ErrShortSpectrum indicates a spectrum too short to carry any band.
	ErrShortSpectrum = errors.New("mel: spectrum must hold at least 2 bins")
	// ErrMismatchedLength indicates a dst length not matching the channel count.
	ErrMismatchedLength = errors.New("mel: dst length must equal channel count")
)

// melScale is the constant of the linear (non-Slaney) mel formula.
const melScale = 1127.0

// ToMel converts a frequency in Hz to mel, m = 1127*ln(1 + f/700).
func ToMel(hz float64) float64 {
	return melScale * math.Log(1+hz/700)
}

// ToHz converts a mel value back to Hz.
func ToHz(mel float64) float64 {
	return 700 * (math.Exp(mel/melScale) - 1)
}

// FilterBank accumulates spectrum bins into len(dst) overlapping triangular
// filters spaced uniformly in mel between 0 Hz and Nyquist, writing one
// band energy per filter into dst.
//
// Filter n spans mel positions n..n+2 of the channels+1 grid, rising
// linearly to its center and falling to its end, with the ramp normalized
// by half the filter's bandwidth in Hz. spectrum is a full-length DFT
// magnitude or power spectrum; only bins up to Nyquist contribute.
func FilterBank(dst, spectrum []float64, sampleRate float64, channels int) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}

	if len(dst) != channels {
		return ErrMismatchedLength
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return ErrInvalidRate
	}

	if len(spectrum) < 2 {
		return ErrShortSpectrum
	}

	fMax := sampleRate / 2
	nMax := len(spectrum) / 2
	df := fMax / float64(nMax)
	dMel := ToMel(fMax) / float64(channels+1)

	for n := range channels {
		fBegin := ToHz(dMel * float64(n))
		fCenter := ToHz(dMel * float64(n+1))
		fEnd := ToHz(dMel * float64(n+2))

		iBegin := int(math.Ceil(fBegin / df))
		iCenter := int(math.RoundToEven(fCenter / df))
		iEnd := int(math.Floor(fEnd / df))

		last := iEnd
		if last > len(spectrum)-1 {
			last = len(spectrum) - 1
		}

		sum := 0.0

		for i := iBegin + 1; i <= last; i++ {
			f := df * float64(i)

			var a float64
			if i < iCenter {
				a = (f - fBegin) / (fCenter - fBegin)
			} else {
				a = (fEnd - f) / (fEnd - fCenter)
			}

			a /= (fEnd - fBegin) * 0.5
			sum += a * spectrum[i]
		}

		dst[n] = sum
	}

	return nil
}

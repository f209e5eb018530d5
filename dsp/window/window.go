// Package window provides the Hamming analysis window used ahead of
// spectral feature extraction.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErrMismatchedLength indicates samples and coefficients of unequal length.
var ErrMismatchedLength = errors.New("window: samples and coefficients must have same length")

const (
	hammingA0 = 0.54
	hammingA1 = 0.46
)

// HammingInto fills dst with symmetric Hamming coefficients
// 0.54 - 0.46*cos(2*pi*i/(n-1)).
//
// A single-element window takes the i = 0 value 0.08 instead of evaluating
// the undefined 0/0 position.
func HammingInto(dst []float64) {
	n := len(dst)
	if n == 0 {
		return
	}

	if n == 1 {
		dst[0] = hammingA0 - hammingA1
		return
	}

	step := 2 * math.Pi / float64(n-1)
	for i := range dst {
		dst[i] = hammingA0 - hammingA1*math.Cos(step*float64(i))
	}
}

// Hamming returns freshly allocated Hamming coefficients of the given size.
func Hamming(size int) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window: size must be > 0: %d", size)
	}

	out := make([]float64, size)
	HammingInto(out)

	return out, nil
}

// Apply multiplies samples with coefficients in place.
func Apply(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return ErrMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

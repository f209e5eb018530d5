package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-mfcc/dsp/core"
)

// ErrMismatchedLength indicates dst and samples of unequal length.
var ErrMismatchedLength = errors.New("spectrum: dst and samples must have same length")

// Analyzer computes magnitude spectra, caching FFT plans and complex
// scratch per transform length. It is not safe for concurrent use; give
// each worker its own Analyzer.
type Analyzer struct {
	plans   map[int]*algofft.Plan[complex128]
	in, out []complex128
	re, im  []float64
}

// NewAnalyzer returns an empty Analyzer. Plans are created lazily on the
// first transform of each length.
func NewAnalyzer() *Analyzer {
	return &Analyzer{plans: make(map[int]*algofft.Plan[complex128])}
}

// MagnitudeInto fills dst with |X[k]| for the forward DFT of samples.
// Any transform length is accepted; the full N-bin spectrum is produced,
// not just the non-negative half. dst must have the same length as
// samples. In steady state the call performs no allocation.
func (a *Analyzer) MagnitudeInto(dst, samples []float64) error {
	if len(dst) != len(samples) {
		return ErrMismatchedLength
	}

	n := len(samples)
	if n == 0 {
		return nil
	}

	plan, err := a.plan(n)
	if err != nil {
		return err
	}

	a.resize(n)

	for i, v := range samples {
		a.in[i] = complex(v, 0)
	}

	if err := plan.Forward(a.out, a.in); err != nil {
		return fmt.Errorf("spectrum: forward fft: %w", err)
	}

	for i, c := range a.out {
		a.re[i] = real(c)
		a.im[i] = imag(c)
	}

	vecmath.Magnitude(dst, a.re, a.im)

	return nil
}

// Magnitude is the allocating convenience form of [MagnitudeInto].
func (a *Analyzer) Magnitude(samples []float64) ([]float64, error) {
	out := make([]float64, len(samples))
	if err := a.MagnitudeInto(out, samples); err != nil {
		return nil, err
	}

	return out, nil
}

func (a *Analyzer) plan(n int) (*algofft.Plan[complex128], error) {
	if p, ok := a.plans[n]; ok {
		return p, nil
	}

	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan for length %d: %w", n, err)
	}

	a.plans[n] = p

	return p, nil
}

func (a *Analyzer) resize(n int) {
	if cap(a.in) < n {
		a.in = make([]complex128, n)
		a.out = make([]complex128, n)
		a.re = make([]float64, n)
		a.im = make([]float64, n)

		return
	}

	a.in = a.in[:n]
	a.out = a.out[:n]
	a.re = a.re[:n]
	a.im = a.im[:n]
}

// PowerToDB converts linear power values to decibels in place, elementwise
// 10*log10(v). Zero input yields -Inf; the value is intentionally not
// clamped here, non-finite results are rejected downstream.
func PowerToDB(values []float64) {
	for i, v := range values {
		values[i] = core.LinearPowerToDB(v)
	}
}

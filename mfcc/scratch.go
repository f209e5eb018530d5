package mfcc

import (
	"github.com/cwbudde/algo-mfcc/dsp/mel"
	"github.com/cwbudde/algo-mfcc/dsp/spectrum"
	"github.com/cwbudde/algo-mfcc/dsp/window"
)

// Scratch owns every intermediate buffer of the extraction pipeline, so a
// worker that keeps one Scratch across calls performs no steady-state
// allocation: buffers are resized in place and only regrown when a shape
// parameter (frame length, input rate, channel count) changes.
//
// A Scratch must not be shared between concurrently executing extractions;
// give each worker its own instance.
type Scratch struct {
	frame        []float64 // float32 input widened for processing
	conv         []float64 // pre-filter signal copy for causal convolution
	kernel       []float64 // low-pass taps, rebuilt when the design changes
	kernelRate   int       // input rate the kernel was designed for
	kernelCutoff float64   // cutoff the kernel was designed for
	resampled    []float64
	spec         []float64
	energies     []float64
	cepstrum     []float64
	win          []float64 // Hamming coefficients, rebuilt per length

	analyzer *spectrum.Analyzer
	dct      *mel.CosineTable
}

// NewScratch returns an empty Scratch. All buffers grow on first use.
func NewScratch() *Scratch {
	return &Scratch{analyzer: spectrum.NewAnalyzer()}
}

// grow returns buf resized to n, reusing capacity when possible.
func grow(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}

	return buf[:n]
}

// setFrame widens the float32 frame into the scratch processing buffer.
func (s *Scratch) setFrame(frame []float32) []float64 {
	s.frame = grow(s.frame, len(frame))
	for i, v := range frame {
		s.frame[i] = float64(v)
	}

	return s.frame
}

// hamming returns cached Hamming coefficients for length n.
func (s *Scratch) hamming(n int) []float64 {
	if len(s.win) != n {
		s.win = grow(s.win, n)
		window.HammingInto(s.win)
	}

	return s.win
}

// cosineTable returns the cached DCT basis for the given shape.
func (s *Scratch) cosineTable(rows, n int) (*mel.CosineTable, error) {
	if s.dct == nil || s.dct.Rows() != rows || s.dct.Len() != n {
		t, err := mel.NewCosineTable(rows, n)
		if err != nil {
			return nil, err
		}

		s.dct = t
	}

	return s.dct, nil
}

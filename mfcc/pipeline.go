package mfcc

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-mfcc/dsp/core"
	"github.com/cwbudde/algo-mfcc/dsp/lowpass"
	"github.com/cwbudde/algo-mfcc/dsp/mel"
	"github.com/cwbudde/algo-mfcc/dsp/resample"
	"github.com/cwbudde/algo-mfcc/dsp/signal"
	"github.com/cwbudde/algo-mfcc/dsp/spectrum"
	"github.com/cwbudde/algo-mfcc/dsp/window"
)

// CoeffCount is the fixed feature vector length: cepstral coefficients
// 1..12, with coefficient 0 (overall log energy) computed and dropped.
const CoeffCount = 12

// transitionHz is the anti-aliasing filter transition band width.
const transitionHz = 500.0

var (
	// ErrNotFinite marks a frame whose feature vector contains NaN or Inf,
	// typically a silent frame whose mel energies hit the log of zero.
	// Callers drop the frame and continue.
	ErrNotFinite = errors.New("mfcc: feature vector contains non-finite values")
	// ErrEmptyFrame indicates an empty input frame.
	ErrEmptyFrame = errors.New("mfcc: frame is empty")
	// ErrInvalidRate indicates a non-positive input sample rate.
	ErrInvalidRate = errors.New("mfcc: input sample rate must be > 0")
	// ErrMismatchedLength indicates a dst not holding CoeffCount elements.
	ErrMismatchedLength = errors.New("mfcc: dst length must equal CoeffCount")
)

// Extractor converts fixed-length audio frames into mel-frequency cepstral
// feature vectors. Configuration is frozen at construction; the per-call
// working state lives in a caller-supplied [Scratch].
type Extractor struct {
	targetRate int
	channels   int
}

// NewExtractor creates an Extractor producing [CoeffCount]-element vectors.
// channels is the mel filter bank size and must exceed CoeffCount, since
// coefficient 0 is dropped from a channels-length cepstrum.
func NewExtractor(targetRate, channels int) (*Extractor, error) {
	// The anti-alias cutoff is targetRate/2 and must clear the transition
	// band below it.
	if targetRate <= int(2*transitionHz) {
		return nil, fmt.Errorf("mfcc: target sample rate must be > %d: %d", int(2*transitionHz), targetRate)
	}

	if channels <= CoeffCount {
		return nil, fmt.Errorf("mfcc: mel channels must be > %d: %d", CoeffCount, channels)
	}

	return &Extractor{targetRate: targetRate, channels: channels}, nil
}

// TargetRate returns the configured target sample rate.
func (e *Extractor) TargetRate() int { return e.targetRate }

// Channels returns the configured mel filter bank size.
func (e *Extractor) Channels() int { return e.channels }

// ExtractInto runs one frame through the fixed pipeline
//
//	low-pass -> downsample -> pre-emphasis -> Hamming -> normalize ->
//	magnitude spectrum -> mel filter bank -> power-to-dB -> DCT
//
// and writes cepstral coefficients 1..CoeffCount into dst. The anti-alias
// cutoff is targetRate/2 with a 500 Hz transition band. Returns
// [ErrNotFinite] when any kept coefficient is NaN or Inf; dst content is
// unspecified in that case.
func (e *Extractor) ExtractInto(dst []float64, s *Scratch, frame []float32, inputRate int) error {
	if len(dst) != CoeffCount {
		return ErrMismatchedLength
	}

	if len(frame) == 0 {
		return ErrEmptyFrame
	}

	if inputRate <= 0 {
		return ErrInvalidRate
	}

	data := s.setFrame(frame)
	cutoff := float64(e.targetRate) / 2

	if err := e.lowPass(s, data, inputRate, cutoff); err != nil {
		return err
	}

	var err error

	s.resampled, err = resample.Downsample(s.resampled, data, inputRate, e.targetRate)
	if err != nil {
		return err
	}

	data = s.resampled

	signal.PreEmphasis(data, signal.DefaultPreEmphasis)

	if err := window.Apply(data, s.hamming(len(data))); err != nil {
		return err
	}

	signal.Normalize(data, 1.0)

	s.spec = grow(s.spec, len(data))
	if err := s.analyzer.MagnitudeInto(s.spec, data); err != nil {
		return err
	}

	s.energies = grow(s.energies, e.channels)
	if err := mel.FilterBank(s.energies, s.spec, float64(e.targetRate), e.channels); err != nil {
		return err
	}

	spectrum.PowerToDB(s.energies)

	table, err := s.cosineTable(CoeffCount+1, e.channels)
	if err != nil {
		return err
	}

	s.cepstrum = grow(s.cepstrum, CoeffCount+1)
	if err := table.TransformInto(s.cepstrum, s.energies); err != nil {
		return err
	}

	copy(dst, s.cepstrum[1:CoeffCount+1])

	if !core.IsFinite(dst) {
		return ErrNotFinite
	}

	return nil
}

// Extract is the allocating convenience form of [ExtractInto].
func (e *Extractor) Extract(s *Scratch, frame []float32, inputRate int) ([]float64, error) {
	out := make([]float64, CoeffCount)
	if err := e.ExtractInto(out, s, frame, inputRate); err != nil {
		return nil, err
	}

	return out, nil
}

func (e *Extractor) lowPass(s *Scratch, data []float64, inputRate int, cutoff float64) error {
	if s.kernelRate != inputRate || s.kernelCutoff != cutoff || len(s.kernel) == 0 {
		n, err := lowpass.KernelLength(float64(inputRate), transitionHz)
		if err != nil {
			return err
		}

		s.kernel = grow(s.kernel, n)
		if err := lowpass.DesignInto(s.kernel, float64(inputRate), cutoff, transitionHz); err != nil {
			return err
		}

		s.kernelRate = inputRate
		s.kernelCutoff = cutoff
	}

	s.conv = grow(s.conv, len(data))

	return lowpass.Apply(data, s.kernel, s.conv)
}

package profile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-mfcc/mfcc"
)

var (
	// ErrEmptyAudio indicates an AddSample call with no audio data.
	ErrEmptyAudio = errors.New("profile: audio data is empty")
	// ErrInvalidRate indicates a non-positive input sample rate.
	ErrInvalidRate = errors.New("profile: input sample rate must be > 0")
)

// CompareMethod tags the distance measure a downstream consumer should use
// on the exported profile. It is carried as metadata only; no comparison is
// performed here.
type CompareMethod int

const (
	CompareL1Norm CompareMethod = iota
	CompareL2Norm
	CompareCosineSimilarity
)

// String returns the method name.
func (m CompareMethod) String() string {
	switch m {
	case CompareL1Norm:
		return "l1-norm"
	case CompareL2Norm:
		return "l2-norm"
	case CompareCosineSimilarity:
		return "cosine-similarity"
	default:
		return fmt.Sprintf("compare-method(%d)", int(m))
	}
}

const (
	defaultFrameSize = 1024
	defaultDataCount = 16
	// minFrameSize keeps frames long enough for a defined Hamming window
	// and a non-degenerate spectrum.
	minFrameSize = 2
)

type config struct {
	frameSize   int
	dataCount   int
	compare     CompareMethod
	standardize bool
}

// Option configures a Generator.
type Option func(*config)

// WithFrameSize sets the analysis frame length in samples (default 1024).
func WithFrameSize(n int) Option {
	return func(c *config) {
		c.frameSize = n
	}
}

// WithDataCount sets the maximum stored vectors per label (default 16).
// Older vectors are evicted first once a label exceeds this bound.
func WithDataCount(n int) Option {
	return func(c *config) {
		c.dataCount = n
	}
}

// WithCompareMethod sets the passthrough compare-method tag
// (default [CompareL2Norm]).
func WithCompareMethod(m CompareMethod) Option {
	return func(c *config) {
		c.compare = m
	}
}

// WithStandardization sets the passthrough standardization flag
// (default false).
func WithStandardization(enabled bool) Option {
	return func(c *config) {
		c.standardize = enabled
	}
}

func defaultGeneratorConfig() config {
	return config{
		frameSize: defaultFrameSize,
		dataCount: defaultDataCount,
		compare:   CompareL2Norm,
	}
}

// Generator accumulates per-label calibration feature vectors and exports
// them as a single profile document.
//
// A Generator is not internally synchronized: interleaving AddSample and
// Finish from multiple goroutines requires external mutual exclusion. It
// owns one extraction scratch context, which is another reason for the
// single-writer discipline.
type Generator struct {
	targetRate int
	channels   int
	cfg        config

	extractor *mfcc.Extractor
	scratch   *mfcc.Scratch
	vec       []float64

	entries map[string]*ring
}

// New creates an empty Generator with frozen configuration.
// targetSampleRate is the internal analysis rate in Hz and melChannels the
// filter bank size; both are required.
func New(targetSampleRate, melChannels int, opts ...Option) (*Generator, error) {
	cfg := defaultGeneratorConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.frameSize < minFrameSize {
		return nil, fmt.Errorf("profile: frame size must be >= %d: %d", minFrameSize, cfg.frameSize)
	}

	if cfg.dataCount <= 0 {
		return nil, fmt.Errorf("profile: data count must be > 0: %d", cfg.dataCount)
	}

	if cfg.compare < CompareL1Norm || cfg.compare > CompareCosineSimilarity {
		return nil, fmt.Errorf("profile: unknown compare method: %d", int(cfg.compare))
	}

	extractor, err := mfcc.NewExtractor(targetSampleRate, melChannels)
	if err != nil {
		return nil, err
	}

	return &Generator{
		targetRate: targetSampleRate,
		channels:   melChannels,
		cfg:        cfg,
		extractor:  extractor,
		scratch:    mfcc.NewScratch(),
		vec:        make([]float64, mfcc.CoeffCount),
		entries:    make(map[string]*ring),
	}, nil
}

// AddSample segments audio into consecutive non-overlapping frames of the
// configured frame size, extracts a feature vector from each and appends
// the accepted vectors to label's entry, evicting oldest-first beyond the
// data count. A trailing remainder shorter than one frame is discarded,
// never padded; audio shorter than one frame contributes nothing.
//
// Frames whose vectors come out non-finite (silence, dropouts) are skipped
// silently so a noisy recording loses only its bad frames. An empty audio
// slice fails with [ErrEmptyAudio] and leaves the store unchanged.
func (g *Generator) AddSample(audio []float32, label string, inputSampleRate int) error {
	if len(audio) == 0 {
		return ErrEmptyAudio
	}

	if inputSampleRate <= 0 {
		return ErrInvalidRate
	}

	for start := 0; start+g.cfg.frameSize <= len(audio); start += g.cfg.frameSize {
		frame := audio[start : start+g.cfg.frameSize]

		err := g.extractor.ExtractInto(g.vec, g.scratch, frame, inputSampleRate)
		if errors.Is(err, mfcc.ErrNotFinite) {
			continue
		}

		if err != nil {
			return err
		}

		entry, ok := g.entries[label]
		if !ok {
			entry = newRing(g.cfg.dataCount)
			g.entries[label] = entry
		}

		entry.push(narrow(g.vec))
	}

	return nil
}

// Labels returns the stored label names in sorted order.
func (g *Generator) Labels() []string {
	labels := make([]string, 0, len(g.entries))
	for name := range g.entries {
		labels = append(labels, name)
	}

	sort.Strings(labels)

	return labels
}

// Len returns the number of vectors currently stored for label.
func (g *Generator) Len(label string) int {
	entry, ok := g.entries[label]
	if !ok {
		return 0
	}

	return entry.len()
}

// TargetSampleRate returns the configured analysis rate in Hz.
func (g *Generator) TargetSampleRate() int { return g.targetRate }

// MelChannels returns the configured filter bank size.
func (g *Generator) MelChannels() int { return g.channels }

// FrameSize returns the configured frame length in samples.
func (g *Generator) FrameSize() int { return g.cfg.frameSize }

// DataCount returns the per-label vector capacity.
func (g *Generator) DataCount() int { return g.cfg.dataCount }

// narrow converts an extracted float64 vector to its stored float32 form.
func narrow(vec []float64) []float32 {
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v)
	}

	return out
}

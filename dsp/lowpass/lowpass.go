package lowpass

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRate indicates a non-positive sample rate.
	ErrInvalidRate = errors.New("lowpass: sample rate must be > 0")
	// ErrInvalidTransition indicates an unusable transition band width.
	ErrInvalidTransition = errors.New("lowpass: transition range must be > 0 and < cutoff")
	// ErrShortScratch indicates a scratch buffer smaller than the input.
	ErrShortScratch = errors.New("lowpass: scratch buffer shorter than input")
)

// kernelSharpness relates the normalized transition width to the sinc
// kernel length. Wider transition bands permit shorter kernels.
const kernelSharpness = 3.1

// KernelLength returns the tap count for the given sample rate and
// transition band width in Hz. The length is always odd so the kernel has
// a true center tap.
func KernelLength(sampleRate, transition float64) (int, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, ErrInvalidRate
	}

	if transition <= 0 {
		return 0, ErrInvalidTransition
	}

	n := int(math.RoundToEven(kernelSharpness * sampleRate / transition))
	if n%2 == 0 {
		n++
	}

	if n < 1 {
		n = 1
	}

	return n, nil
}

// DesignInto fills kernel with truncated-sinc low-pass taps for the given
// cutoff and transition band, both in Hz. len(kernel) must come from
// [KernelLength] for the same rate and transition; an odd length is
// required so the center tap lands on x = 0.
func DesignInto(kernel []float64, sampleRate, cutoff, transition float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return ErrInvalidRate
	}

	if transition <= 0 || transition >= cutoff {
		return ErrInvalidTransition
	}

	if len(kernel)%2 == 0 {
		return fmt.Errorf("lowpass: kernel length must be odd: %d", len(kernel))
	}

	// The passband edge sits one transition width below the nominal cutoff.
	cutoffN := (cutoff - transition) / sampleRate

	center := float64(len(kernel)-1) * 0.5
	for i := range kernel {
		x := float64(i) - center
		if x == 0 {
			// sin(ang)/ang limit at the center tap.
			kernel[i] = 2 * cutoffN
			continue
		}

		ang := 2 * math.Pi * cutoffN * x
		kernel[i] = 2 * cutoffN * math.Sin(ang) / ang
	}

	return nil
}

// Design returns a freshly allocated low-pass kernel.
func Design(sampleRate, cutoff, transition float64) ([]float64, error) {
	n, err := KernelLength(sampleRate, transition)
	if err != nil {
		return nil, err
	}

	kernel := make([]float64, n)
	if err := DesignInto(kernel, sampleRate, cutoff, transition); err != nil {
		return nil, err
	}

	return kernel, nil
}

// Apply convolves samples with kernel causally and accumulates the result
// onto the input, in place:
//
//	samples[i] += sum_{j<=i} kernel[j] * x[i-j]
//
// where x is the pre-filter content of samples. Each output combines only
// the current and earlier inputs; the resulting group delay is accepted.
// scratch must hold at least len(samples) elements and is overwritten.
func Apply(samples, kernel, scratch []float64) error {
	if len(scratch) < len(samples) {
		return ErrShortScratch
	}

	orig := scratch[:len(samples)]
	copy(orig, samples)

	for i := range samples {
		kMax := i
		if kMax >= len(kernel) {
			kMax = len(kernel) - 1
		}

		acc := 0.0
		for j := 0; j <= kMax; j++ {
			acc += kernel[j] * orig[i-j]
		}

		samples[i] += acc
	}

	return nil
}

// Process designs a kernel and applies it in one shot. Prefer
// [KernelLength] + [DesignInto] + [Apply] with reused buffers in hot paths.
func Process(samples []float64, sampleRate, cutoff, transition float64) error {
	kernel, err := Design(sampleRate, cutoff, transition)
	if err != nil {
		return err
	}

	return Apply(samples, kernel, make([]float64, len(samples)))
}

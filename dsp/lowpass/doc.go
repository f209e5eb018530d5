// Package lowpass provides a truncated-sinc FIR low-pass filter used as an
// anti-aliasing stage ahead of decimation.
//
// The kernel length is derived from the transition band width: narrower
// transitions need longer kernels. Convolution is one-sided (causal), so the
// filtered signal carries the kernel's group delay; for feature extraction
// this constant shift is irrelevant and deliberately not compensated.
//
// The filter output is accumulated onto the input signal rather than
// replacing it, boosting the retained band relative to the attenuated one.
package lowpass
